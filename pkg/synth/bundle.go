package synth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// Skill is one synthesized step script.
type Skill struct {
	Name     string
	Filename string
	Markdown string
}

// Bundle is a full BundleGenerator output: one or more skills plus an
// index manifest (§4.9 steps 4-5).
type Bundle struct {
	Skills   []Skill
	Manifest string
}

var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeFilename lowercases, replaces runs of non-alphanumerics with a
// single hyphen, and trims leading/trailing hyphens (§8 property 9:
// idempotent, output matches [a-z0-9-]* with no leading/trailing hyphen).
func SanitizeFilename(name string) string {
	lower := strings.ToLower(name)
	hyphenated := nonAlphanumericRe.ReplaceAllString(lower, "-")
	return strings.Trim(hyphenated, "-")
}

// Generate builds a Bundle from a GraphSnapshot plus the flat screen log
// (§4.9). With fewer than two interesting paths it falls back to a single
// skill generated from the screen log. generatedAt is stamped into each
// skill's front matter verbatim (callers supply it; synth never reads the
// wall clock itself).
func Generate(snap model.GraphSnapshot, screenLog []model.ScreenLogEntry, appName, goalOrPathName, generatedAt string) Bundle {
	paths := FindPaths(snap)
	interesting := make([]NamedPath, 0, len(paths))
	for _, p := range paths {
		if len(p.Edges) > 0 {
			interesting = append(interesting, p)
		}
	}

	var skills []Skill
	if len(interesting) < 2 {
		skills = []Skill{skillFromScreenLog(snap, screenLog, appName, goalOrPathName, generatedAt)}
	} else {
		for _, p := range interesting {
			screens := RealizeScreens(snap, p)
			skills = append(skills, skillFromPath(snap, appName, p, screens, generatedAt))
		}
	}

	return Bundle{Skills: skills, Manifest: buildManifest(skills)}
}

func skillFromPath(snap model.GraphSnapshot, appName string, path NamedPath, screens []ExploredScreen, generatedAt string) Skill {
	name := fmt.Sprintf("%s: %s", appName, path.Name)
	steps := StepsForPath(screens)
	return Skill{
		Name:     name,
		Filename: SanitizeFilename(name) + ".md",
		Markdown: renderMarkdown(name, appName, path.Name, snap.Root, generatedAt, steps),
	}
}

func skillFromScreenLog(snap model.GraphSnapshot, screenLog []model.ScreenLogEntry, appName, goalOrPathName, generatedAt string) Skill {
	name := fmt.Sprintf("%s — %s", appName, goalOrPathName)
	steps := make([]model.SkillStep, 0, len(screenLog))
	for i, entry := range screenLog {
		if i == 0 {
			continue
		}
		steps = append(steps, FormatStep(entry.ArrivedVia, entry.ElementText))
	}
	return Skill{
		Name:     name,
		Filename: SanitizeFilename(name) + ".md",
		Markdown: renderMarkdown(name, appName, goalOrPathName, snap.Root, generatedAt, steps),
	}
}

func renderMarkdown(name, appName, goal, rootFingerprint, generatedAt string, steps []model.SkillStep) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("app: " + appName + "\n")
	b.WriteString("goal: " + goal + "\n")
	b.WriteString("generated_at: " + generatedAt + "\n")
	b.WriteString("source_fingerprint: " + rootFingerprint + "\n")
	b.WriteString("---\n\n")
	b.WriteString("# " + name + "\n\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, RenderStep(s))
	}
	return b.String()
}

func buildManifest(skills []Skill) string {
	var b strings.Builder
	b.WriteString("# Skills\n\n")
	for _, s := range skills {
		fmt.Fprintf(&b, "- [%s](%s)\n", s.Name, s.Filename)
	}
	return b.String()
}
