// Package fingerprint computes a stable identifier for a screen from noisy
// OCR output (spec §4.1): a dynamic-content filter produces a "structural
// set" of element texts, which is hashed into a hex fingerprint and
// compared across screens with Jaccard similarity.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// EquivalenceThreshold is the Jaccard similarity at or above which two
// screens are considered the same (§4.1).
const EquivalenceThreshold = 0.8

// StatusBarHeight is the status-bar strip height, in points, filtered out
// regardless of screen size. Status bars don't scale with window height (a
// tall phone and a short one both carry a ~44pt bar), so this is a fixed
// height rather than a fraction of screenHeight (S1: height 890, an element
// at y=80 is below the strip and survives; one at y=30 is inside it).
const StatusBarHeight = 44.0

// MaxDynamicTextLen is the length above which text is considered dynamic
// copy and filtered out.
const MaxDynamicTextLen = 50

var (
	timeRe    = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)
	numericRe = regexp.MustCompile(`^\d{1,3}$`)
)

// cache memoizes Compute results keyed by a cheap pre-hash of the raw input,
// so repeatedly-visited screens (tab roots revisited dozens of times during
// a breadth-first walk) skip the filter+sort+sha256 work. Capacity is small:
// this is a hot-path optimization, not a correctness mechanism, and Compute
// is pure, so a miss just recomputes.
var cache *lru.Cache[string, result]

type result struct {
	fp         string
	structural []string
}

func init() {
	c, err := lru.New[string, result](256)
	if err != nil {
		panic(err) // only fails for non-positive size, which is a constant here
	}
	cache = c
}

// Compute returns the screen's fingerprint and its structural text set (the
// subset of elements that survived the dynamic-content filter), folding the
// caller-supplied icon count into the fingerprint as a coarse "icons:<count>"
// token (§4.1). Deterministic for any input; no failure mode (§4.1 rationale).
func Compute(elements []model.TapPoint, screenHeight float64, icons int) (string, []string) {
	key := cacheKey(elements, screenHeight, icons)
	if v, ok := cache.Get(key); ok {
		return v.fp, append([]string(nil), v.structural...)
	}

	structural := Structural(elements, screenHeight)
	sorted := append([]string(nil), structural...)
	sort.Strings(sorted)
	joined := strings.Join(append(append([]string(nil), sorted...), "icons:"+strconv.Itoa(icons)), "|")

	sum := sha256.Sum256([]byte(joined))
	fp := hex.EncodeToString(sum[:])

	cache.Add(key, result{fp: fp, structural: sorted})
	return fp, sorted
}

func cacheKey(elements []model.TapPoint, screenHeight float64, icons int) string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(screenHeight, 'f', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(icons))
	b.WriteByte('|')
	for _, e := range elements {
		b.WriteString(e.Text)
		b.WriteByte('@')
		b.WriteString(strconv.FormatFloat(e.TapY, 'f', -1, 64))
		b.WriteByte(';')
	}
	return b.String()
}

// Structural applies the dynamic-content filter: status-bar strip, time
// patterns, bare 1-3 digit badges, text over 50 chars, and date patterns
// are all removed.
func Structural(elements []model.TapPoint, screenHeight float64) []string {
	out := make([]string, 0, len(elements))
	for _, e := range elements {
		if isDynamic(e, screenHeight) {
			continue
		}
		out = append(out, e.Text)
	}
	return out
}

func isDynamic(e model.TapPoint, screenHeight float64) bool {
	if e.TapY < StatusBarHeight {
		return true
	}
	text := strings.TrimSpace(e.Text)
	if timeRe.MatchString(text) {
		return true
	}
	if numericRe.MatchString(text) {
		return true
	}
	if len(text) > MaxDynamicTextLen {
		return true
	}
	if isDatePattern(text) {
		return true
	}
	return false
}

// Jaccard computes the Jaccard index of two structural sets. Two empty sets
// are equivalent (similarity 1.0); disjoint non-empty sets have similarity 0.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	setA := toSet(a)
	setB := toSet(b)

	inter := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

// Equivalent reports whether two structural sets meet the equivalence
// threshold.
func Equivalent(a, b []string) bool {
	return Jaccard(a, b) >= EquivalenceThreshold
}

func toSet(s []string) map[string]struct{} {
	m := make(map[string]struct{}, len(s))
	for _, v := range s {
		m[v] = struct{}{}
	}
	return m
}
