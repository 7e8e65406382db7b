package synth

import (
	"os"
	"path/filepath"
)

// Write persists a Bundle to dir: one file per skill plus manifest.md,
// creating dir if needed (§6 "Persisted state"). Plain os.WriteFile is
// enough here; the format is a handful of fixed lines, so no templating
// library earns its keep.
func Write(dir string, b Bundle) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, s := range b.Skills {
		path := filepath.Join(dir, s.Filename)
		if err := os.WriteFile(path, []byte(s.Markdown), 0644); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(dir, "manifest.md"), []byte(b.Manifest), 0644)
}
