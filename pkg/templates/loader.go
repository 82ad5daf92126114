package templates

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// LoadFS registers every JSON or YAML template found in fsys. The template id
// is the file name without its extension. Duplicate ids, including clashes
// with built-ins, are errors. A nil fsys is a no-op.
func (c *Catalog) LoadFS(fsys fs.FS) ([]string, error) {
	if fsys == nil {
		return nil, nil
	}
	var loaded []string
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(p) {
			return nil
		}

		id := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if id == "" {
			return fmt.Errorf("templates: file %s has an empty id", p)
		}
		if c.Has(id) {
			return fmt.Errorf("templates: duplicate template %q (file %s)", id, p)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", p, err)
		}
		cfg, err := parseTemplate(data, p)
		if err != nil {
			return err
		}
		if err := c.Register(id, cfg); err != nil {
			return err
		}
		loaded = append(loaded, id)
		return nil
	})
	if err != nil {
		return loaded, err
	}
	return loaded, nil
}

func isTemplateFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
