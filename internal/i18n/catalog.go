// Package i18n serves the translation catalog: one YAML file per locale,
// each holding the namespaces the pages and the browser bundle load.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ChristianMLux/cml25-backend/internal/locale"
)

//go:embed locales/*.yaml
var embedded embed.FS

type Catalog struct {
	fallback locale.Code
	data     map[locale.Code]map[string]map[string]any
}

// Load reads the embedded catalog for every locale in reg.
func Load(reg *locale.Registry) (*Catalog, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, err
	}
	return Parse(sub, reg)
}

// Parse reads "<code>.yaml" from fsys for every locale in reg. A locale
// without a file is an error.
func Parse(fsys fs.FS, reg *locale.Registry) (*Catalog, error) {
	c := &Catalog{
		fallback: reg.DefaultCode(),
		data:     make(map[locale.Code]map[string]map[string]any),
	}
	for _, code := range reg.Codes() {
		raw, err := fs.ReadFile(fsys, string(code)+".yaml")
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", code, err)
		}
		var namespaces map[string]map[string]any
		if err := yaml.Unmarshal(raw, &namespaces); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", code, err)
		}
		c.data[code] = namespaces
	}
	return c, nil
}

// Namespace returns the whole namespace tree for loc.
func (c *Catalog) Namespace(loc locale.Code, ns string) (map[string]any, bool) {
	n, ok := c.data[loc][ns]
	return n, ok
}

// T looks up a dotted key inside ns, trying loc first and then the default
// locale. Missing keys return "".
func (c *Catalog) T(loc locale.Code, ns, key string) string {
	if v, ok := lookup(c.data[loc][ns], key); ok {
		return v
	}
	if loc != c.fallback {
		if v, ok := lookup(c.data[c.fallback][ns], key); ok {
			return v
		}
	}
	return ""
}

func lookup(tree map[string]any, key string) (string, bool) {
	if tree == nil {
		return "", false
	}
	var cur any = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[part]; !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok && s != ""
}
