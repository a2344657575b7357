// Package cipher implements the Template Cipher: converting a site seed
// into a printable password by selecting, for each output position, a
// character from a class named by a template, itself chosen by the seed.
//
// A Catalog binds the two static tables the cipher needs: a set of
// character classes (single-letter alphabets) and a set of password types,
// each naming an ordered, non-empty list of templates.
package cipher

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/creachadair/mds/mapset"

	"github.com/creachadair/mpw/ssd"
)

// MaxTemplateLen is the longest template a site seed can drive. Render
// consumes seed[0] to pick the template and then one seed byte per
// template position (§4.3), so a template of length n needs n+1 seed
// bytes; with a ssd.SeedLen-byte seed the longest renderable template is
// one byte shorter than the seed itself.
const MaxTemplateLen = ssd.SeedLen - 1

// A CharacterClass is a non-empty, ordered string of permitted characters.
type CharacterClass string

// A Template is a string of class letters; each letter selects a character
// class at the corresponding output position.
type Template string

// A PasswordType names a list of templates in a Catalog's Types table. Tag
// is the short identifier accepted by -t/MP_SITETYPE (e.g. "l"); ClassName
// and TypeName are the descriptive pair carried for display and for
// cross-implementation agreement with the mobile app's per-type algorithm
// objects (see DESIGN.md).
type PasswordType struct {
	Tag       string     `yaml:"tag"`
	ClassName string     `yaml:"className"`
	TypeName  string     `yaml:"typeName"`
	Templates []Template `yaml:"templates"`
}

// A Catalog is the full set of static data the template cipher needs: the
// character classes referenced by templates, and the named password types.
type Catalog struct {
	Classes map[byte]CharacterClass `yaml:"characterClasses"`
	Types   []PasswordType          `yaml:"types"`
}

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// wireCatalog mirrors the on-disk shape of a catalog document, whose
// characterClasses keys are single-character strings (YAML does not have a byte-keyed
// map type).
type wireCatalog struct {
	Classes map[string]string `yaml:"characterClasses"`
	Types   []PasswordType    `yaml:"types"`
}

// Parse decodes a catalog document. The document format is the YAML
// encoding of the mapping described in spec.md §6.3: a "characterClasses"
// entry mapping single-character keys to permitted-character strings, and a
// "types" list of named template lists.
func Parse(data []byte) (*Catalog, error) {
	var wc wireCatalog
	if err := yaml.Unmarshal(data, &wc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	cat := &Catalog{Classes: make(map[byte]CharacterClass, len(wc.Classes)), Types: wc.Types}
	for k, v := range wc.Classes {
		if len(k) != 1 {
			return nil, fmt.Errorf("parse catalog: class key %q is not a single character", k)
		}
		if v == "" {
			return nil, fmt.Errorf("parse catalog: class %q has an empty alphabet", k)
		}
		cat.Classes[k[0]] = CharacterClass(v)
	}
	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Default returns the catalog compiled into the binary. It is parsed once
// per call; callers that derive many passwords in a loop should parse it
// once and reuse the result.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// validate checks the catalog integrity invariants from spec.md §3: every
// class letter referenced by a template must have a CharacterClass entry,
// and no template may exceed MaxTemplateLen (the longest template a
// ssd.SeedLen-byte seed can drive through Render without running out of
// seed bytes).
func (c *Catalog) validate() error {
	known := mapset.New[byte]()
	for letter := range c.Classes {
		known.Add(letter)
	}
	for _, t := range c.Types {
		for _, tmpl := range t.Templates {
			if len(tmpl) == 0 {
				return fmt.Errorf("catalog: type %s/%s has an empty template", t.ClassName, t.TypeName)
			}
			if len(tmpl) > MaxTemplateLen {
				return fmt.Errorf("catalog: type %s/%s has a template longer than %d bytes", t.ClassName, t.TypeName, MaxTemplateLen)
			}
			for i := 0; i < len(tmpl); i++ {
				if !known.Has(tmpl[i]) {
					return fmt.Errorf("catalog: type %s/%s template %q references undefined class %q", t.ClassName, t.TypeName, tmpl, tmpl[i])
				}
			}
		}
	}
	return nil
}

// Lookup finds the password type matching tag, which may be either a
// type's short Tag or its TypeName (case-insensitively). It reports
// whether a match was found.
func (c *Catalog) Lookup(tag string) (PasswordType, bool) {
	for _, t := range c.Types {
		if t.Tag == tag || strings.EqualFold(t.TypeName, tag) {
			return t, true
		}
	}
	return PasswordType{}, false
}
