package cipher_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/creachadair/mpw/cipher"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := cipher.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	wantClasses := map[byte]cipher.CharacterClass{
		'V': "AEIOU",
		'C': "BCDFGHJKLMNPQRSTVWXYZ",
		'v': "aeiou",
		'c': "bcdfghjklmnpqrstvwxyz",
		'A': "AEIOUBCDFGHJKLMNPQRSTVWXYZ",
		'a': "AEIOUaeiouBCDFGHJKLMNPQRSTVWXYZbcdfghjklmnpqrstvwxyz",
		'n': "0123456789",
		'o': "@&%?,=[]_:-+*$#!'^~;()/.",
		'x': "AEIOUBCDFGHJKLMNPQRSTVWXYZ0123456789@&%?,=[]_:-+*$#!'^~;()/.",
	}
	if diff := cmp.Diff(wantClasses, cat.Classes); diff != "" {
		t.Errorf("Classes mismatch (-want +got):\n%s", diff)
	}

	for _, tag := range []string{"x", "l", "m", "b", "s", "i", "n"} {
		if _, ok := cat.Lookup(tag); !ok {
			t.Errorf("Lookup(%q): not found", tag)
		}
	}
	if _, ok := cat.Lookup("Long Password"); !ok {
		t.Error(`Lookup("Long Password"): not found`)
	}
	if _, ok := cat.Lookup("long password"); !ok {
		t.Error(`Lookup("long password") (case-insensitive): not found`)
	}
	if _, ok := cat.Lookup("bogus"); ok {
		t.Error(`Lookup("bogus"): unexpectedly found`)
	}
}

func TestParseRejectsUndefinedClass(t *testing.T) {
	const doc = `
characterClasses:
  n: "0123456789"
types:
  - tag: z
    className: Broken
    typeName: Broken
    templates:
      - "zzzz"
`
	if _, err := cipher.Parse([]byte(doc)); err == nil {
		t.Error("Parse: expected error for undefined class, got nil")
	}
}

func TestParseRejectsEmptyClass(t *testing.T) {
	const doc = `
characterClasses:
  n: ""
types: []
`
	if _, err := cipher.Parse([]byte(doc)); err == nil {
		t.Error("Parse: expected error for empty class alphabet, got nil")
	}
}

func TestParseRejectsOversizeTemplate(t *testing.T) {
	const doc = `
characterClasses:
  n: "0123456789"
types:
  - tag: z
    className: Broken
    typeName: Broken
    templates:
      - "nnnnnnnnnnnnnnnnnnnnnnnnnnnnnnnnn"
`
	if _, err := cipher.Parse([]byte(doc)); err == nil {
		t.Error("Parse: expected error for oversize template, got nil")
	}
}

// catalogWithTemplateLen builds a minimal single-class, single-type catalog
// document whose one template is n repeated-character bytes long.
func catalogWithTemplateLen(n int) string {
	tmpl := strings.Repeat("n", n)
	return "characterClasses:\n  n: \"0123456789\"\ntypes:\n  - tag: z\n    className: Z\n    typeName: Z\n    templates:\n      - \"" + tmpl + "\"\n"
}

// TestParseTemplateLenBoundary pins the exact boundary a 32-byte site seed
// can drive (cipher.Render needs len(seed) >= len(tmpl)+1): a template of
// MaxTemplateLen bytes must be accepted, and one byte longer — the case that
// used to pass validate() and then fail every Render call — must be
// rejected at catalog load.
func TestParseTemplateLenBoundary(t *testing.T) {
	if _, err := cipher.Parse([]byte(catalogWithTemplateLen(cipher.MaxTemplateLen))); err != nil {
		t.Errorf("Parse(len=%d): unexpected error: %v", cipher.MaxTemplateLen, err)
	}
	if _, err := cipher.Parse([]byte(catalogWithTemplateLen(cipher.MaxTemplateLen + 1))); err == nil {
		t.Errorf("Parse(len=%d): expected error, got nil", cipher.MaxTemplateLen+1)
	}
}
