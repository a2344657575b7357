package cipher

import "fmt"

// SelectTemplate picks the template from templates addressed by the first
// byte of a site seed, per spec.md §4.3 step 2: the selector is seed[0], and
// the modulus is taken over the count of available templates so that every
// byte value maps into range.
func SelectTemplate(seedByte0 byte, templates []Template) (Template, error) {
	if len(templates) == 0 {
		return "", fmt.Errorf("render: no templates available")
	}
	return templates[int(seedByte0)%len(templates)], nil
}

// Render converts a site seed into a password string using tmpl and
// classes. It implements spec.md §4.3 steps 3-4: seed[0] has already chosen
// tmpl (via SelectTemplate); bytes seed[1:] choose one character per
// template position.
//
// Render requires len(seed) >= len(tmpl)+1; the caller (package mpw) holds
// that invariant by construction, since every template is capped at
// MaxTemplateLen and every seed is exactly ssd.SeedLen (32) bytes.
func Render(seed []byte, tmpl Template, classes map[byte]CharacterClass) (string, error) {
	if len(seed) < len(tmpl)+1 {
		return "", fmt.Errorf("render: seed too short for template of length %d", len(tmpl))
	}
	out := make([]byte, len(tmpl))
	for i := 0; i < len(tmpl); i++ {
		letter := tmpl[i]
		chars, ok := classes[letter]
		if !ok {
			return "", fmt.Errorf("render: template references undefined class %q", letter)
		}
		keyByte := seed[i+1]
		out[i] = chars[int(keyByte)%len(chars)]
	}
	return string(out), nil
}
