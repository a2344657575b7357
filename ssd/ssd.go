// Package ssd implements Site-Seed Derivation: computing a fixed-length
// pseudo-random seed from a master key, a site name, and a site counter
// using HMAC-SHA-256.
package ssd

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/creachadair/mpw/secret"
)

// SeedLen is the length in bytes of a derived site seed.
const SeedLen = sha256.Size // 32

// scope is the same domain-separation string used by package mkd. It must
// match exactly: this value is part of the cross-implementation wire
// contract, not an implementation detail local to this package.
const scope = "com.lyndir.masterpassword"

// Derive computes the 32-byte site seed for the given master key, site
// name, and site counter. siteCounter must be >= 1; callers enforce that at
// the request boundary (see package mpw), not here.
//
// The returned secret.Buffer is owned by the caller, which must call Wipe
// once the seed has been consumed by the template cipher.
func Derive(masterKey, siteName []byte, siteCounter uint32) (secret.Buffer, error) {
	info := buildInfo(siteName, siteCounter)
	defer secret.New(info).Wipe()

	mac := hmac.New(sha256.New, masterKey)
	if _, err := mac.Write(info); err != nil {
		return secret.Buffer{}, fmt.Errorf("derive site seed: %w", err)
	}
	return secret.New(mac.Sum(nil)), nil
}

// buildInfo constructs scope || BE32(len(siteName)) || siteName || BE32(siteCounter).
func buildInfo(siteName []byte, siteCounter uint32) []byte {
	info := make([]byte, 0, len(scope)+4+len(siteName)+4)
	info = append(info, scope...)
	info = binary.BigEndian.AppendUint32(info, uint32(len(siteName)))
	info = append(info, siteName...)
	info = binary.BigEndian.AppendUint32(info, siteCounter)
	return info
}
