// Package mpw implements the request orchestrator for the mpw
// password-derivation pipeline: it validates a DerivationRequest, then
// chains Master-Key Derivation (package mkd), Site-Seed Derivation
// (package ssd), and the Template Cipher (package cipher) to produce a
// printable, deterministic, site-specific password.
package mpw

import (
	"fmt"

	"github.com/creachadair/mpw/cipher"
	"github.com/creachadair/mpw/mkd"
	"github.com/creachadair/mpw/ssd"
)

// A DerivationRequest carries the five inputs to a single derivation.
// MasterPassword is a []byte rather than a string specifically so the
// caller can wipe it after Derive returns: Go strings are immutable and cannot be zeroed in place, so
// any secret that needs to be destroyed after use must stay a byte slice
// until the moment it is consumed. Callers (internal/config, cmd/mpw) hold
// the password in a secret.Buffer and pass its Bytes() here.
//
// A request is constructed, consumed by one call to Derive, and not
// retained.
type DerivationRequest struct {
	// UserName identifies the user whose master key is being derived.
	UserName []byte

	// MasterPassword is the single secret the user remembers.
	MasterPassword []byte

	// SiteName identifies the site the password is for.
	SiteName []byte

	// SiteCounter lets the user rotate a site's password; must be >= 1.
	SiteCounter uint32

	// SiteType selects the template list to render through, by tag or full
	// name (e.g. "l" or "Long Password"). Empty means the catalog's
	// default type.
	SiteType string
}

// DefaultSiteType is used when a DerivationRequest's SiteType is empty.
const DefaultSiteType = "l"

// Derive runs the full pipeline for req against cat and returns the
// resulting password. Every exit path — success or failure — wipes the
// master key and site seed buffers it allocated. Derive does not wipe
// req.MasterPassword itself; that buffer outlives a single Derive call
// only at the caller's discretion, so the caller is responsible for wiping
// it once it is no longer needed.
func Derive(req DerivationRequest, cat *cipher.Catalog) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}

	siteType := req.SiteType
	if siteType == "" {
		siteType = DefaultSiteType
	}
	pt, ok := cat.Lookup(siteType)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, siteType)
	}

	masterKey, err := mkd.Derive(req.UserName, req.MasterPassword)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}
	defer masterKey.Wipe()

	seed, err := ssd.Derive(masterKey.Bytes(), req.SiteName, req.SiteCounter)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDerivationFailed, err)
	}
	defer seed.Wipe()

	tmpl, err := cipher.SelectTemplate(seed.Bytes()[0], pt.Templates)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownType, err)
	}

	pw, err := cipher.Render(seed.Bytes(), tmpl, cat.Classes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return pw, nil
}

// validate checks the request-boundary invariants from spec.md §7.
func validate(req DerivationRequest) error {
	if len(req.UserName) == 0 {
		return ErrMissingUser
	}
	if len(req.SiteName) == 0 {
		return ErrMissingSite
	}
	if req.SiteCounter < 1 {
		return ErrInvalidCounter
	}
	return nil
}
