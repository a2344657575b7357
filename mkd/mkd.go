// Package mkd implements Master-Key Derivation: compressing a user name and
// master password into a fixed-length master key using scrypt.
package mkd

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/scrypt"

	"github.com/creachadair/mpw/secret"
)

// KeyLen is the length in bytes of a derived master key.
const KeyLen = 64

// scope is the domain-separation string mixed into both the MKD salt and
// the SSD info string. It is fixed by the wire contract: every
// implementation of this scheme must use exactly these 25 ASCII bytes.
const scope = "com.lyndir.masterpassword"

// scrypt cost parameters, fixed by the wire contract.
const (
	costN = 32768
	costR = 8
	costP = 2
)

// Derive computes the 64-byte master key for the given user name and master
// password. Both arguments must be non-empty; Derive does not validate that
// itself (callers enforce the request-boundary checks), but it will happily
// derive a key for any non-nil byte slices.
//
// The returned secret.Buffer is owned by the caller, which must call Wipe
// on it once the key is no longer needed (ordinarily: once ssd.Derive has
// consumed it).
func Derive(userName, masterPassword []byte) (secret.Buffer, error) {
	salt := buildSalt(userName)
	defer secret.New(salt).Wipe()

	key, err := scrypt.Key(masterPassword, salt, costN, costR, costP, KeyLen)
	if err != nil {
		return secret.Buffer{}, fmt.Errorf("derive master key: %w", err)
	}
	return secret.New(key), nil
}

// buildSalt constructs scope || BE32(len(userName)) || userName.
func buildSalt(userName []byte) []byte {
	salt := make([]byte, 0, len(scope)+4+len(userName))
	salt = append(salt, scope...)
	salt = binary.BigEndian.AppendUint32(salt, uint32(len(userName)))
	salt = append(salt, userName...)
	return salt
}
