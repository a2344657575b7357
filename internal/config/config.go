// Package config locates and parses the mpw master-password file
// ($HOME/.mpw by convention): lines of the form "user_name:master_password"
// that let the command-line front-end look up a user's master password
// without prompting at the terminal. The derivation core itself has no file
// I/O; this package is strictly an external collaborator (spec.md §6.2).
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creachadair/atomicfile"

	"github.com/creachadair/mpw/secret"
)

// envPath names the environment variable that overrides the default
// "$HOME/.mpw" config location, following the KEYFISH_CONFIG convention.
const envPath = "MPW_CONFIG"

const defaultPath = "$HOME/.mpw"

// ErrNoSuchUser means the config file was read successfully but contained
// no entry for the requested user.
var ErrNoSuchUser = errors.New("no master password on file for user")

// FilePath returns the effective path of the master-password file. If
// MPW_CONFIG is set in the environment, that value is used verbatim;
// otherwise the platform home directory is substituted into "$HOME/.mpw".
func FilePath() string {
	if path, ok := os.LookupEnv(envPath); ok {
		return path
	}
	return os.ExpandEnv(defaultPath)
}

// Lookup reads the file at path and returns the master password recorded
// for userName, as the first line whose field before the first colon
// matches userName exactly. The caller owns the returned buffer and must
// call Wipe on it once the password has been consumed.
//
// If no line matches, Lookup reports ErrNoSuchUser. If path does not exist,
// the returned error satisfies os.IsNotExist.
func Lookup(path, userName string) (secret.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return secret.Buffer{}, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		user, pass, ok := strings.Cut(line, ":")
		if !ok || user != userName {
			continue
		}
		return secret.New([]byte(pass)), nil
	}
	if err := sc.Err(); err != nil {
		return secret.Buffer{}, fmt.Errorf("read %s: %w", path, err)
	}
	return secret.Buffer{}, fmt.Errorf("%w: %s", ErrNoSuchUser, userName)
}

// Init atomically writes a commented template config file to path,
// containing one example entry for userName so the file has the expected
// "user:password" shape. Init fails if path already exists, so an existing
// config is never clobbered.
func Init(path, userName string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# mpw master-password file.\n")
	fmt.Fprintf(&buf, "# One entry per line: user_name:master_password\n")
	fmt.Fprintf(&buf, "%s:change-me\n", userName)

	return atomicfile.Tx(path, 0600, func(f *atomicfile.File) error {
		_, err := f.Write(buf.Bytes())
		return err
	})
}
