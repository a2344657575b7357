// Program mpw implements the mpw deterministic per-site password
// generator.
//
// Basic usage:
//
//	mpw -u alice some.site.com
//
// The tool looks up alice's master password in $HOME/.mpw; if no entry is
// found there, it prompts at the terminal with echo disabled. The resulting
// password is printed to stdout followed by a newline.
package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/getpass"

	"github.com/creachadair/mpw/cipher"
	"github.com/creachadair/mpw/internal/config"
	"github.com/creachadair/mpw/mpw"
	"github.com/creachadair/mpw/secret"
)

// flags holds the CLI surface from spec.md §6.1, plus the -init and
// -catalog conveniences from SPEC_FULL.md §6. Defaults come from the
// MP_USERNAME, MP_SITETYPE, and MP_SITECOUNTER environment variables,
// mirroring the original mpw front-end.
var flags = struct {
	User        string `flag:"u,User name"`
	SiteType    string `flag:"t,Password type (tag or name)"`
	SiteCounter string `flag:"c,Site counter"`
	CatalogPath string `flag:"catalog,Load the template catalog from this file instead of the built-in default"`
	Init        bool   `flag:"init,Write a template $HOME/.mpw file for -u and exit"`
}{
	User:        os.Getenv("MP_USERNAME"),
	SiteType:    os.Getenv("MP_SITETYPE"),
	SiteCounter: cmp.Or(os.Getenv("MP_SITECOUNTER"), "1"),
}

func main() {
	root := &command.C{
		Name:  command.ProgramName(),
		Usage: "[options] <site-name>",
		Help: `Generate a deterministic, site-specific password.

mpw derives a password from a user name, a master password, a site name, a
site counter, and a site type. The same inputs always produce the same
password; no password is ever stored by this tool.

The master password is read from ` + config.FilePath() + ` (override with
MPW_CONFIG), falling back to an interactive terminal prompt if no matching
entry is found.`,

		SetFlags: command.Flags(flax.MustBind, &flags),
		Run:      command.Adapt(runDerive),
	}
	command.RunOrFail(root.NewEnv(nil), os.Args[1:])
}

func runDerive(env *command.Env, args ...string) error {
	if flags.Init {
		return runInit()
	}
	if len(args) != 1 {
		return env.Usagef("exactly one site name is required")
	}
	siteName := args[0]

	if flags.User == "" {
		return fmt.Errorf("mpw: %w", mpw.ErrMissingUser)
	}
	counter, err := parseCounter(flags.SiteCounter)
	if err != nil {
		return fmt.Errorf("mpw: %w", err)
	}

	cat, err := loadCatalog(flags.CatalogPath)
	if err != nil {
		return fmt.Errorf("mpw: load catalog: %w", err)
	}

	master, err := resolveMasterPassword(flags.User)
	if err != nil {
		return fmt.Errorf("mpw: %w", err)
	}
	defer master.Wipe()

	req := mpw.DerivationRequest{
		UserName:       []byte(flags.User),
		MasterPassword: master.Bytes(),
		SiteName:       []byte(siteName),
		SiteCounter:    counter,
		SiteType:       flags.SiteType,
	}
	pw, err := mpw.Derive(req, cat)
	if err != nil {
		return fmt.Errorf("mpw: %w", err)
	}
	fmt.Println(pw)
	return nil
}

// resolveMasterPassword looks up userName in the configured master-password
// file, falling back to an interactive terminal prompt if no entry exists
// or the file itself is absent.
func resolveMasterPassword(userName string) (secret.Buffer, error) {
	buf, err := config.Lookup(config.FilePath(), userName)
	if err == nil {
		return buf, nil
	}
	if !os.IsNotExist(err) && !errors.Is(err, config.ErrNoSuchUser) {
		return secret.Buffer{}, err
	}
	pw, perr := getpass.Prompt(fmt.Sprintf("Master password for %s: ", userName))
	if perr != nil {
		return secret.Buffer{}, fmt.Errorf("read master password: %w", perr)
	}
	return secret.New([]byte(pw)), nil
}

func loadCatalog(path string) (*cipher.Catalog, error) {
	if path == "" {
		return cipher.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return cipher.Parse(data)
}

func parseCounter(s string) (uint32, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n < 1 {
		return 0, mpw.ErrInvalidCounter
	}
	return uint32(n), nil
}

func runInit() error {
	if flags.User == "" {
		return fmt.Errorf("mpw: -init requires -u")
	}
	path := config.FilePath()
	if err := config.Init(path, flags.User); err != nil {
		return fmt.Errorf("mpw: %w", err)
	}
	fmt.Printf("Wrote template configuration to %s\n", path)
	return nil
}
