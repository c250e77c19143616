// Package cli implements datasetgen's command bodies. Flag parsing lives in
// cmd/datasetgen; everything here takes its inputs explicitly and returns
// errors.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"golang.org/x/term"

	"github.com/babbaginator/pyDatasetGen/internal/assets"
	"github.com/babbaginator/pyDatasetGen/internal/config"
	"github.com/babbaginator/pyDatasetGen/internal/identity"
	"github.com/babbaginator/pyDatasetGen/internal/linecfg"
	"github.com/babbaginator/pyDatasetGen/internal/schema"
	"github.com/babbaginator/pyDatasetGen/internal/vault"
	"github.com/babbaginator/pyDatasetGen/internal/vocab"
)

// DataDir returns the default data directory for datasetgen.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/datasetgen"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".datasetgen"
	}
	return home + "/.local/share/datasetgen"
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(prompt string, w io.Writer) (string, error) {
	pass, err := ReadPassword(prompt+": ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm "+prompt+": ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", errors.New("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the vault has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenVault opens the vault in dir. An empty password is prompted for.
func OpenVault(dir, password string) (*vault.Vault, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if password == "" {
		var err error
		if IsFirstRun(dir) {
			password, err = ReadNewPassword("vault password", os.Stderr)
		} else {
			password, err = ReadPassword("vault password: ", os.Stderr)
		}
		if err != nil {
			return nil, err
		}
	}

	return vault.Open(zfilesystem.NewOSFileSystem(dir), password)
}

// Source locates a config file: on disk when a path is given, otherwise in
// the embedded defaults.
func Source(path, fallback string) (linecfg.FileReader, string) {
	if path == "" {
		return assets.FS, fallback
	}
	return zfilesystem.NewOSFileSystem(filepath.Dir(path)), filepath.Base(path)
}

// Interpreter loads the profile's vocabulary, names and schema. Load
// problems are logged and whatever loaded is used; a schema that cannot be
// loaded leaves the interpreter with no fields.
func Interpreter(p config.Profile, seed uint64, log *slog.Logger) *schema.Interpreter {
	vfs, vpath := Source(p.Vocab, assets.VocabFile)
	v, err := vocab.Load(vfs, vpath)
	if err != nil {
		log.Warn("vocabulary incomplete", "path", vpath, "err", err)
	}

	nfs, npath := Source(p.Names, assets.NamesFile)
	names, err := identity.LoadNames(nfs, npath)
	if err != nil {
		log.Warn("names incomplete", "path", npath, "err", err)
	}
	if err := names.Validate(); err != nil {
		log.Warn("name groups have gaps", "path", npath, "err", err)
	}

	in := schema.New(names, v, schema.WithSeed(seed), schema.WithLogger(log))

	sfs, spath := Source(p.Schema, assets.SchemaFile)
	if err := in.Load(sfs, spath); err != nil {
		log.Error("schema not loaded, output will be empty", "path", spath, "err", err)
	}

	log.Debug("sources loaded",
		"vocab", vpath, "categories", len(v.Categories()),
		"names", npath, "groups", names.Len(),
		"schema", spath, "fields", len(in.Keys()),
	)
	return in
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(path string, data []byte, w io.Writer) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := zfilesystem.NewOSFileSystem(dir).WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
