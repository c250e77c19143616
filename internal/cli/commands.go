package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/babbaginator/pyDatasetGen/internal/config"
	"github.com/babbaginator/pyDatasetGen/internal/export"
	"github.com/babbaginator/pyDatasetGen/internal/schema"
	"github.com/babbaginator/pyDatasetGen/internal/vault"
)

// Env is where commands read secrets and write results.
type Env struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Log     *slog.Logger
	DataDir string

	// OpenVault opens the snapshot vault; nil uses OpenVault on DataDir.
	OpenVault func(password string) (*vault.Vault, error)
	// Passphrase prompts for a sealing passphrase; nil reads the terminal.
	Passphrase func(confirm bool) (string, error)
}

func (e Env) vault(password string) (*vault.Vault, error) {
	if e.OpenVault != nil {
		return e.OpenVault(password)
	}
	return OpenVault(e.DataDir, password)
}

func (e Env) passphrase(given string, confirm bool) (string, error) {
	if given != "" {
		return given, nil
	}
	if e.Passphrase != nil {
		return e.Passphrase(confirm)
	}
	if confirm {
		return ReadNewPassword("passphrase", e.Stderr)
	}
	return ReadPassword("passphrase: ", e.Stderr)
}

// GenerateOptions are the generate command's switches that are not part of
// a profile.
type GenerateOptions struct {
	Save bool // also keep the dataset in the vault
}

// Generate builds p.Rows records from the profile's schema and writes them
// out. It returns the seed used so a run can be repeated.
func Generate(ctx context.Context, env Env, p config.Profile, opts GenerateOptions) (uint64, error) {
	format, err := p.OutputFormat()
	if err != nil {
		return 0, err
	}
	if format == export.SQLite && (p.Output == "" || p.Output == "-") {
		return 0, errors.New("sqlite output needs a file: use --out")
	}

	seed := p.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	in := Interpreter(p, seed, env.Log)

	var ds schema.Dataset
	switch {
	case len(in.Keys()) == 0:
		// no fields means an empty table
		env.Log.Warn("schema has no fields", "schema", p.Schema)
	case p.Workers > 1:
		ds, err = in.GenerateParallel(ctx, p.Rows, p.Workers)
		if err != nil {
			return seed, err
		}
	default:
		ds = in.Generate(p.Rows)
	}
	env.Log.Info("generated", "rows", ds.Len(), "columns", len(ds.Columns), "seed", seed)

	if err := writeDataset(ctx, env, ds, format, p.Output, p.Table, p.Passphrase); err != nil {
		return seed, err
	}

	if opts.Save {
		v, err := env.vault(p.Passphrase)
		if err != nil {
			return seed, err
		}
		defer v.Close()

		snap := vault.NewSnapshot(p.Schema, seed, ds)
		if err := v.Save(snap); err != nil {
			return seed, err
		}
		fmt.Fprintf(env.Stderr, "saved %s\n", snap.ShortID())
	}

	return seed, nil
}

func writeDataset(ctx context.Context, env Env, ds schema.Dataset, format export.Format, out, table, pass string) error {
	if format == export.SQLite {
		if len(ds.Columns) == 0 {
			env.Log.Warn("nothing to write: sqlite tables need at least one column", "path", out)
			return nil
		}
		if err := export.WriteSQLite(ctx, out, table, ds); err != nil {
			return err
		}
		env.Log.Info("wrote", "path", out, "format", format, "table", table)
		return nil
	}

	if format == export.Sealed {
		var err error
		if pass, err = env.passphrase(pass, true); err != nil {
			return err
		}
	}

	data, err := export.Marshal(format, ds, pass)
	if err != nil {
		return err
	}
	if err := writeOutput(out, data, env.Stdout); err != nil {
		return err
	}
	env.Log.Debug("wrote", "path", out, "format", format, "bytes", len(data))
	return nil
}

// List prints saved snapshots, newest first.
func List(env Env, password string, asJSON bool) error {
	v, err := env.vault(password)
	if err != nil {
		return err
	}
	defer v.Close()

	snaps, err := v.List()
	if err != nil {
		return err
	}

	if asJSON {
		type entry struct {
			ID      string   `json:"id"`
			Schema  string   `json:"schema"`
			Seed    uint64   `json:"seed"`
			Rows    int      `json:"rows"`
			Columns []string `json:"columns"`
			Created string   `json:"created_at"`
		}
		out := make([]entry, len(snaps))
		for i, s := range snaps {
			out[i] = entry{s.ID, s.Schema, s.Seed, len(s.Rows), s.Columns, s.CreatedAt.Format(time.RFC3339)}
		}
		return printJSON(env.Stdout, out)
	}

	if len(snaps) == 0 {
		fmt.Fprintln(env.Stdout, "no saved datasets")
		return nil
	}

	for _, s := range snaps {
		schemaName := s.Schema
		if schemaName == "" {
			schemaName = "(default)"
		}
		seed := "-"
		if s.Seed != 0 {
			seed = strconv.FormatUint(s.Seed, 10)
		}
		fmt.Fprintf(env.Stdout, "  %-8s %-24s %6d rows  seed %-20s %s\n",
			s.ShortID(),
			schemaName,
			len(s.Rows),
			seed,
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return nil
}

// Show writes a saved snapshot out again, as CSV on stdout unless out or
// format say otherwise.
func Show(ctx context.Context, env Env, password, id, out, format, table string) error {
	f := export.CSV
	var err error
	switch {
	case format != "":
		f, err = export.ParseFormat(format)
	case out != "" && out != "-":
		f, err = export.FormatFromPath(out)
	}
	if err != nil {
		return err
	}

	v, err := env.vault(password)
	if err != nil {
		return err
	}
	defer v.Close()

	snap, err := v.Get(id)
	if err != nil {
		return fmt.Errorf("show %s: %w", id, err)
	}

	if table == "" {
		table = export.DefaultTable
	}
	return writeDataset(ctx, env, snap.Dataset(), f, out, table, "")
}

// Forget deletes a saved snapshot.
func Forget(env Env, password, id string) error {
	v, err := env.vault(password)
	if err != nil {
		return err
	}
	defer v.Close()

	snap, err := v.Get(id)
	if err != nil {
		return fmt.Errorf("forget %s: %w", id, err)
	}
	if err := v.Delete(snap.ID); err != nil {
		return fmt.Errorf("forget %s: %w", id, err)
	}
	fmt.Fprintf(env.Stdout, "deleted %s\n", snap.ID)
	return nil
}

// Unseal decrypts a sealed export at in and writes the plain JSON to out.
func Unseal(env Env, in, out, passphrase string) error {
	sealed, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("unseal: %w", err)
	}
	if !export.IsSealed(sealed) {
		return fmt.Errorf("unseal %s: %w", in, export.ErrBadSeal)
	}

	pass, err := env.passphrase(passphrase, false)
	if err != nil {
		return err
	}

	plain, err := export.Unseal(pass, sealed)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(plain, []byte("\n")) {
		plain = append(plain, '\n')
	}
	return writeOutput(out, plain, env.Stdout)
}
