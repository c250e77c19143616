package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/babbaginator/pyDatasetGen/internal/assets"
	"github.com/babbaginator/pyDatasetGen/internal/cli"
	"github.com/babbaginator/pyDatasetGen/internal/tui"
)

func runPreview(cmd *cobra.Command, args []string) error {
	p, err := profile(cmd)
	if err != nil {
		return err
	}
	s := p.Seed
	if s == 0 {
		s = rand.Uint64()
	}

	// the tui owns the terminal; keep log output out of it
	in := cli.Interpreter(p, s, slog.New(slog.DiscardHandler))

	sfs, spath := cli.Source(p.Schema, assets.SchemaFile)
	dir := vaultDir()
	cfg := tui.Config{
		Version:    version,
		Interp:     in,
		Rows:       p.Rows,
		Seed:       s,
		SchemaFS:   sfs,
		SchemaPath: spath,
		DataDir:    dir,
		FirstRun:   cli.IsFirstRun(dir),
	}

	if watch {
		if p.Schema == "" {
			return errors.New("--watch needs --schema")
		}
		w, err := tui.Watch(p.Schema)
		if err != nil {
			return err
		}
		defer w.Close()
		cfg.Watcher = w
	}

	m := tui.New(cfg)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if fm, ok := final.(tui.Model); ok {
		fm.Close()
	}
	return nil
}
