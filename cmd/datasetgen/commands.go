package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/babbaginator/pyDatasetGen/internal/cli"
	"github.com/babbaginator/pyDatasetGen/internal/config"
)

// flags shared by every command
var (
	verbose     bool
	profilePath string
	passphrase  string
	dataDir     string
)

// generation flags
var (
	schemaPath string
	vocabPath  string
	namesPath  string
	rows       int
	seed       uint64
	outPath    string
	format     string
	workers    int
	table      string
	save       bool
	watch      bool
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "datasetgen",
	Short: "Generate synthetic tabular test data from a schema",
	Long: `datasetgen fills a table with believable fake records: names, emails,
handles, sentences, hashtags, urls, dates and skewed counts.

A schema file lists one column per line:

  id=[1,2,3]
  created=?date(2020-01-01,2020-12-31)
  who=?fullname

Without --schema, --vocab or --names the built-in defaults are used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
	RunE: runGenerate,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dataset and write it out",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse generated rows in the terminal",
	Long: `Shows generated rows in a table. r regenerates, enter copies the selected
row, s saves it to the vault and l lists saved datasets. With --watch the
schema is reloaded whenever the file changes.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.List(env(cmd), secret(), asJSON)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Write a saved dataset out again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Show(cmd.Context(), env(cmd), secret(), args[0], outPath, format, table)
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget <id>",
	Short: "Delete a saved dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Forget(env(cmd), secret(), args[0])
	},
}

var unsealCmd = &cobra.Command{
	Use:   "unseal <in> [out]",
	Short: "Decrypt a sealed export",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := "-"
		if len(args) == 2 {
			out = args[1]
		}
		return cli.Unseal(env(cmd), args[0], out, secret())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "datasetgen %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&profilePath, "profile", "", "YAML run profile")
	pf.StringVar(&passphrase, "passphrase", "", "vault and sealing passphrase (default: $DATASETGEN_PASSPHRASE or prompt)")
	pf.StringVar(&dataDir, "data-dir", "", "vault directory (default: "+cli.DataDir()+")")

	for _, c := range []*cobra.Command{rootCmd, generateCmd, previewCmd} {
		f := c.Flags()
		f.StringVar(&schemaPath, "schema", "", "schema file")
		f.StringVar(&vocabPath, "vocab", "", "vocabulary file")
		f.StringVar(&namesPath, "names", "", "name groups file")
		f.IntVarP(&rows, "rows", "n", config.DefaultRows, "number of rows")
		f.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
	}
	for _, c := range []*cobra.Command{rootCmd, generateCmd} {
		f := c.Flags()
		f.StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
		f.StringVarP(&format, "format", "f", "", "csv, json, yaml, sqlite or sealed (default from --out)")
		f.IntVarP(&workers, "workers", "w", 0, "generate on this many goroutines")
		f.StringVar(&table, "table", "", "sqlite table name")
		f.BoolVar(&save, "save", false, "also save the dataset to the vault")
	}
	previewCmd.Flags().BoolVar(&watch, "watch", false, "reload the schema when it changes")

	showCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	showCmd.Flags().StringVarP(&format, "format", "f", "", "csv, json, yaml, sqlite or sealed")
	showCmd.Flags().StringVar(&table, "table", "", "sqlite table name")
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	rootCmd.AddCommand(generateCmd, previewCmd, listCmd, showCmd, forgetCmd, unsealCmd, versionCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := profile(cmd)
	if err != nil {
		return err
	}

	used, err := cli.Generate(cmd.Context(), env(cmd), p, cli.GenerateOptions{Save: save})
	if err != nil {
		return err
	}
	if p.Seed == 0 {
		slog.Debug("repeat this run with --seed", "seed", used)
	}
	return nil
}

// profile loads the profile and lays explicitly set flags over it.
func profile(cmd *cobra.Command) (config.Profile, error) {
	p, err := config.Load(profilePath)
	if err != nil {
		return config.Profile{}, err
	}

	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Lookup(name) != nil && f.Changed(name) {
			apply()
		}
	}
	set("schema", func() { p.Schema = schemaPath })
	set("vocab", func() { p.Vocab = vocabPath })
	set("names", func() { p.Names = namesPath })
	set("rows", func() { p.Rows = rows })
	set("seed", func() { p.Seed = seed })
	set("out", func() { p.Output = outPath })
	set("format", func() { p.Format = format })
	set("workers", func() { p.Workers = workers })
	set("table", func() { p.Table = table })
	if passphrase != "" {
		p.Passphrase = passphrase
	}

	if err := p.Validate(); err != nil {
		return config.Profile{}, fmt.Errorf("invalid options: %w", err)
	}
	return p, nil
}

func env(cmd *cobra.Command) cli.Env {
	return cli.Env{
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Log:     slog.Default(),
		DataDir: vaultDir(),
	}
}

func vaultDir() string {
	if dataDir != "" {
		return dataDir
	}
	return cli.DataDir()
}

// secret is the passphrase from the flag or the environment; empty means
// prompt.
func secret() string {
	if passphrase != "" {
		return passphrase
	}
	return os.Getenv("DATASETGEN_PASSPHRASE")
}
