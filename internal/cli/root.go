// Package cli implements the usodict CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rcliao/usodict/internal/app"
	"github.com/rcliao/usodict/internal/config"
	"github.com/rcliao/usodict/internal/converter"
	"github.com/rcliao/usodict/internal/parser"
	"github.com/rcliao/usodict/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	fixupsPath string
	logLevel   string

	cfg *config.Config
)

// RootCmd is the top-level command. Run with a file argument it converts the
// extracted dictionary text to a plain-text or JSON report.
var RootCmd = &cobra.Command{
	Use:   "usodict [--json] FILE",
	Short: "Convert an extracted Spanish usage dictionary to structured records",
	Long: "Parse the plain-text extraction of the dictionary into entries with parts of speech,\n" +
		"governed prepositions, examples and usage notes. Prints a text report by default.",
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: setup,
	Run:               runConvert,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $USODICT_DB or ~/.usodict/usodict.db)")
	RootCmd.PersistentFlags().StringVar(&fixupsPath, "fixups", "", "YAML file of extra line fixups (default: $USODICT_FIXUPS)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL or info)")

	RootCmd.Flags().Bool("json", false, "Print entries as a JSON array")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.Store.Path = dbPath
	}
	if fixupsPath != "" {
		c.Parser.FixupsPath = fixupsPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	app.NewLogger(cfg.Log, os.Stderr)
	return nil
}

func newConverter() (*converter.Converter, error) {
	fixups, err := parser.LoadFixups(cfg.Parser.FixupsPath)
	if err != nil {
		return nil, err
	}
	return converter.New(converter.Options{
		PrologueMarker:   cfg.Parser.PrologueMarker,
		Fixups:           fixups,
		NormalizeUnicode: cfg.Parser.NormalizeUnicode,
		Logger:           slog.Default(),
	}), nil
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.DBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
