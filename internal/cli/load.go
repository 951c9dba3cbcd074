package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Parse a dictionary file into the database",
		Long:  "Parse FILE and replace the stored dictionary with its entries. Nothing is stored if parsing fails.",
		Args:  cobra.ExactArgs(1),
		Run:   runLoad,
	}

	RootCmd.AddCommand(cmd)
}

func runLoad(cmd *cobra.Command, args []string) {
	conv, err := newConverter()
	if err != nil {
		exitErr("fixups", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		exitErr("open input", err)
	}
	defer f.Close()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	loader, err := s.BeginLoad(cmd.Context())
	if err != nil {
		exitErr("load", err)
	}

	res, err := conv.Run(cmd.Context(), f, loader)
	if err != nil {
		loader.Rollback()
		exitErr("convert", err)
	}
	if err := loader.Commit(); err != nil {
		exitErr("commit", err)
	}

	slog.Info("load complete", "file", args[0], "db", cfg.DBPath(), "lines", res.Lines, "dropped_clauses", res.Dropped)
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"entries":%d,"dropped_clauses":%d}`+"\n", loader.Count(), res.Dropped)
}
