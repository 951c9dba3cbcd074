package cli

import (
	"log/slog"
	"os"

	"github.com/rcliao/usodict/internal/converter"
	"github.com/rcliao/usodict/internal/render"
	"github.com/spf13/cobra"
)

type entryWriter interface {
	converter.Sink
	Close() error
}

func runConvert(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	conv, err := newConverter()
	if err != nil {
		exitErr("fixups", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		exitErr("open input", err)
	}
	defer f.Close()

	var w entryWriter
	if asJSON {
		w = render.NewJSONWriter(cmd.OutOrStdout())
	} else {
		w = render.NewTextWriter(cmd.OutOrStdout())
	}

	res, err := conv.Run(cmd.Context(), f, w)
	if err != nil {
		exitErr("convert", err)
	}
	if err := w.Close(); err != nil {
		exitErr("write output", err)
	}

	slog.Info("conversion complete", "file", args[0], "lines", res.Lines, "entries", res.Entries, "dropped_clauses", res.Dropped)
}
