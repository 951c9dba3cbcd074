package cli

import (
	"github.com/rcliao/usodict/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored entries as JSON",
		Long:  "Export every stored entry as a JSON array, one object per line, in dictionary order.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	w := render.NewJSONWriter(cmd.OutOrStdout())
	for i := range entries {
		if err := w.Emit(cmd.Context(), &entries[i]); err != nil {
			exitErr("export", err)
		}
	}
	if err := w.Close(); err != nil {
		exitErr("export", err)
	}
}
