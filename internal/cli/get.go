package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/usodict/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get LEMMA",
		Short: "Show stored entries for a lemma",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGet,
	}

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	lemma := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.Get(cmd.Context(), store.GetParams{Lemma: lemma})
	if err != nil {
		exitErr("get", err)
	}

	b, _ := json.MarshalIndent(entries, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
