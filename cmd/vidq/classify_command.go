package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidq/internal/links"
	"vidq/internal/report"
)

type classification struct {
	Input        string `json:"input"`
	Cleaned      string `json:"cleaned"`
	PlaylistOnly bool   `json:"playlist_only"`
}

func newClassifyCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <url>...",
		Short: "Show how URLs are classified before download",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]classification, 0, len(args))
			for _, raw := range links.SplitArgs(args) {
				cleaned, playlistOnly := links.Classify(raw)
				results = append(results, classification{Input: raw, Cleaned: cleaned, PlaylistOnly: playlistOnly})
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Input, r.Cleaned, yesNo(r.PlaylistOnly)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.RenderTable([]string{"Input", "Cleaned", "Playlist"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}
