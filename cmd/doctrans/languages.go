package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/doctrans"
)

func languagesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the selectable source languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			langs := doctrans.SupportedLanguages()
			out := cmd.OutOrStdout()

			if jsonOutput {
				type languageOutput struct {
					Name      string `json:"name"`
					Code      string `json:"code"`
					Direction string `json:"direction"`
				}
				items := make([]languageOutput, len(langs))
				for i, l := range langs {
					items[i] = languageOutput{Name: l.Name, Code: l.Code, Direction: l.Direction()}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tDIRECTION")
			for _, l := range langs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l, l.Name, l.Direction())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
