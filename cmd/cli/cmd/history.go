package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/openpdfa/openpdfa/pkg/client"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversions",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := client.NewClient(baseURL, apiKey).Conversions(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no conversions recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CREATED\tSTATUS\tERROR\tDURATION\tIN\tOUT")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%d\t%d\n",
				rec.CreatedAt, rec.Status, rec.ErrorKind, rec.DurationMs, rec.InputBytes, rec.OutputBytes)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of records to show")
	rootCmd.AddCommand(historyCmd)
}
