package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portkeyhq/portkey/internal/history"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of entries to show")
}

// historyCmd shows recent connections. History holds no secrets, so it does
// not require unlocking the vault.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Shows recent SSH connections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := historyPath()
		if err != nil {
			return err
		}
		if path == "" {
			fmt.Println("Connection history is disabled in the config.")
			return nil
		}

		db, err := history.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No connections recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tNAME\tHOST\tEXIT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Name, e.Host, e.ExitCode)
		}
		return w.Flush()
	},
}
