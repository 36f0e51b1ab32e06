package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchExact bool

func init() {
	searchCmd.Flags().BoolVar(&searchExact, "exact", false, "Substring match on name/host/description instead of fuzzy")
}

// searchCmd finds servers by fuzzy or substring match
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Searches stored servers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		ix := sess.Index()
		records := ix.Fuzzy(args[0])
		if searchExact {
			records = ix.Search(args[0])
		}

		if len(records) == 0 {
			fmt.Printf("No servers match '%s'\n", args[0])
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tHOST\tUSER\tDESCRIPTION")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Host, r.Username, r.Description)
		}
		return w.Flush()
	},
}
