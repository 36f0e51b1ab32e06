package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portkeyhq/portkey/internal/sshcfg"
)

var sshConfigWrite bool

func init() {
	sshConfigCmd.Flags().BoolVar(&sshConfigWrite, "write", false, "Write to ~/.ssh/config instead of stdout")
}

// sshConfigCmd exports stored servers as OpenSSH client config
var sshConfigCmd = &cobra.Command{
	Use:   "ssh-config",
	Short: "Exports stored servers as ssh config Host blocks",
	Long: `Exports stored servers as ssh config Host blocks. Passwords are
never exported; the blocks carry host, user and port only. With --write the
managed section of ~/.ssh/config is replaced in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		records := sess.Contents().Records()
		if len(records) == 0 {
			fmt.Println("No servers stored yet.")
			return nil
		}

		if !sshConfigWrite {
			fmt.Print(sshcfg.Render(records))
			return nil
		}

		path, err := sshcfg.DefaultPath()
		if err != nil {
			return err
		}
		if err := sshcfg.Append(path, records); err != nil {
			return err
		}
		fmt.Printf("Wrote %d entries to %s\n", len(records), path)
		return nil
	},
}
