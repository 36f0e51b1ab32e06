package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portkeyhq/portkey/internal/cli"
	"github.com/portkeyhq/portkey/pkg/vault"
)

// Flags for add command
var (
	addHost        string
	addPort        uint16
	addUsername    string
	addDescription string
	addTags        string
)

// Flags for remove command
var (
	removeForce bool
)

func init() {
	addCmd.Flags().StringVar(&addHost, "host", "", "Server hostname or IP (prompted if omitted)")
	addCmd.Flags().Uint16Var(&addPort, "port", 0, "SSH port (default 22)")
	addCmd.Flags().StringVar(&addUsername, "user", "", "SSH username (prompted if omitted)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Free-form description")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags (e.g., prod,web)")

	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
}

// addCmd stores a new server credential
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Adds a server credential to the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		// Collect connection details before unlocking, so a typo does not
		// cost an Argon2 derivation.
		host := addHost
		if host == "" {
			var err error
			if host, err = source.ReadLine("Host"); err != nil {
				return err
			}
		}
		username := addUsername
		if username == "" {
			var err error
			if username, err = source.ReadLine("Username"); err != nil {
				return err
			}
		}
		password, err := source.ReadPassword("Password for " + username + "@" + host)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		record := vault.NewRecord(name, host, addPort, username, password, addDescription)
		if addTags != "" {
			record.Tags = strings.Split(addTags, ",")
		}

		if err := sess.Add(record); err != nil {
			return fmt.Errorf("failed to add server: %w", err)
		}
		if err := store.Persist(sess); err != nil {
			return fmt.Errorf("failed to save vault: %w", err)
		}

		fmt.Printf("Server '%s' added successfully\n", name)
		return nil
	},
}

// listCmd lists stored servers
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored servers (no passwords)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		records := sess.Contents().Records()
		if len(records) == 0 {
			fmt.Println("No servers stored yet. Use 'portkey add' to store one.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tHOST\tPORT\tUSER\tDESCRIPTION")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", r.Name, r.Host, r.Port, r.Username, r.Description)
		}
		return w.Flush()
	},
}

// showCmd shows one server's details
var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Shows a server's connection details (no password)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		r, err := sess.Index().Lookup(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Name:        %s\n", r.Name)
		fmt.Printf("Host:        %s\n", r.Host)
		fmt.Printf("Port:        %d\n", r.Port)
		fmt.Printf("Username:    %s\n", r.Username)
		if r.Description != "" {
			fmt.Printf("Description: %s\n", r.Description)
		}
		if len(r.Tags) > 0 {
			fmt.Printf("Tags:        %s\n", strings.Join(r.Tags, ", "))
		}
		fmt.Printf("Created:     %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Command:     %s\n", r.SSHCommand())
		return nil
	},
}

// removeCmd deletes servers by name or glob pattern
var removeCmd = &cobra.Command{
	Use:   "remove [name|pattern]...",
	Short: "Removes server credentials from the vault",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		names, err := cli.ExpandPatterns(args, sess.Contents().Records())
		if err != nil {
			return err
		}

		if !removeForce {
			label := fmt.Sprintf("Remove %d server(s): %s?", len(names), strings.Join(names, ", "))
			ok, err := source.Confirm(label, false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Aborted.")
				return nil
			}
		}

		for _, name := range names {
			if err := sess.Remove(name); err != nil {
				return fmt.Errorf("failed to remove server: %w", err)
			}
		}
		if err := store.Persist(sess); err != nil {
			return fmt.Errorf("failed to save vault: %w", err)
		}

		fmt.Printf("Removed %d server(s)\n", len(names))
		return nil
	},
}
