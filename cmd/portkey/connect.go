package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/portkeyhq/portkey/internal/history"
	"github.com/portkeyhq/portkey/internal/sshexec"
	"github.com/portkeyhq/portkey/pkg/vault"
)

// connectCmd opens an interactive SSH session to a stored server
var connectCmd = &cobra.Command{
	Use:   "connect [name]",
	Short: "Connects to a stored server over SSH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		record, err := sess.Index().Lookup(args[0])
		if err != nil {
			return err
		}
		return launch(cmd, sess, record)
	},
}

// quickCmd connects by list position, for muscle-memory use
var quickCmd = &cobra.Command{
	Use:   "quick [number]",
	Short: "Connects to a server by its list position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid server number: %s", args[0])
		}

		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		records := sess.Contents().Records()
		if n > len(records) {
			return fmt.Errorf("server number %d out of range (vault has %d)", n, len(records))
		}
		return launch(cmd, sess, &records[n-1])
	},
}

// launch runs the SSH session and records the outcome in the connection
// history. The session stays open for the duration so the record's password
// buffer stays valid; Close afterwards wipes it.
func launch(cmd *cobra.Command, sess *vault.Session, record *vault.CredentialRecord) error {
	fmt.Printf("Connecting to %s (%s)...\n", record.Name, record.SSHCommand())

	launcher := sshexec.NewSSHPass(cfg.SSH)
	exitCode, err := launcher.Connect(cmd.Context(), record)
	if err != nil {
		if errors.Is(err, sshexec.ErrSSHPassNotFound) {
			fmt.Printf("Connect manually with: %s\n", record.SSHCommand())
		}
		return err
	}

	recordHistory(record, exitCode)

	if exitCode != 0 {
		fmt.Printf("Session ended with exit code %d\n", exitCode)
	}
	return nil
}

// recordHistory logs the connection. History failures never fail the
// connect; they degrade to a warning.
func recordHistory(record *vault.CredentialRecord, exitCode int) {
	path, err := historyPath()
	if err != nil || path == "" {
		return
	}

	db, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open connection history: %v\n", err)
		return
	}
	defer db.Close()

	if err := db.Record(record.Name, record.Host, exitCode); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record connection: %v\n", err)
	}
}
