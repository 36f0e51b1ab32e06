package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portkeyhq/portkey/pkg/crypto"
	"github.com/portkeyhq/portkey/pkg/vault"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Manages the master password",
}

func init() {
	passwordCmd.AddCommand(passwordChangeCmd)
}

// passwordChangeCmd rekeys the vault under a new master password
var passwordChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Changes the master password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Unlock with the current password
		sess, err := ensureUnlocked()
		if err != nil {
			return err
		}
		defer sess.Close()

		// 2. Prompt for the new password, twice
		newPassword1, err := source.ReadPassword("Enter new master password")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		defer crypto.SecureWipe(newPassword1)

		newPassword2, err := source.ReadPassword("Confirm new master password")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		defer crypto.SecureWipe(newPassword2)

		if string(newPassword1) != string(newPassword2) {
			return fmt.Errorf("passwords do not match")
		}

		// 3. Validate strength
		strength, warnings, err := vault.ValidateMasterPassword(newPassword1)
		if err != nil {
			return fmt.Errorf("password validation failed: %w", err)
		}
		fmt.Printf("Password strength: %s\n", strength)
		for _, w := range warnings {
			fmt.Printf("Warning: %s\n", w)
		}

		// 4. Rekey and persist
		if err := store.ChangePassword(sess, newPassword1); err != nil {
			return fmt.Errorf("failed to change master password: %w", err)
		}

		fmt.Println("Master password changed successfully")
		return nil
	},
}
