package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/portkeyhq/portkey/internal/config"
	"github.com/portkeyhq/portkey/internal/prompt"
	"github.com/portkeyhq/portkey/pkg/crypto"
	"github.com/portkeyhq/portkey/pkg/vault"
)

var (
	vaultFlag string
	cfg       *config.Config
	store     *vault.Store
	source    prompt.Source = prompt.NewTerminal()
)

var rootCmd = &cobra.Command{
	Use:   "portkey",
	Short: "portkey is a local encrypted SSH credential manager",
	Long: `A local SSH credential manager. Credentials live in a single
encrypted vault file and never leave the machine.`,
	SilenceUsage: true,
	// PersistentPreRunE resolves the config and vault path for every
	// subcommand, including init (which needs the path before the file
	// exists).
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := portkeyDir()
		if err != nil {
			return err
		}

		cfg, err = config.Load(filepath.Join(dir, config.FileName))
		if err != nil {
			return err
		}

		path := filepath.Join(dir, "vault.dat")
		if cfg.VaultPath != "" {
			path = cfg.VaultPath
		}
		if vaultFlag != "" {
			path = vaultFlag
		}
		store = vault.New(path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultFlag, "vault", "", "Vault file path (default ~/.portkey/vault.dat)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(sshConfigCmd)
	rootCmd.AddCommand(passwordCmd)
	rootCmd.AddCommand(historyCmd)
}

// portkeyDir returns ~/.portkey.
func portkeyDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".portkey"), nil
}

// historyPath returns the connection history database path, or "" when
// history is disabled.
func historyPath() (string, error) {
	if cfg.History.Disabled {
		return "", nil
	}
	dir, err := portkeyDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, vault.DirMode); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, "history.db"), nil
}

// ensureUnlocked prompts for the master password and unlocks the vault.
// Callers must Close the returned session on every exit path.
func ensureUnlocked() (*vault.Session, error) {
	password, err := source.ReadPassword("Enter master password")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	defer crypto.SecureWipe(password)

	sess, err := store.Unlock(password)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock vault: %w", err)
	}
	return sess, nil
}

// initCmd creates a new empty vault
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes a new credential vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Initializing new vault...")

		// 1. Prompt for master password, twice
		password1, err := source.ReadPassword("Enter master password")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		defer crypto.SecureWipe(password1)

		password2, err := source.ReadPassword("Confirm master password")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		defer crypto.SecureWipe(password2)

		if string(password1) != string(password2) {
			return fmt.Errorf("passwords do not match")
		}

		// 2. Validate password strength. Length errors block; complexity
		// warnings are advisory.
		strength, warnings, err := vault.ValidateMasterPassword(password1)
		if err != nil {
			return fmt.Errorf("password validation failed: %w", err)
		}
		fmt.Printf("Password strength: %s\n", strength)
		for _, w := range warnings {
			fmt.Printf("Warning: %s\n", w)
		}

		// 3. Create the vault file
		if err := store.Initialize(password1); err != nil {
			return fmt.Errorf("failed to initialize vault: %w", err)
		}

		fmt.Printf("Vault initialized successfully at %s\n", store.Path())
		return nil
	},
}
