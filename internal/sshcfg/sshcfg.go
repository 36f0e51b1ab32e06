// Package sshcfg renders vault records as OpenSSH client config Host blocks.
package sshcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/portkeyhq/portkey/pkg/vault"
)

// Marker delimits the portkey-managed section of an ssh config file.
const Marker = "# portkey managed entries"

// Render formats records as Host blocks. Passwords are never part of ssh
// config; the blocks carry host, user and port only.
func Render(records []vault.CredentialRecord) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Host %s\n", r.Name)
		fmt.Fprintf(&b, "    HostName %s\n", r.Host)
		fmt.Fprintf(&b, "    User %s\n", r.Username)
		if r.Port != vault.DefaultPort {
			fmt.Fprintf(&b, "    Port %d\n", r.Port)
		}
	}
	return b.String()
}

// DefaultPath returns ~/.ssh/config.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("sshcfg: failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// Append writes the rendered records to the ssh config at path under the
// managed-section marker. An existing managed section is replaced in place;
// everything outside it is left untouched.
func Append(path string, records []vault.CredentialRecord) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("sshcfg: failed to read %s: %w", path, err)
	}

	kept := stripManaged(string(existing))

	var b strings.Builder
	b.WriteString(kept)
	if kept != "" && !strings.HasSuffix(kept, "\n\n") {
		b.WriteString("\n")
	}
	b.WriteString(Marker + "\n")
	b.WriteString(Render(records))

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("sshcfg: failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("sshcfg: failed to write %s: %w", path, err)
	}
	return nil
}

// stripManaged removes a previously written managed section. The section
// runs from the marker line to the next empty-line-plus-comment boundary or
// end of file; managed Host blocks are contiguous, so dropping everything
// from the marker on is correct when the marker was appended last, and we
// re-append at the end either way.
func stripManaged(content string) string {
	idx := strings.Index(content, Marker)
	if idx < 0 {
		return content
	}
	return strings.TrimRight(content[:idx], "\n") + "\n"
}
