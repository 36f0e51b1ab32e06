// Package vault implements the encrypted credential store: a single binary
// file holding SSH connection records, sealed with AES-256-GCM under an
// Argon2id-derived master key.
package vault

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/portkeyhq/portkey/pkg/crypto"
)

// DefaultPort is the SSH port used when a record does not specify one.
const DefaultPort uint16 = 22

// Secret is a wipeable byte slice holding a decrypted password. It marshals
// to a plain JSON string so the encrypted payload stays human-debuggable,
// and redacts itself when printed.
type Secret []byte

// MarshalJSON encodes the secret as a JSON string.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON decodes a JSON string into the secret.
func (s *Secret) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == "" {
		*s = nil
		return nil
	}
	*s = Secret(v)
	return nil
}

// String redacts the secret from fmt output and error messages.
func (s Secret) String() string {
	return "[redacted]"
}

// Wipe overwrites the secret bytes with zeros.
func (s Secret) Wipe() {
	crypto.SecureWipe(s)
}

// CredentialRecord is one stored SSH connection.
type CredentialRecord struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Host        string    `json:"host"`
	Port        uint16    `json:"port"`
	Username    string    `json:"username"`
	Password    Secret    `json:"password"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRecord builds a record with a fresh ID and timestamps. A zero port
// becomes DefaultPort.
func NewRecord(name, host string, port uint16, username string, password []byte, description string) CredentialRecord {
	if port == 0 {
		port = DefaultPort
	}
	// Truncate to seconds so the JSON round trip is exact.
	now := time.Now().UTC().Truncate(time.Second)
	return CredentialRecord{
		ID:          uuid.New(),
		Name:        name,
		Host:        host,
		Port:        port,
		Username:    username,
		Password:    Secret(password),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the record fields required at add time.
func (r *CredentialRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Host) == "" {
		return ErrHostRequired
	}
	if strings.TrimSpace(r.Username) == "" {
		return ErrUsernameRequired
	}
	return nil
}

// SSHCommand returns the manual ssh invocation for this record. It never
// contains the password.
func (r *CredentialRecord) SSHCommand() string {
	return fmt.Sprintf("ssh %s@%s -p %d", r.Username, r.Host, r.Port)
}

// foldName normalizes a record name for case-insensitive comparison.
// NFC first so composed and decomposed Unicode spellings collide.
func foldName(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Contents is the ordered, decrypted record sequence of an unlocked vault.
// Insertion order is preserved for listing. It is owned by the session that
// decrypted it and must never be persisted in plaintext.
type Contents struct {
	records []CredentialRecord
}

// Len returns the number of records.
func (c *Contents) Len() int {
	return len(c.records)
}

// Records returns the ordered record sequence. The returned slice is a
// read-only view into the session-owned contents; callers must not retain
// it past the session lifetime.
func (c *Contents) Records() []CredentialRecord {
	return c.records
}

// Add appends a record after validating it and enforcing case-insensitive
// name uniqueness. On error the contents are unchanged.
func (c *Contents) Add(r CredentialRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Port == 0 {
		r.Port = DefaultPort
	}
	folded := foldName(r.Name)
	for i := range c.records {
		if foldName(c.records[i].Name) == folded {
			return fmt.Errorf("%w: %q", ErrDuplicateName, c.records[i].Name)
		}
	}
	c.records = append(c.records, r)
	return nil
}

// Remove deletes the record with the given name (case-insensitive) and
// wipes its password. Returns ErrRecordNotFound if no record matches.
func (c *Contents) Remove(name string) error {
	folded := foldName(name)
	for i := range c.records {
		if foldName(c.records[i].Name) == folded {
			c.records[i].Password.Wipe()
			c.records = append(c.records[:i], c.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrRecordNotFound, name)
}

// wipe zeroizes every decrypted password. Called on session close.
func (c *Contents) wipe() {
	for i := range c.records {
		c.records[i].Password.Wipe()
	}
	c.records = nil
}
