package vault

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/portkeyhq/portkey/pkg/crypto"
)

// FormatVersion is the current vault file format version.
const FormatVersion = 1

// payloadVersion is the schema version of the encrypted JSON payload.
const payloadVersion = "1.0.0"

// File layout (binary, single file):
//
//	[version: uint8][salt_len: uint8][salt][nonce: 12 bytes][ciphertext_and_tag]
//
// The header is plaintext by necessity (the salt and nonce are needed before
// decryption) but any tampering with it surfaces as an authentication
// failure, since a modified salt or nonce yields a key or stream that fails
// the GCM tag check.
const headerBaseLen = 2 // version byte + salt length byte

// vaultFile is the parsed on-disk representation.
type vaultFile struct {
	version    uint8
	salt       []byte
	nonce      []byte
	ciphertext []byte // includes the 16-byte GCM tag
}

// encodeFile serializes the vault file framing.
func encodeFile(f *vaultFile) []byte {
	buf := make([]byte, 0, headerBaseLen+len(f.salt)+len(f.nonce)+len(f.ciphertext))
	buf = append(buf, f.version, uint8(len(f.salt)))
	buf = append(buf, f.salt...)
	buf = append(buf, f.nonce...)
	buf = append(buf, f.ciphertext...)
	return buf
}

// decodeFile parses and validates the vault file framing. All failures here
// are ErrMalformedFile or ErrUnsupportedVersion; no cryptography has run yet.
func decodeFile(data []byte) (*vaultFile, error) {
	if len(data) < headerBaseLen {
		return nil, fmt.Errorf("%w: truncated header", ErrMalformedFile)
	}
	version := data[0]
	if version == 0 || version > FormatVersion {
		return nil, fmt.Errorf("%w: got %d, max supported %d", ErrUnsupportedVersion, version, FormatVersion)
	}
	saltLen := int(data[1])
	if saltLen < crypto.MinSaltLength {
		return nil, fmt.Errorf("%w: salt length %d below minimum %d", ErrMalformedFile, saltLen, crypto.MinSaltLength)
	}
	// The ciphertext must at least hold the GCM tag.
	minLen := headerBaseLen + saltLen + crypto.NonceLength + 16
	if len(data) < minLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedFile, len(data), minLen)
	}

	offset := headerBaseLen
	salt := data[offset : offset+saltLen]
	offset += saltLen
	nonce := data[offset : offset+crypto.NonceLength]
	offset += crypto.NonceLength

	return &vaultFile{
		version:    version,
		salt:       salt,
		nonce:      nonce,
		ciphertext: data[offset:],
	}, nil
}

// payload is the plaintext JSON document inside the ciphertext. The layout
// matches the vault contents model: a schema version and the ordered server
// list.
type payload struct {
	Version string             `json:"version"`
	Servers []CredentialRecord `json:"servers"`
}

// encodePayload serializes the decrypted contents. The returned buffer holds
// plaintext secrets; the caller must wipe it after encryption.
func encodePayload(c *Contents) ([]byte, error) {
	p := payload{
		Version: payloadVersion,
		Servers: c.records,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("vault: failed to encode contents: %w", err)
	}
	return data, nil
}

// decodePayload parses decrypted vault content. Failures here mean the
// bytes authenticated correctly but are not a valid vault document, which
// is reported as corruption, never as a password problem.
func decodePayload(data []byte) (*Contents, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptVault, err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("%w: missing payload version", ErrCorruptVault)
	}
	// Accept any 1.x payload; the record schema has only additive changes
	// within a major version.
	if !strings.HasPrefix(p.Version, "1.") {
		return nil, fmt.Errorf("%w: unknown payload version %q", ErrCorruptVault, p.Version)
	}
	return &Contents{records: p.Servers}, nil
}
