package vault

import "errors"

// Errors
var (
	// ErrVaultExists indicates a vault file is already present at the path.
	ErrVaultExists = errors.New("vault: vault already exists at this path")

	// ErrVaultNotFound indicates no vault file exists at the path.
	ErrVaultNotFound = errors.New("vault: vault not found at this path")

	// ErrIntegrityFailure indicates authenticated decryption failed. A wrong
	// master password and a tampered or corrupted file are indistinguishable
	// here; AEAD gives no oracle and this package does not try to invent one.
	ErrIntegrityFailure = errors.New("vault: incorrect password or corrupted vault")

	// ErrCorruptVault indicates decryption succeeded but the plaintext is not
	// valid vault content (schema mismatch or unknown payload version).
	ErrCorruptVault = errors.New("vault: vault contents are corrupted")

	// ErrMalformedFile indicates the vault file framing is truncated or
	// invalid before any cryptography runs.
	ErrMalformedFile = errors.New("vault: malformed vault file")

	// ErrUnsupportedVersion indicates the vault file was written by a newer
	// format version.
	ErrUnsupportedVersion = errors.New("vault: unsupported vault file version")

	// ErrConflict indicates the on-disk vault changed since this session was
	// unlocked. The caller should re-unlock and retry.
	ErrConflict = errors.New("vault: vault file changed on disk since unlock")

	// ErrLocked indicates another process holds the vault lock.
	ErrLocked = errors.New("vault: vault is locked by another process")

	// ErrSessionClosed indicates the session was already closed and its key
	// material destroyed.
	ErrSessionClosed = errors.New("vault: session is closed")

	// ErrDuplicateName indicates a record with the same name (case-insensitive)
	// already exists.
	ErrDuplicateName = errors.New("vault: a server with this name already exists")

	// ErrRecordNotFound indicates no record matches the given name.
	ErrRecordNotFound = errors.New("vault: server not found")

	// Record validation errors.
	ErrNameRequired     = errors.New("vault: server name is required")
	ErrHostRequired     = errors.New("vault: host is required")
	ErrUsernameRequired = errors.New("vault: username is required")
)
