package vault

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/portkeyhq/portkey/pkg/crypto"
)

// File permissions: the vault file is owner read/write only, its directory
// owner-only.
const (
	FileMode = 0600
	DirMode  = 0700
)

// Store owns the on-disk encrypted vault file. It is safe to create many
// independent stores in one process (tests do); each unlocked session is
// passed explicitly rather than held in process-wide state.
type Store struct {
	path string
	lock *flock.Flock
}

// New creates a Store for the vault file at path. Nothing is read or
// written until Initialize or Unlock.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the vault file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a vault file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Session is one unlocked vault. It exclusively owns the derived master key
// and the decrypted contents; Close destroys both. Only the process that
// unlocked it can persist through it.
type Session struct {
	key      []byte // derived master key, wiped on Close
	salt     []byte // salt the key was derived from
	contents *Contents
	baseSum  [sha256.Size]byte // file hash captured at unlock, for conflict detection
	closed   bool
}

// Initialize creates a new empty vault encrypted under the given master
// password:
//  1. Generate a fresh random salt
//  2. Derive the master key
//  3. Encode an empty record sequence and encrypt it with a fresh nonce
//  4. Write the file atomically with owner-only permissions
//
// The password buffer is not retained; the caller wipes it. Fails with
// ErrVaultExists if a vault file is already present.
func (s *Store) Initialize(password []byte) error {
	if s.Exists() {
		return ErrVaultExists
	}

	if err := os.MkdirAll(filepath.Dir(s.path), DirMode); err != nil {
		return fmt.Errorf("vault: failed to create vault directory: %w", err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}

	key, err := crypto.DeriveKey(password, salt)
	if err != nil {
		return err
	}
	defer crypto.SecureWipe(key)

	data, err := sealContents(key, salt, &Contents{})
	if err != nil {
		return err
	}

	return s.writeAtomic(data)
}

// Unlock reads the vault file, derives the master key from the stored salt
// and decrypts the contents. A wrong password and a tampered file both
// surface as ErrIntegrityFailure. The returned session owns the key and the
// decrypted contents; callers must Close it on every exit path.
func (s *Store) Unlock(password []byte) (*Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrVaultNotFound
		}
		return nil, fmt.Errorf("vault: failed to read vault file: %w", err)
	}

	vf, err := decodeFile(raw)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey(password, vf.salt)
	if err != nil {
		return nil, err
	}

	plain, err := crypto.Decrypt(key, vf.ciphertext, vf.nonce)
	if err != nil {
		crypto.SecureWipe(key)
		if errors.Is(err, crypto.ErrDecryptionFailed) || errors.Is(err, crypto.ErrCiphertextTooShort) {
			return nil, ErrIntegrityFailure
		}
		return nil, err
	}
	defer crypto.SecureWipe(plain)

	contents, err := decodePayload(plain)
	if err != nil {
		crypto.SecureWipe(key)
		return nil, err
	}

	return &Session{
		key:      key,
		salt:     append([]byte(nil), vf.salt...),
		contents: contents,
		baseSum:  sha256.Sum256(raw),
	}, nil
}

// Persist re-encodes the session contents, encrypts them with a fresh nonce
// under the session key and atomically replaces the vault file. Before
// writing it verifies the on-disk file still matches the snapshot taken at
// unlock and fails with ErrConflict if another invocation wrote in between.
// The write section is guarded by an advisory file lock.
func (s *Store) Persist(sess *Session) error {
	if sess.closed {
		return ErrSessionClosed
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("vault: failed to acquire vault lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to release vault lock: %v\n", err)
		}
	}()

	// Detect concurrent external modification since unlock. A deleted file
	// counts as a conflict too: someone destroyed the vault under us.
	cur, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConflict
		}
		return fmt.Errorf("vault: failed to read vault file: %w", err)
	}
	if sha256.Sum256(cur) != sess.baseSum {
		return ErrConflict
	}

	data, err := sealContents(sess.key, sess.salt, sess.contents)
	if err != nil {
		return err
	}

	if err := s.writeAtomic(data); err != nil {
		return err
	}

	sess.baseSum = sha256.Sum256(data)
	return nil
}

// ChangePassword rekeys the vault: a fresh salt, a key derived from the new
// password, and an immediate persist. On any failure the session keeps its
// old key and the on-disk file is untouched.
func (s *Store) ChangePassword(sess *Session, newPassword []byte) error {
	if sess.closed {
		return ErrSessionClosed
	}

	newSalt, err := crypto.GenerateSalt()
	if err != nil {
		return err
	}
	newKey, err := crypto.DeriveKey(newPassword, newSalt)
	if err != nil {
		return err
	}

	oldKey, oldSalt := sess.key, sess.salt
	sess.key, sess.salt = newKey, newSalt
	if err := s.Persist(sess); err != nil {
		sess.key, sess.salt = oldKey, oldSalt
		crypto.SecureWipe(newKey)
		return err
	}

	crypto.SecureWipe(oldKey)
	return nil
}

// sealContents encodes and encrypts the contents, returning the complete
// vault file bytes. The intermediate plaintext buffer is wiped on every
// return path.
func sealContents(key, salt []byte, c *Contents) ([]byte, error) {
	plain, err := encodePayload(c)
	if err != nil {
		return nil, err
	}
	defer crypto.SecureWipe(plain)

	ciphertext, nonce, err := crypto.Encrypt(key, plain)
	if err != nil {
		return nil, err
	}

	return encodeFile(&vaultFile{
		version:    FormatVersion,
		salt:       salt,
		nonce:      nonce,
		ciphertext: ciphertext,
	}), nil
}

// writeAtomic writes the vault file via a temp file in the same directory
// followed by rename, so a crash mid-write leaves the previous vault intact.
func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".vault-*.tmp")
	if err != nil {
		return fmt.Errorf("vault: failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if err := tmp.Chmod(FileMode); err != nil {
		cleanup()
		return fmt.Errorf("vault: failed to set vault permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("vault: failed to write vault file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("vault: failed to sync vault file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("vault: failed to close vault file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("vault: failed to replace vault file: %w", err)
	}
	return nil
}

// Add appends a record to the session contents. In-memory only; Persist
// makes it durable.
func (sess *Session) Add(r CredentialRecord) error {
	if sess.closed {
		return ErrSessionClosed
	}
	return sess.contents.Add(r)
}

// Remove deletes the named record from the session contents. In-memory
// only; Persist makes it durable.
func (sess *Session) Remove(name string) error {
	if sess.closed {
		return ErrSessionClosed
	}
	return sess.contents.Remove(name)
}

// Contents returns the session's decrypted contents.
func (sess *Session) Contents() *Contents {
	return sess.contents
}

// Index builds a fresh search index over the current contents. The index is
// a derived view; rebuild after Add or Remove.
func (sess *Session) Index() *Index {
	return NewIndex(sess.contents)
}

// Closed reports whether Close has run.
func (sess *Session) Closed() bool {
	return sess.closed
}

// Close zeroizes the derived master key and every decrypted password, then
// releases the contents. Idempotent; must run on every exit path, including
// failures.
func (sess *Session) Close() {
	if sess.closed {
		return
	}
	sess.closed = true

	crypto.SecureWipe(sess.key)
	sess.key = nil
	crypto.SecureWipe(sess.salt)
	sess.salt = nil
	if sess.contents != nil {
		sess.contents.wipe()
		sess.contents = nil
	}
}
