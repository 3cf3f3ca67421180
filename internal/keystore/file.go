package keystore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/cryptox"
)

// fileFormat is the on-disk JSON layout. When a passphrase is configured,
// Values is empty and the whole map is AEAD-sealed into Sealed with a key
// derived from the passphrase and Salt.
type fileFormat struct {
	Version int               `json:"version"`
	Salt    string            `json:"salt,omitempty"`
	Nonce   string            `json:"nonce,omitempty"`
	Sealed  string            `json:"sealed,omitempty"`
	Values  map[string]string `json:"values,omitempty"`
}

// FileStore keeps secrets in a single 0600 file, optionally sealed with a
// passphrase-derived key. It stands in for the platform keychain the mobile
// app would use.
type FileStore struct {
	mu     sync.Mutex
	path   string
	seal   []byte // derived sealing key, nil in plain mode
	salt   []byte
	values map[string]string
}

// NewFileStore opens (or prepares to create) the keystore file at path. If
// passphrase is non-empty the file content is sealed with an argon2id-derived
// key; an existing file that cannot be opened with the given passphrase fails
// with common.ErrSecureStorageUnavailable.
//
// The caller may wipe passphrase after the call returns.
func NewFileStore(path string, passphrase []byte) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]string)}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}

	if err := s.load(passphrase); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load(passphrase []byte) error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// fresh install: remember the sealing parameters for the first save
		if len(passphrase) > 0 {
			salt, err := cryptox.RandBytes(16)
			if err != nil {
				return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
			}
			s.salt = salt
			s.seal = cryptox.DeriveKey(passphrase, salt)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}

	if f.Sealed == "" {
		if len(passphrase) > 0 {
			return fmt.Errorf("%w: keystore is not sealed but a passphrase was given", common.ErrSecureStorageUnavailable)
		}
		if f.Values != nil {
			s.values = f.Values
		}
		return nil
	}

	if len(passphrase) == 0 {
		return fmt.Errorf("%w: keystore is sealed, passphrase required", common.ErrSecureStorageUnavailable)
	}

	salt, err := hex.DecodeString(f.Salt)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}
	nonce, err := hex.DecodeString(f.Nonce)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}
	sealed, err := hex.DecodeString(f.Sealed)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}

	key := cryptox.DeriveKey(passphrase, salt)
	plain, err := cryptox.Open(sealed, nonce, key)
	if err != nil {
		cryptox.Wipe(key)
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}

	if err := json.Unmarshal(plain, &s.values); err != nil {
		cryptox.Wipe(key)
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}

	s.salt = salt
	s.seal = key
	return nil
}

// save writes the current values atomically (temp file + rename).
// Callers must hold s.mu.
func (s *FileStore) save() error {
	f := fileFormat{Version: 1}

	if s.seal != nil {
		plain, err := json.Marshal(s.values)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
		}
		sealed, nonce, err := cryptox.Seal(plain, s.seal)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
		}
		f.Salt = hex.EncodeToString(s.salt)
		f.Nonce = hex.EncodeToString(nonce)
		f.Sealed = hex.EncodeToString(sealed)
	} else {
		f.Values = s.values
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %w", common.ErrSecureStorageUnavailable, err)
	}
	return nil
}

func (s *FileStore) Get(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name], nil
}

func (s *FileStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return s.save()
}

func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[name]; !ok {
		return nil
	}
	delete(s.values, name)
	return s.save()
}
