package credstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/netpanel/netpanel-go/internal/core/domain"
	"github.com/netpanel/netpanel-go/pkg/crypto/seal"
)

// DefaultFilePath returns the default credential file location.
func DefaultFilePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".netpanel", "credentials.json")
}

// File is a file-backed Store. The whole key set is held in memory and the
// file is rewritten atomically (temp file + rename) on every mutation, so a
// write that returned is durable across process restarts.
//
// With a seal key configured the file content is a ChaCha20-Poly1305 box;
// without one it is plain JSON with 0600 permissions.
type File struct {
	path    string
	sealKey []byte

	mu     sync.RWMutex
	values map[string]string
}

// FileOption configures the file store.
type FileOption func(*File)

// WithSealKey enables at-rest sealing with the given 32-byte key.
func WithSealKey(key []byte) FileOption {
	return func(f *File) {
		f.sealKey = key
	}
}

// NewFile opens (or initializes) a file-backed store at path. An empty path
// selects DefaultFilePath.
//
// A missing file and a file with corrupt JSON both yield an empty store: the
// restoration path must degrade to "no session", never fail on bad persisted
// state. A sealed file that does not open under the configured key is the
// one exception and reports ErrStoreSeal, since silently discarding
// credentials would mask a configuration mistake.
func NewFile(path string, opts ...FileOption) (*File, error) {
	if path == "" {
		path = DefaultFilePath()
	}

	f := &File{
		path:   path,
		values: make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the value for key, or ("", false) when absent.
func (f *File) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Set durably writes key to value.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flush()
}

// Remove durably deletes key. Removing an absent key is a no-op.
func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

func (f *File) load() error {
	payload, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return domain.ErrStoreWrite.WithCause(err)
	}

	if seal.IsSealed(payload) {
		if len(f.sealKey) == 0 {
			return domain.ErrStoreSeal.WithDetails("file is sealed but no key is configured")
		}
		payload, err = seal.Open(f.sealKey, payload)
		if err != nil {
			return domain.ErrStoreSeal.WithCause(err)
		}
	}

	var values map[string]string
	if err := json.Unmarshal(payload, &values); err != nil {
		// Corrupt persisted state degrades to an empty store.
		return nil
	}
	f.values = values
	return nil
}

func (f *File) flush() error {
	payload, err := json.Marshal(f.values)
	if err != nil {
		return domain.ErrStoreWrite.WithCause(err)
	}

	if len(f.sealKey) > 0 {
		payload, err = seal.Seal(f.sealKey, payload)
		if err != nil {
			return domain.ErrStoreWrite.WithCause(err)
		}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return domain.ErrStoreWrite.WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return domain.ErrStoreWrite.WithCause(err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return domain.ErrStoreWrite.WithCause(err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return domain.ErrStoreWrite.WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return domain.ErrStoreWrite.WithCause(err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return domain.ErrStoreWrite.WithCause(err)
	}
	return nil
}
