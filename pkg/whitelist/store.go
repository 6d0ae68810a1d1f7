package whitelist

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store is the non-volatile memory holding the whitelist image.
// Addresses range over [0, StoreSize).
type Store interface {
	// ByteAt returns the byte stored at addr.
	ByteAt(addr int) byte
}

// MemoryStore is an in-memory Store, used for simulation and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	image [StoreSize]byte
}

// NewMemoryStore creates a store with the given tags in consecutive slots.
// Remaining slots are empty.
func NewMemoryStore(uids ...UID) (*MemoryStore, error) {
	img, err := EncodeImage(uids)
	if err != nil {
		return nil, err
	}
	s := &MemoryStore{}
	copy(s.image[:], img)
	return s, nil
}

// ByteAt returns the byte at addr, or EmptyByte outside the store.
func (s *MemoryStore) ByteAt(addr int) byte {
	if addr < 0 || addr >= StoreSize {
		return EmptyByte
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image[addr]
}

// WriteByteAt stores b at addr. Used only by offline tooling and tests.
func (s *MemoryStore) WriteByteAt(addr int, b byte) error {
	if addr < 0 || addr >= StoreSize {
		return fmt.Errorf("%w: %d", ErrAddressOutOfRange, addr)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image[addr] = b
	return nil
}

// FileStore is a Store backed by a raw image file of exactly StoreSize bytes.
// The image is read once when opened.
type FileStore struct {
	path  string
	image []byte
}

// OpenFileStore reads the image at path.
func OpenFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open whitelist store: %w", err)
	}
	if len(data) != StoreSize {
		return nil, fmt.Errorf("%w: %s has %d bytes, want %d", ErrImageSize, path, len(data), StoreSize)
	}
	return &FileStore{path: path, image: data}, nil
}

// Path returns the image file path.
func (s *FileStore) Path() string {
	return s.path
}

// ByteAt returns the byte at addr, or EmptyByte outside the store.
func (s *FileStore) ByteAt(addr int) byte {
	if addr < 0 || addr >= len(s.image) {
		return EmptyByte
	}
	return s.image[addr]
}

// EncodeImage lays out uids in consecutive slots and fills the rest with
// EmptyByte.
func EncodeImage(uids []UID) ([]byte, error) {
	if len(uids) > MaxUsers {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTags, len(uids), MaxUsers)
	}

	img := make([]byte, StoreSize)
	for i := range img {
		img[i] = EmptyByte
	}
	for slot, u := range uids {
		if u.IsEmpty() {
			return nil, fmt.Errorf("%w: slot %d holds the empty-slot sentinel", ErrInvalidUID, slot)
		}
		copy(img[slot*UIDSize:], u[:])
	}
	return img, nil
}

// WriteImage writes an image file for uids at path.
func WriteImage(path string, uids []UID) error {
	img, err := EncodeImage(uids)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, img, 0644)
}

// TagFile is the YAML source for building a whitelist image offline.
//
//	tags:
//	  - "AA:BB:CC:DD"
//	  - "01 02 03 04"
type TagFile struct {
	Tags []UID `yaml:"tags"`
}

// LoadTagFile reads a YAML tag file.
func LoadTagFile(path string) ([]UID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tf TagFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse tag file %s: %w", path, err)
	}
	if len(tf.Tags) > MaxUsers {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTags, len(tf.Tags), MaxUsers)
	}
	return tf.Tags, nil
}

// Compile-time interface satisfaction checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
)
