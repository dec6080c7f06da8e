package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vidshop/backend/internal/domain"
)

// snapshot is the on-disk shape of the cart, a fixed key wrapping the items
// the way the reference app kept a single localStorage entry.
type snapshot struct {
	Cart []domain.CartItem `json:"shoppable_video_cart"`
}

// FileStore persists the cart snapshot as a JSON file. Writes go to a temp
// file in the same directory followed by a rename, so a crash mid-write
// cannot leave a truncated snapshot.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file is an empty cart, not an error;
// a corrupt file is an error the caller degrades from.
func (s *FileStore) Load() ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse cart snapshot: %w", err)
	}
	return snap.Cart, nil
}

// Save writes the full snapshot.
func (s *FileStore) Save(items []domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items == nil {
		items = []domain.CartItem{}
	}
	data, err := json.MarshalIndent(snapshot{Cart: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cart snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace cart snapshot: %w", err)
	}
	return nil
}
