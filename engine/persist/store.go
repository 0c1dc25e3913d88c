package persist

import (
	"fmt"
	"os"
	"path/filepath"
)

const saveExt = ".sav"

// Store writes and reads save slots under a single directory, keeping the
// slot index current.
type Store struct {
	dir   string
	codec *Codec
	index *Index
}

// NewStore opens a store rooted at dir, creating the directory and the slot
// index as needed. A nil cipher stores saves unencrypted.
func NewStore(dir string, cipher Cipher) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	index, err := OpenIndex(filepath.Join(dir, "slots.db"))
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, codec: NewCodec(cipher), index: index}, nil
}

// Save validates the slot name, encodes the document and writes it, then
// records the slot in the index.
func (s *Store) Save(name string, doc *Document) error {
	if err := ValidateSlotName(name); err != nil {
		return err
	}
	data, err := s.codec.Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}
	return s.index.Record(SlotInfo{
		Name:    name,
		Session: doc.Game.Session,
		Turns:   doc.Game.Turns,
		SavedAt: doc.Game.SavedAt,
	})
}

// Load reads and decodes a slot. A missing file, a decrypt failure or a
// malformed document all surface as errors; nothing is partially loaded.
func (s *Store) Load(name string) (*Document, error) {
	if err := ValidateSlotName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("reading save file: %w", err)
	}
	return s.codec.Decode(data)
}

// List returns the indexed slots, most recent first.
func (s *Store) List() ([]SlotInfo, error) {
	return s.index.List()
}

// Close releases the slot index.
func (s *Store) Close() error {
	return s.index.Close()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+saveExt)
}
