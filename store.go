package pocketbook

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the persistence port of the book: load the whole document, save
// the whole document. Commands construct a book from Load, mutate it in
// memory and hand it back to Save; tests plug a MemStore instead of a file.
type Store interface {
	Load() (*Book, error)
	Save(*Book) error
}

// FileStore persists the book as a single JSON file.
//
// There is no locking and no version stamp: the store assumes a single
// writer, which holds for one interactive CLI but not for concurrent
// processes sharing the same path.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by the given file path.
func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Load reads the book document. On first run, when the file does not exist
// yet, it returns a fresh empty book.
func (s *FileStore) Load() (*Book, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open book file %q: %w", s.Path, err)
	}
	defer f.Close()

	b, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", s.Path, err)
	}
	return b, nil
}

// Save writes the whole book document, creating the parent directory if
// needed.
func (s *FileStore) Save(b *Book) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create directory for book %q: %w", s.Path, err)
		}
	}
	// The document carries the owner's pin, keep it private.
	f, err := os.OpenFile(s.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("could not open book file %q for writing: %w", s.Path, err)
	}
	defer f.Close()
	return EncodeBook(f, b)
}

// MemStore is an in-memory Store for tests. It round-trips the book through
// the JSON codec on every Save/Load, so a test covering a book operation also
// covers its persistence.
type MemStore struct {
	doc []byte
}

// Load decodes the last saved document, or returns a fresh book when nothing
// was saved yet.
func (s *MemStore) Load() (*Book, error) {
	if s.doc == nil {
		return NewBook(), nil
	}
	return DecodeBook(bytes.NewReader(s.doc))
}

// Save encodes the book and keeps the bytes.
func (s *MemStore) Save(b *Book) error {
	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		return err
	}
	s.doc = buf.Bytes()
	return nil
}

var _ Store = (*FileStore)(nil)
var _ Store = (*MemStore)(nil)
