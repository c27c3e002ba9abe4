package step

import (
	"bufio"
	"fmt"
	"os"

	"github.com/irodionov/ifcmerge/internal/domain/ports"
)

// Store opens and creates models on the local filesystem. It implements
// ports.ModelStore.
type Store struct{}

// NewStore creates a new store.
func NewStore() *Store {
	return &Store{}
}

// Open parses the file at path into a model. The file handle is released
// as soon as decoding finishes, whether or not it succeeds.
func (s *Store) Open(path string) (ports.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return m, nil
}

// New creates an empty model bound to a schema version.
func (s *Store) New(schema string) (ports.Model, error) {
	return New(schema), nil
}
