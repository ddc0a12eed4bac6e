package ipfsmock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"safeguard-backend/internal/infrastructure/ipfs"
)

var _ ipfs.Store = (*Store)(nil)

// Store keeps documents in memory under deterministic fake CIDs.
// PutErr / GetErr force failures.
type Store struct {
	mu     sync.Mutex
	docs   map[string][]byte
	PutErr error
	GetErr error
}

func New() *Store { return &Store{docs: map[string][]byte{}} }

func (s *Store) Put(_ context.Context, _ string, v any) (string, error) {
	if s.PutErr != nil {
		return "", s.PutErr
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = map[string][]byte{}
	}
	ref := fmt.Sprintf("bafymock%04d", len(s.docs)+1)
	s.docs[ref] = b
	return ref, nil
}

func (s *Store) Get(_ context.Context, ref string, out any) error {
	if s.GetErr != nil {
		return s.GetErr
	}
	s.mu.Lock()
	b, ok := s.docs[ref]
	s.mu.Unlock()
	if !ok {
		return ipfs.ErrNotFound
	}
	return json.Unmarshal(b, out)
}

// Len reports how many documents were stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}
