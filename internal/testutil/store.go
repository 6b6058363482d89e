// Package testutil provides in-memory repositories and recording doubles for
// usecase and handler tests.
package testutil

import (
	"strings"
	"sync"

	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// store keeps documents in insertion order and hands out deep copies, so a
// caller mutating a loaded document never changes stored state without an
// explicit Update.
type store[T any] struct {
	mu    sync.Mutex
	docs  []*T
	id    func(*T) primitive.ObjectID
	label string
}

func newStore[T any](label string, id func(*T) primitive.ObjectID) *store[T] {
	return &store[T]{id: id, label: label}
}

func clone[T any](v *T) *T {
	data, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := bson.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

func (s *store[T]) create(v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(v)
	for _, d := range s.docs {
		if s.id(d) == id {
			return apperror.Conflict(s.label + " already exists")
		}
	}
	s.docs = append(s.docs, clone(v))
	return nil
}

func (s *store[T]) find(id primitive.ObjectID) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if s.id(d) == id {
			return clone(d), nil
		}
	}
	return nil, apperror.NotFound(s.label + " not found")
}

func (s *store[T]) update(v *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(v)
	for i, d := range s.docs {
		if s.id(d) == id {
			s.docs[i] = clone(v)
			return nil
		}
	}
	return apperror.NotFound(s.label + " not found")
}

func (s *store[T]) delete(id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.docs {
		if s.id(d) == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound(s.label + " not found")
}

// filter returns copies of the matching documents, newest first.
func (s *store[T]) filter(keep func(*T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []T{}
	for i := len(s.docs) - 1; i >= 0; i-- {
		if keep == nil || keep(s.docs[i]) {
			out = append(out, *clone(s.docs[i]))
		}
	}
	return out
}

func (s *store[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

func paginate[T any](items []T, page, pageSize int) ([]T, int64) {
	total := int64(len(items))
	if pageSize <= 0 {
		return items, total
	}
	off := int(pagination.Offset(page, pageSize))
	if off >= len(items) {
		return []T{}, total
	}
	end := off + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[off:end], total
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
