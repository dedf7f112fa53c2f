package memory

import (
	"context"
	"sync"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// RecordStore keeps at most one record of type T per owner. Records are
// copied on the way in and out so callers never share memory with the store.
type RecordStore[T any, P interface {
	*T
	models.Record
}] struct {
	mu     sync.RWMutex
	kind   models.RecordKind
	nextID int64
	rows   map[int64]T
}

// NewRecordStore creates an empty store for kind
func NewRecordStore[T any, P interface {
	*T
	models.Record
}](kind models.RecordKind) *RecordStore[T, P] {
	return &RecordStore[T, P]{
		kind: kind,
		rows: make(map[int64]T),
	}
}

// FindByOwner returns a copy of the owner's record
func (s *RecordStore[T, P]) FindByOwner(_ context.Context, userID int64) (P, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[userID]
	if !ok {
		return nil, apperrors.NewRecordNotFoundError(s.kind.Label())
	}
	return P(&row), nil
}

// Insert stores rec unless its owner already has one
func (s *RecordStore[T, P]) Insert(_ context.Context, rec P) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[rec.OwnerID()]; ok {
		return apperrors.NewRecordExistsError(s.kind.Label())
	}
	s.nextID++
	rec.SetRecordID(s.nextID)
	s.rows[rec.OwnerID()] = *rec
	return nil
}

// Replace overwrites the owner's record, keeping its id
func (s *RecordStore[T, P]) Replace(_ context.Context, rec P) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[rec.OwnerID()]
	if !ok {
		return apperrors.NewRecordNotFoundError(s.kind.Label())
	}
	rec.SetRecordID(P(&existing).RecordID())
	s.rows[rec.OwnerID()] = *rec
	return nil
}

// DeleteByOwner removes the owner's record
func (s *RecordStore[T, P]) DeleteByOwner(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[userID]; !ok {
		return apperrors.NewRecordNotFoundError(s.kind.Label())
	}
	delete(s.rows, userID)
	return nil
}
