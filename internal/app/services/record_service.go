package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/metrics"
)

// RecordService runs the CRUD operations of one singleton record kind for
// an already resolved owner.
type RecordService[P models.Record] struct {
	kind    models.RecordKind
	store   RecordStore[P]
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewRecordService creates a RecordService for kind
func NewRecordService[P models.Record](kind models.RecordKind, store RecordStore[P], m *metrics.Metrics, logger zerolog.Logger) *RecordService[P] {
	return &RecordService[P]{
		kind:    kind,
		store:   store,
		metrics: m,
		logger:  logger.With().Str("kind", string(kind)).Logger(),
	}
}

// Kind returns the record kind served
func (s *RecordService[P]) Kind() models.RecordKind {
	return s.kind
}

// Get returns the owner's record
func (s *RecordService[P]) Get(ctx context.Context, ownerID int64) (P, error) {
	rec, err := s.store.FindByOwner(ctx, ownerID)
	s.metrics.RecordOperation(string(s.kind), "get", outcome(err))
	return rec, err
}

// Create stores rec for ownerID. An existing record is a conflict.
func (s *RecordService[P]) Create(ctx context.Context, ownerID int64, rec P) (err error) {
	defer func() { s.metrics.RecordOperation(string(s.kind), "create", outcome(err)) }()

	if _, err := s.store.FindByOwner(ctx, ownerID); err == nil {
		return apperrors.NewRecordExistsError(s.kind.Label())
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return fmt.Errorf("error checking existing %s record: %w", s.kind, err)
	}

	rec.SetOwnerID(ownerID)
	if err := s.store.Insert(ctx, rec); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", ownerID).Msg("Record created")
	return nil
}

// Update replaces every field of the owner's record
func (s *RecordService[P]) Update(ctx context.Context, ownerID int64, rec P) error {
	rec.SetOwnerID(ownerID)
	err := s.store.Replace(ctx, rec)
	s.metrics.RecordOperation(string(s.kind), "update", outcome(err))
	if err == nil {
		s.logger.Info().Int64("userID", ownerID).Msg("Record updated")
	}
	return err
}

// Delete removes the owner's record
func (s *RecordService[P]) Delete(ctx context.Context, ownerID int64) error {
	err := s.store.DeleteByOwner(ctx, ownerID)
	s.metrics.RecordOperation(string(s.kind), "delete", outcome(err))
	if err == nil {
		s.logger.Info().Int64("userID", ownerID).Msg("Record deleted")
	}
	return err
}
