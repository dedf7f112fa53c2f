package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// recordTable maps one singleton record type onto its table. columns lists
// the data columns in the order returned by values and scanned by fields.
type recordTable[P models.Record] struct {
	name      string
	kind      models.RecordKind
	columns   []string
	newRecord func() P
	values    func(rec P) []any
	fields    func(rec P) []any
}

// RecordRepository stores one singleton record per user in a single table
type RecordRepository[P models.Record] struct {
	db    db.Querier
	sb    squirrel.StatementBuilderType
	table recordTable[P]
}

func newRecordRepository[P models.Record](q db.Querier, table recordTable[P]) *RecordRepository[P] {
	return &RecordRepository[P]{
		db:    q,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		table: table,
	}
}

func (r *RecordRepository[P]) notFound() error {
	return apperrors.NewRecordNotFoundError(r.table.kind.Label())
}

// FindByOwner returns the record owned by userID
func (r *RecordRepository[P]) FindByOwner(ctx context.Context, userID int64) (P, error) {
	var zero P

	columns := append([]string{"id", "user_id"}, r.table.columns...)
	sql, args, err := r.sb.Select(columns...).
		From(r.table.name).
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.name).Msg("Error building find record SQL")
		return zero, fmt.Errorf("failed to build find %s query: %w", r.table.kind, err)
	}

	rec := r.table.newRecord()
	var id, owner int64
	targets := append([]any{&id, &owner}, r.table.fields(rec)...)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(targets...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, r.notFound()
		}
		logger.Error().Err(err).Int64("userID", userID).Str("table", r.table.name).Msg("Error scanning record row")
		return zero, fmt.Errorf("error getting %s record: %w", r.table.kind, err)
	}
	rec.SetRecordID(id)
	rec.SetOwnerID(owner)
	return rec, nil
}

// Insert stores rec for its owner. A second record for the same owner is
// rejected by the unique owner constraint and reported as a conflict.
func (r *RecordRepository[P]) Insert(ctx context.Context, rec P) error {
	columns := append([]string{"user_id"}, r.table.columns...)
	values := append([]any{rec.OwnerID()}, r.table.values(rec)...)

	sql, args, err := r.sb.Insert(r.table.name).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (user_id) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.name).Msg("Error building insert record SQL")
		return fmt.Errorf("failed to build insert %s query: %w", r.table.kind, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewRecordExistsError(r.table.kind.Label())
		}
		logger.Error().Err(err).Int64("userID", rec.OwnerID()).Str("table", r.table.name).Msg("Error executing insert record query")
		return fmt.Errorf("error creating %s record: %w", r.table.kind, err)
	}
	rec.SetRecordID(id)
	return nil
}

// Replace overwrites every data column of the owner's record
func (r *RecordRepository[P]) Replace(ctx context.Context, rec P) error {
	set := make(map[string]any, len(r.table.columns))
	for i, v := range r.table.values(rec) {
		set[r.table.columns[i]] = v
	}

	sql, args, err := r.sb.Update(r.table.name).
		SetMap(set).
		Where(squirrel.Eq{"user_id": rec.OwnerID()}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.name).Msg("Error building update record SQL")
		return fmt.Errorf("failed to build update %s query: %w", r.table.kind, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.notFound()
		}
		logger.Error().Err(err).Int64("userID", rec.OwnerID()).Str("table", r.table.name).Msg("Error executing update record query")
		return fmt.Errorf("error updating %s record: %w", r.table.kind, err)
	}
	rec.SetRecordID(id)
	return nil
}

// DeleteByOwner removes the owner's record
func (r *RecordRepository[P]) DeleteByOwner(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Delete(r.table.name).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("table", r.table.name).Msg("Error building delete record SQL")
		return fmt.Errorf("failed to build delete %s query: %w", r.table.kind, err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Str("table", r.table.name).Msg("Error executing delete record query")
		return fmt.Errorf("error deleting %s record: %w", r.table.kind, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.notFound()
	}
	return nil
}
