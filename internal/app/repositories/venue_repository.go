package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/dberrors"
	"github.com/sharecrm/share/internal/pkg/logger"
)

var venueColumns = []string{"id", "name", "address", "suburb", "postcode", "capacity", "notes", "is_active", "created_at", "updated_at"}

// VenueRepository handles venues
type VenueRepository struct {
	baseRepository
}

// NewVenueRepository creates a new VenueRepository
func NewVenueRepository(db *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{baseRepository: newBaseRepository(db)}
}

func scanVenue(row scanner) (*models.Venue, error) {
	v := &models.Venue{}
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.Suburb, &v.Postcode, &v.Capacity, &v.Notes, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// Create inserts a venue
func (r *VenueRepository) Create(ctx context.Context, v *models.Venue) (int64, error) {
	sql, args, err := r.sb.Insert("venues").
		Columns("name", "address", "suburb", "postcode", "capacity", "notes", "is_active").
		Values(v.Name, v.Address, v.Suburb, v.Postcode, v.Capacity, v.Notes, v.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create venue query: %w", err)
	}
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "venues_name_key") {
			return 0, apperrors.NewConflictError("a venue with this name already exists")
		}
		logger.Error().Err(err).Str("name", v.Name).Msg("Error creating venue")
		return 0, fmt.Errorf("error creating venue: %w", err)
	}
	return id, nil
}

// GetByID retrieves a venue
func (r *VenueRepository) GetByID(ctx context.Context, id int64) (*models.Venue, error) {
	sql, args, err := r.sb.Select(venueColumns...).From("venues").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get venue query: %w", err)
	}
	v, err := scanVenue(r.conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, fmt.Errorf("error retrieving venue: %w", err)
	}
	return v, nil
}

// List returns venues ordered by name
func (r *VenueRepository) List(ctx context.Context, activeOnly bool) ([]*models.Venue, error) {
	q := r.sb.Select(venueColumns...).From("venues").OrderBy("name")
	if activeOnly {
		q = q.Where(squirrel.Eq{"is_active": true})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list venues query: %w", err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing venues")
		return nil, fmt.Errorf("error listing venues: %w", err)
	}
	defer rows.Close()

	venues := []*models.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning venue row: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// Update writes every editable field
func (r *VenueRepository) Update(ctx context.Context, v *models.Venue) error {
	sql, args, err := r.sb.Update("venues").
		Set("name", v.Name).
		Set("address", v.Address).
		Set("suburb", v.Suburb).
		Set("postcode", v.Postcode).
		Set("capacity", v.Capacity).
		Set("notes", v.Notes).
		Set("is_active", v.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": v.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update venue query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "venues_name_key") {
			return apperrors.NewConflictError("a venue with this name already exists")
		}
		logger.Error().Err(err).Int64("venueID", v.ID).Msg("Error updating venue")
		return fmt.Errorf("error updating venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrVenueNotFound
	}
	return nil
}

// Delete removes a venue; refused while classes reference it
func (r *VenueRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("venues").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete venue query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: venue has classes", apperrors.ErrResourceInUse)
		}
		logger.Error().Err(err).Int64("venueID", id).Msg("Error deleting venue")
		return fmt.Errorf("error deleting venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrVenueNotFound
	}
	return nil
}
