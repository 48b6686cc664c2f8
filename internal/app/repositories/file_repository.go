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
	"github.com/sharecrm/share/internal/pkg/logger"
)

// FileRepository handles file records
type FileRepository struct {
	baseRepository
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{baseRepository: newBaseRepository(db)}
}

// Create stores a file record
func (r *FileRepository) Create(ctx context.Context, file *models.File) (int64, error) {
	sql, args, err := r.sb.Insert("files").
		Columns("storage_key", "file_name", "content_type", "size_bytes", "uploaded_by").
		Values(file.StorageKey, file.FileName, file.ContentType, file.SizeBytes, file.UploadedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create file SQL")
		return 0, fmt.Errorf("failed to build create file query: %w", err)
	}
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&file.ID, &file.CreatedAt); err != nil {
		logger.Error().Err(err).Str("key", file.StorageKey).Msg("Error creating file record")
		return 0, fmt.Errorf("error creating file record: %w", err)
	}
	return file.ID, nil
}

// GetByID retrieves a file record
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	sql, args, err := r.sb.Select("id", "storage_key", "file_name", "content_type", "size_bytes", "uploaded_by", "created_at").
		From("files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get file query: %w", err)
	}
	f := &models.File{}
	err = r.conn(ctx).QueryRow(ctx, sql, args...).
		Scan(&f.ID, &f.StorageKey, &f.FileName, &f.ContentType, &f.SizeBytes, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error retrieving file: %w", err)
	}
	return f, nil
}

// Delete removes a file record
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("files").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete file query: %w", err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("fileID", id).Msg("Error deleting file record")
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}
