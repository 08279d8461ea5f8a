package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"parkspot/internal/db"
)

type VideoRepository struct {
	DB *sql.DB
}

func NewVideoRepository(database *sql.DB) *VideoRepository {
	return &VideoRepository{DB: database}
}

func (r *VideoRepository) CreateFeed(ctx context.Context, feed *db.VideoFeed) error {
	if feed.ID == "" {
		feed.ID = uuid.New().String()
	}
	query := `
		INSERT INTO video_feeds (id, name, url, parking_complex, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		feed.ID, feed.Name, feed.URL, feed.ParkingComplex, feed.IsActive,
	).Scan(&feed.CreatedAt, &feed.UpdatedAt)
	if err != nil {
		return fmt.Errorf("VideoRepository.CreateFeed: %w", err)
	}
	return nil
}

func (r *VideoRepository) GetFeed(ctx context.Context, id string) (*db.VideoFeed, error) {
	var f db.VideoFeed
	query := `
		SELECT id, name, url, parking_complex, is_active, created_at, updated_at
		FROM video_feeds WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.URL, &f.ParkingComplex, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("VideoRepository.GetFeed: %w", err)
	}
	return &f, nil
}

func (r *VideoRepository) ListFeeds(ctx context.Context, complex string) ([]db.VideoFeed, error) {
	query := `
		SELECT id, name, url, parking_complex, is_active, created_at, updated_at
		FROM video_feeds WHERE 1=1`
	args := []interface{}{}
	if complex != "" {
		query += ` AND parking_complex = $1`
		args = append(args, complex)
	}
	query += ` ORDER BY name`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("VideoRepository.ListFeeds: %w", err)
	}
	defer rows.Close()

	var feeds []db.VideoFeed
	for rows.Next() {
		var f db.VideoFeed
		if err := rows.Scan(&f.ID, &f.Name, &f.URL, &f.ParkingComplex, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("VideoRepository.ListFeeds (scan): %w", err)
		}
		feeds = append(feeds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("VideoRepository.ListFeeds (rows): %w", err)
	}
	return feeds, nil
}

func (r *VideoRepository) UpdateFeed(ctx context.Context, feed *db.VideoFeed) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE video_feeds SET name = $1, url = $2, parking_complex = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5`,
		feed.Name, feed.URL, feed.ParkingComplex, feed.IsActive, feed.ID)
	if err != nil {
		return fmt.Errorf("VideoRepository.UpdateFeed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("VideoRepository.UpdateFeed (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VideoRepository) DeleteFeed(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM video_feeds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("VideoRepository.DeleteFeed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("VideoRepository.DeleteFeed (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VideoRepository) CreateDefinition(ctx context.Context, def *db.SpotDefinition) error {
	if def.ID == "" {
		def.ID = uuid.New().String()
	}
	query := `
		INSERT INTO spot_definitions (id, video_feed_id, spot_id, parking_complex, x, y, width, height, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`
	feedID := sql.NullString{String: def.VideoFeedID, Valid: def.VideoFeedID != ""}
	err := r.DB.QueryRowContext(ctx, query,
		def.ID, feedID, def.SpotID, def.ParkingComplex, def.X, def.Y, def.Width, def.Height,
	).Scan(&def.CreatedAt, &def.UpdatedAt)
	if err != nil {
		return fmt.Errorf("VideoRepository.CreateDefinition: %w", err)
	}
	return nil
}

func (r *VideoRepository) ListDefinitionsByFeed(ctx context.Context, feedID string) ([]db.SpotDefinition, error) {
	query := `
		SELECT id, video_feed_id, spot_id, parking_complex, x, y, width, height, created_at, updated_at
		FROM spot_definitions
		WHERE video_feed_id = $1
		ORDER BY spot_id`
	rows, err := r.DB.QueryContext(ctx, query, feedID)
	if err != nil {
		return nil, fmt.Errorf("VideoRepository.ListDefinitionsByFeed: %w", err)
	}
	defer rows.Close()

	var defs []db.SpotDefinition
	for rows.Next() {
		var d db.SpotDefinition
		var nullFeedID sql.NullString
		if err := rows.Scan(&d.ID, &nullFeedID, &d.SpotID, &d.ParkingComplex,
			&d.X, &d.Y, &d.Width, &d.Height, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("VideoRepository.ListDefinitionsByFeed (scan): %w", err)
		}
		d.VideoFeedID = nullFeedID.String
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("VideoRepository.ListDefinitionsByFeed (rows): %w", err)
	}
	return defs, nil
}

func (r *VideoRepository) DeleteDefinition(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM spot_definitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("VideoRepository.DeleteDefinition: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("VideoRepository.DeleteDefinition (rows affected): %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
