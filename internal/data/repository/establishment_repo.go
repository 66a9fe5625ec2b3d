package repository

import (
	"context"
	"fmt"
	"time"

	"food-marketplace/internal/data/entity"
	"food-marketplace/pkg/database"

	"go.uber.org/zap"
)

type EstablishmentRepository interface {
	UpsertHeartbeat(ctx context.Context, establishmentID int64) (time.Time, error)
	DeleteHeartbeat(ctx context.Context, establishmentID int64) error
	ListAvailability(ctx context.Context, window time.Duration) ([]*entity.EstablishmentAvailability, error)
}

type establishmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEstablishmentRepository(db database.PgxIface, log *zap.Logger) EstablishmentRepository {
	return &establishmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "establishment")),
	}
}

// UpsertHeartbeat records a liveness ping and returns the stored timestamp
func (r *establishmentRepository) UpsertHeartbeat(ctx context.Context, establishmentID int64) (time.Time, error) {
	query := `
		INSERT INTO establishment_heartbeat (establishment_id, last_heartbeat)
		VALUES ($1, NOW())
		ON CONFLICT (establishment_id) DO UPDATE SET last_heartbeat = EXCLUDED.last_heartbeat
		RETURNING last_heartbeat
	`

	var at time.Time
	if err := r.db.QueryRow(ctx, query, establishmentID).Scan(&at); err != nil {
		r.log.Error("Failed to upsert heartbeat", zap.Error(err), zap.Int64("establishment_id", establishmentID))
		return time.Time{}, fmt.Errorf("upsert heartbeat for establishment %d: %w", establishmentID, err)
	}

	return at, nil
}

// DeleteHeartbeat marks the establishment offline. Deleting a missing row is not an error.
func (r *establishmentRepository) DeleteHeartbeat(ctx context.Context, establishmentID int64) error {
	query := `DELETE FROM establishment_heartbeat WHERE establishment_id = $1`

	if _, err := r.db.Exec(ctx, query, establishmentID); err != nil {
		r.log.Error("Failed to delete heartbeat", zap.Error(err), zap.Int64("establishment_id", establishmentID))
		return fmt.Errorf("delete heartbeat for establishment %d: %w", establishmentID, err)
	}

	return nil
}

// ListAvailability aggregates active products and the last heartbeat of every active
// establishment, ordered by name. A heartbeat is fresh when it is strictly newer than
// NOW() minus window.
func (r *establishmentRepository) ListAvailability(ctx context.Context, window time.Duration) ([]*entity.EstablishmentAvailability, error) {
	query := `
		SELECT u.id, u.name, u.email, u.phone,
		       COUNT(p.id) AS total_productos,
		       COALESCE(MIN(p.price), 0) AS precio_minimo,
		       COALESCE(MAX(p.price), 0) AS precio_maximo,
		       COALESCE(ROUND(AVG(p.price), 2), 0) AS precio_promedio,
		       h.last_heartbeat,
		       COALESCE(h.last_heartbeat > NOW() - make_interval(secs => $1), FALSE) AS heartbeat_fresh
		FROM users u
		LEFT JOIN products p ON p.establishment_id = u.id AND p.active = TRUE
		LEFT JOIN establishment_heartbeat h ON h.establishment_id = u.id
		WHERE u.role = 'ESTABLISHMENT' AND u.active = TRUE
		GROUP BY u.id, u.name, u.email, u.phone, h.last_heartbeat
		ORDER BY u.name
	`

	rows, err := r.db.Query(ctx, query, window.Seconds())
	if err != nil {
		r.log.Error("Failed to list establishment availability", zap.Error(err))
		return nil, fmt.Errorf("list establishment availability: %w", err)
	}
	defer rows.Close()

	result := []*entity.EstablishmentAvailability{}
	for rows.Next() {
		var a entity.EstablishmentAvailability
		err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Email,
			&a.Phone,
			&a.ProductCount,
			&a.MinPrice,
			&a.MaxPrice,
			&a.AvgPrice,
			&a.LastHeartbeat,
			&a.HeartbeatFresh,
		)
		if err != nil {
			r.log.Error("Failed to scan availability row", zap.Error(err))
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		result = append(result, &a)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate availability rows: %w", err)
	}

	return result, nil
}
