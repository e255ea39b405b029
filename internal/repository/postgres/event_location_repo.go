package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventsplatform/internal/domain"
)

type eventLocationRepository struct {
	DB Querier
}

// NewEventLocationRepository returns a domain.EventLocationRepository implemented with Postgres.
func NewEventLocationRepository(db Querier) domain.EventLocationRepository {
	return &eventLocationRepository{DB: db}
}

const eventLocationColumns = `el.id, el.name, el.full_address, el.id_location, el.max_capacity,
		el.latitude, el.longitude, el.id_creator_user`

const eventLocationDetailSelect = `
		SELECT ` + eventLocationColumns + `,
			l.name, l.id_province, l.latitude, l.longitude,
			p.name, p.full_name, p.latitude, p.longitude
		FROM event_locations el
		LEFT JOIN locations l ON l.id = el.id_location
		LEFT JOIN provinces p ON p.id = l.id_province
	`

func (r *eventLocationRepository) Create(ctx context.Context, l *domain.EventLocation) error {
	query := `
		INSERT INTO event_locations (name, full_address, id_location, max_capacity, latitude, longitude, id_creator_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		l.Name, l.FullAddress, nullInt64(l.LocationID), l.MaxCapacity, l.Latitude, l.Longitude, l.CreatorUserID,
	).Scan(&l.ID)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrLocationReference
		}
		return err
	}
	return nil
}

func (r *eventLocationRepository) GetByID(ctx context.Context, id int64) (*domain.EventLocation, error) {
	l, err := scanEventLocationDetail(r.DB.QueryRowContext(ctx, eventLocationDetailSelect+`WHERE el.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *eventLocationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.EventLocation, error) {
	return r.getLocked(ctx, id, "FOR UPDATE")
}

func (r *eventLocationRepository) GetForShare(ctx context.Context, id int64) (*domain.EventLocation, error) {
	return r.getLocked(ctx, id, "FOR SHARE")
}

func (r *eventLocationRepository) getLocked(ctx context.Context, id int64, lock string) (*domain.EventLocation, error) {
	query := `SELECT ` + eventLocationColumns + ` FROM event_locations el WHERE el.id = $1 ` + lock
	l, err := scanEventLocation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *eventLocationRepository) ListByCreator(ctx context.Context, userID int64, params domain.PaginationParams) ([]*domain.EventLocation, int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_locations WHERE id_creator_user = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := eventLocationDetailSelect + `WHERE el.id_creator_user = $1 ORDER BY el.id LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	locations := make([]*domain.EventLocation, 0)
	for rows.Next() {
		l, err := scanEventLocationDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

func (r *eventLocationRepository) Update(ctx context.Context, l *domain.EventLocation) error {
	query := `
		UPDATE event_locations
		SET name = $1, full_address = $2, id_location = $3, max_capacity = $4, latitude = $5, longitude = $6
		WHERE id = $7
	`
	result, err := r.DB.ExecContext(ctx, query,
		l.Name, l.FullAddress, nullInt64(l.LocationID), l.MaxCapacity, l.Latitude, l.Longitude, l.ID,
	)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrLocationReference
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventLocationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_locations WHERE id = $1`, id)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrLocationInUse
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventLocationRepository) CountEvents(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE id_event_location = $1`, id).Scan(&n)
	return n, err
}

func (r *eventLocationRepository) LocationExists(ctx context.Context, locationID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM locations WHERE id = $1)`, locationID).Scan(&exists)
	return exists, err
}

func scanEventLocation(row scanner) (*domain.EventLocation, error) {
	l := &domain.EventLocation{}
	var locationID sql.NullInt64
	err := row.Scan(&l.ID, &l.Name, &l.FullAddress, &locationID, &l.MaxCapacity, &l.Latitude, &l.Longitude, &l.CreatorUserID)
	if err != nil {
		return nil, err
	}
	if locationID.Valid {
		l.LocationID = &locationID.Int64
	}
	return l, nil
}

func scanEventLocationDetail(row scanner) (*domain.EventLocation, error) {
	l := &domain.EventLocation{}
	var locationID sql.NullInt64
	var lName sql.NullString
	var lProvinceID sql.NullInt64
	var lLat, lLng sql.NullFloat64
	var pName, pFullName sql.NullString
	var pLat, pLng sql.NullFloat64
	err := row.Scan(
		&l.ID, &l.Name, &l.FullAddress, &locationID, &l.MaxCapacity, &l.Latitude, &l.Longitude, &l.CreatorUserID,
		&lName, &lProvinceID, &lLat, &lLng,
		&pName, &pFullName, &pLat, &pLng,
	)
	if err != nil {
		return nil, err
	}
	if locationID.Valid {
		l.LocationID = &locationID.Int64
		l.Location = catalogueLocation(locationID.Int64, lName, lProvinceID, lLat, lLng, pName, pFullName, pLat, pLng)
	}
	return l, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
