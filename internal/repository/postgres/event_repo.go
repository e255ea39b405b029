package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventsplatform/internal/domain"
)

type eventRepository struct {
	DB Querier
}

func NewEventRepository(db Querier) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `e.id, e.name, e.description, e.id_event_location, e.start_date,
		e.duration_in_minutes, e.price, e.enabled_for_enrollment, e.max_assistance, e.id_creator_user`

const eventDetailSelect = `
		SELECT ` + eventColumns + `,
			u.first_name, u.last_name, u.username,
			el.name, el.full_address, el.id_location, el.max_capacity, el.latitude, el.longitude, el.id_creator_user,
			l.name, l.id_province, l.latitude, l.longitude,
			p.name, p.full_name, p.latitude, p.longitude
		FROM events e
		JOIN users u ON u.id = e.id_creator_user
		JOIN event_locations el ON el.id = e.id_event_location
		LEFT JOIN locations l ON l.id = el.id_location
		LEFT JOIN provinces p ON p.id = l.id_province
	`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, id_event_location, start_date, duration_in_minutes,
			price, enabled_for_enrollment, max_assistance, id_creator_user)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.EventLocationID, e.StartDate, e.DurationInMinutes,
		e.Price, e.EnabledForEnrollment, e.MaxAssistance, e.CreatorUserID,
	).Scan(&e.ID)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrLocationReference
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := eventDetailSelect + `WHERE e.id = $1`
	e, err := scanEventDetail(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1 FOR UPDATE`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.EventLocationID, &e.StartDate,
		&e.DurationInMinutes, &e.Price, &e.EnabledForEnrollment, &e.MaxAssistance, &e.CreatorUserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var conds []string
	var args []any
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("e.name ILIKE $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, filter.StartDate.Format("2006-01-02"))
		conds = append(conds, fmt.Sprintf("e.start_date::date = $%d::date", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, "%"+filter.Tag+"%")
		conds = append(conds, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM event_tags et JOIN tags t ON t.id = et.id_tag
			WHERE et.id_event = e.id AND t.name ILIKE $%d)`, len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events e `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := eventDetailSelect + where + fmt.Sprintf(` ORDER BY e.id LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := r.DB.QueryContext(ctx, query, append(args, params.Limit, params.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEventDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET name = $1, description = $2, id_event_location = $3, start_date = $4,
			duration_in_minutes = $5, price = $6, enabled_for_enrollment = $7, max_assistance = $8
		WHERE id = $9
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Name, e.Description, e.EventLocationID, e.StartDate,
		e.DurationInMinutes, e.Price, e.EnabledForEnrollment, e.MaxAssistance, e.ID,
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

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrEventHasEnrollments
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEventDetail(row scanner) (*domain.Event, error) {
	e := &domain.Event{}
	u := &domain.UserSummary{}
	el := &domain.EventLocation{}
	var elLocationID sql.NullInt64
	var lName sql.NullString
	var lProvinceID sql.NullInt64
	var lLat, lLng sql.NullFloat64
	var pName, pFullName sql.NullString
	var pLat, pLng sql.NullFloat64
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.EventLocationID, &e.StartDate,
		&e.DurationInMinutes, &e.Price, &e.EnabledForEnrollment, &e.MaxAssistance, &e.CreatorUserID,
		&u.FirstName, &u.LastName, &u.Username,
		&el.Name, &el.FullAddress, &elLocationID, &el.MaxCapacity, &el.Latitude, &el.Longitude, &el.CreatorUserID,
		&lName, &lProvinceID, &lLat, &lLng,
		&pName, &pFullName, &pLat, &pLng,
	)
	if err != nil {
		return nil, err
	}
	u.ID = e.CreatorUserID
	el.ID = e.EventLocationID
	if elLocationID.Valid {
		el.LocationID = &elLocationID.Int64
		el.Location = catalogueLocation(elLocationID.Int64, lName, lProvinceID, lLat, lLng, pName, pFullName, pLat, pLng)
	}
	e.CreatorUser = u
	e.EventLocation = el
	return e, nil
}

// catalogueLocation assembles the joined locations/provinces columns. It returns
// nil when the join produced no row.
func catalogueLocation(id int64, name sql.NullString, provinceID sql.NullInt64, lat, lng sql.NullFloat64,
	pName, pFullName sql.NullString, pLat, pLng sql.NullFloat64) *domain.Location {
	if !name.Valid {
		return nil
	}
	loc := &domain.Location{
		ID:         id,
		Name:       name.String,
		ProvinceID: provinceID.Int64,
		Latitude:   lat.Float64,
		Longitude:  lng.Float64,
	}
	if pName.Valid {
		loc.Province = &domain.Province{
			ID:        provinceID.Int64,
			Name:      pName.String,
			FullName:  pFullName.String,
			Latitude:  pLat.Float64,
			Longitude: pLng.Float64,
		}
	}
	return loc
}
