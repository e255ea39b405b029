package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventsplatform/internal/domain"
)

type enrollmentRepository struct {
	DB Querier
}

// NewEnrollmentRepository returns a domain.EnrollmentRepository implemented with Postgres.
func NewEnrollmentRepository(db Querier) domain.EnrollmentRepository {
	return &enrollmentRepository{DB: db}
}

func (r *enrollmentRepository) Exists(ctx context.Context, eventID, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM event_enrollments WHERE id_event = $1 AND id_user = $2)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists)
	return exists, err
}

func (r *enrollmentRepository) CountByEvent(ctx context.Context, eventID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_enrollments WHERE id_event = $1`, eventID).Scan(&n)
	return n, err
}

func (r *enrollmentRepository) Create(ctx context.Context, en *domain.Enrollment) error {
	query := `
		INSERT INTO event_enrollments (id_event, id_user, registration_date_time)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, en.EventID, en.UserID, en.RegistrationDateTime)
	if err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return domain.ErrAlreadyEnrolled
		case foreignKeyViolation:
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, eventID, userID int64) (*domain.Enrollment, error) {
	query := `
		DELETE FROM event_enrollments
		WHERE id_event = $1 AND id_user = $2
		RETURNING id_event, id_user, description, attended, rating, registration_date_time
	`
	en := &domain.Enrollment{}
	var desc sql.NullString
	var rating sql.NullInt32
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(
		&en.EventID, &en.UserID, &desc, &en.Attended, &rating, &en.RegistrationDateTime,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	en.Description = nullStringPtr(desc)
	en.Rating = nullIntPtr(rating)
	return en, nil
}

func (r *enrollmentRepository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.EnrollmentDetail, error) {
	query := `
		SELECT u.id, u.first_name, u.last_name, u.username, ee.attended, ee.rating, ee.description
		FROM event_enrollments ee
		JOIN users u ON u.id = ee.id_user
		WHERE ee.id_event = $1
		ORDER BY ee.registration_date_time, u.id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.EnrollmentDetail, 0)
	for rows.Next() {
		d := &domain.EnrollmentDetail{}
		var rating sql.NullInt32
		var desc sql.NullString
		if err := rows.Scan(&d.User.ID, &d.User.FirstName, &d.User.LastName, &d.User.Username, &d.Attended, &rating, &desc); err != nil {
			return nil, err
		}
		d.Rating = nullIntPtr(rating)
		d.Description = nullStringPtr(desc)
		out = append(out, d)
	}
	return out, rows.Err()
}

func nullStringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullIntPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}
