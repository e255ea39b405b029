package postgres

import (
	"context"

	"eventsplatform/internal/domain"

	"github.com/lib/pq"
)

type tagRepository struct {
	DB Querier
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db Querier) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) EnsureTagForEvent(ctx context.Context, eventID int64, tagName string) (int64, error) {
	var tagID int64
	// The no-op update makes RETURNING yield the id of an existing tag too.
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO tags (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, tagName).Scan(&tagID)
	if err != nil {
		return 0, err
	}
	_, err = r.DB.ExecContext(ctx, `INSERT INTO event_tags (id_event, id_tag) VALUES ($1, $2) ON CONFLICT (id_event, id_tag) DO NOTHING`, eventID, tagID)
	if err != nil {
		return 0, err
	}
	return tagID, nil
}

func (r *tagRepository) ClearEventTags(ctx context.Context, eventID int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM event_tags WHERE id_event = $1`, eventID)
	return err
}

func (r *tagRepository) ListTagsByEventID(ctx context.Context, eventID int64) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name FROM tags t
		 JOIN event_tags et ON et.id_tag = t.id
		 WHERE et.id_event = $1
		 ORDER BY t.name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) ListTagsByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*domain.Tag, error) {
	out := make(map[int64][]*domain.Tag, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT et.id_event, t.id, t.name FROM tags t
		 JOIN event_tags et ON et.id_tag = t.id
		 WHERE et.id_event = ANY($1)
		 ORDER BY et.id_event, t.name`, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int64
		var tag domain.Tag
		if err := rows.Scan(&eventID, &tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		out[eventID] = append(out[eventID], &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
