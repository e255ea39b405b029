package domain

import "context"

// Tag represents a named label attached to events.
// swagger:model Tag
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TagRepository defines storage for tags and event tag links.
type TagRepository interface {
	// EnsureTagForEvent resolves a tag by name (creating it if missing), links it to the event in event_tags, and returns the tag ID.
	EnsureTagForEvent(ctx context.Context, eventID int64, tagName string) (tagID int64, err error)
	// ClearEventTags removes every tag link of the event. Tags themselves are kept.
	ClearEventTags(ctx context.Context, eventID int64) error
	// ListTagsByEventID returns all tags associated with the given event via event_tags.
	ListTagsByEventID(ctx context.Context, eventID int64) ([]*Tag, error)
	// ListTagsByEventIDs batches ListTagsByEventID for a page of events.
	ListTagsByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*Tag, error)
}
