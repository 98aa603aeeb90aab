package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultColor is applied to collections and groups created without one.
const DefaultColor = "#3b82f6"

// Collection is the top level of a user's bookmark hierarchy (a board).
type Collection struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Color     string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Group belongs to exactly one Collection (a folder).
type Group struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	Name         string
	Color        string
	Position     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Item is a single bookmarked link inside a Group.
type Item struct {
	ID          uuid.UUID
	GroupID     uuid.UUID
	Title       string
	URL         string
	Description *string
	Favicon     *string
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResourceRef points at a single entity of any level.
type ResourceRef struct {
	Type ResourceType
	ID   uuid.UUID
}

func (r ResourceRef) String() string { return string(r.Type) + " " + r.ID.String() }

// Sibling is the ordering view of an entity within its parent scope.
type Sibling struct {
	ID       uuid.UUID
	Position int
}

// CollectionUpdate carries the optional attributes of a collection update.
type CollectionUpdate struct {
	Name  *string
	Color *string
}

// GroupUpdate carries the optional attributes of a group update.
type GroupUpdate struct {
	Name  *string
	Color *string
}

// ItemUpdate carries the optional attributes of an item update.
// Description and Favicon set to an empty string clear the column.
type ItemUpdate struct {
	Title       *string
	URL         *string
	Description *string
	Favicon     *string
}

// TitleFromURL returns the hostname of rawURL with a leading "www." removed,
// or rawURL itself when it does not parse.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return strings.TrimSpace(rawURL)
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// AuditRecord logs a mutation event on a domain entity.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
