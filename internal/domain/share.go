package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareToken grants unauthenticated read access to one resource.
// The referenced resource may have been deleted since issuance.
type ShareToken struct {
	ID           uuid.UUID
	Token        string
	ResourceType ResourceType
	ResourceID   uuid.UUID
	IssuerID     uuid.UUID
	ExpiresAt    *time.Time
	CreatedAt    time.Time
}

// Ref returns the resource the token points at.
func (t ShareToken) Ref() ResourceRef {
	return ResourceRef{Type: t.ResourceType, ID: t.ResourceID}
}

// IsExpired reports whether the token has an expiry strictly before now.
func (t ShareToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// SharedGroup is a group together with its items, ordered by position.
type SharedGroup struct {
	Group Group
	Items []Item
}

// SharedSubtree is the read-only view returned for a resolved share token.
// Exactly one of Collection, Group and Item is set, matching Type.
type SharedSubtree struct {
	Type       ResourceType
	Collection *Collection
	Groups     []SharedGroup
	Group      *SharedGroup
	Item       *Item
	SharedAt   time.Time
	ExpiresAt  *time.Time
}
