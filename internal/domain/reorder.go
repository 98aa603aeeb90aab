package domain

import "github.com/google/uuid"

// ReorderItem represents an item to reorder with its new position.
type ReorderItem struct {
	ID       uuid.UUID
	Position int
}
