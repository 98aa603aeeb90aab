package rest

import (
	"time"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

type collectionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type groupResponse struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collection_id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type itemResponse struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description *string   `json:"description"`
	Favicon     *string   `json:"favicon"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type siblingResponse struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

type shareTokenResponse struct {
	Token        string     `json:"token"`
	URL          string     `json:"url,omitempty"`
	ResourceType string     `json:"resource_type"`
	ResourceID   string     `json:"resource_id"`
	ExpiresAt    *time.Time `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

type sharedGroupResponse struct {
	groupResponse
	Items []itemResponse `json:"items"`
}

// sharedResponse is the public view of a shared subtree. Exactly one of
// collection, group and item is present.
type sharedResponse struct {
	Type       string                `json:"type"`
	Collection *collectionResponse   `json:"collection,omitempty"`
	Groups     []sharedGroupResponse `json:"groups,omitempty"`
	Group      *sharedGroupResponse  `json:"group,omitempty"`
	Item       *itemResponse         `json:"item,omitempty"`
	SharedAt   time.Time             `json:"shared_at"`
	ExpiresAt  *time.Time            `json:"expires_at,omitempty"`
}

func toCollection(c domain.Collection) collectionResponse {
	return collectionResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Position:  c.Position,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toGroup(g domain.Group) groupResponse {
	return groupResponse{
		ID:           g.ID.String(),
		CollectionID: g.CollectionID.String(),
		Name:         g.Name,
		Color:        g.Color,
		Position:     g.Position,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func toItem(it domain.Item) itemResponse {
	return itemResponse{
		ID:          it.ID.String(),
		GroupID:     it.GroupID.String(),
		Title:       it.Title,
		URL:         it.URL,
		Description: it.Description,
		Favicon:     it.Favicon,
		Position:    it.Position,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// mapSlice converts a slice, returning an empty (non-nil) slice for no input.
func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func toSiblings(siblings []domain.Sibling) []siblingResponse {
	return mapSlice(siblings, func(s domain.Sibling) siblingResponse {
		return siblingResponse{ID: s.ID.String(), Position: s.Position}
	})
}

func toShareToken(t domain.ShareToken, url string) shareTokenResponse {
	return shareTokenResponse{
		Token:        t.Token,
		URL:          url,
		ResourceType: string(t.ResourceType),
		ResourceID:   t.ResourceID.String(),
		ExpiresAt:    t.ExpiresAt,
		CreatedAt:    t.CreatedAt,
	}
}

func toSharedGroup(g domain.SharedGroup) sharedGroupResponse {
	return sharedGroupResponse{groupResponse: toGroup(g.Group), Items: mapSlice(g.Items, toItem)}
}

func toShared(s *domain.SharedSubtree) sharedResponse {
	resp := sharedResponse{
		Type:      string(s.Type),
		SharedAt:  s.SharedAt,
		ExpiresAt: s.ExpiresAt,
	}
	if s.Collection != nil {
		c := toCollection(*s.Collection)
		resp.Collection = &c
		resp.Groups = mapSlice(s.Groups, toSharedGroup)
	}
	if s.Group != nil {
		g := toSharedGroup(*s.Group)
		resp.Group = &g
	}
	if s.Item != nil {
		it := toItem(*s.Item)
		resp.Item = &it
	}
	return resp
}
