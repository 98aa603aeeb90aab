package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Document is the portable form of one user's hierarchy. References
// between records use the ids found in the same document.
type Document struct {
	Collections []CollectionRecord `json:"collections"`
	Groups      []GroupRecord      `json:"groups"`
	Items       []ItemRecord       `json:"items"`
}

// CollectionRecord is a collection as it appears in a document.
// OwnerID is informational; imports always assign the caller.
type CollectionRecord struct {
	ID       RecordID `json:"id"`
	OwnerID  string   `json:"owner_id,omitempty"`
	Name     string   `json:"name"`
	Color    string   `json:"color,omitempty"`
	Position int      `json:"position"`
}

// GroupRecord is a group as it appears in a document.
type GroupRecord struct {
	ID           RecordID `json:"id"`
	CollectionID RecordID `json:"collection_id"`
	Name         string   `json:"name"`
	Color        string   `json:"color,omitempty"`
	Position     int      `json:"position"`
}

// ItemRecord is an item as it appears in a document.
type ItemRecord struct {
	ID          RecordID `json:"id"`
	GroupID     RecordID `json:"group_id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description *string  `json:"description,omitempty"`
	Favicon     *string  `json:"favicon,omitempty"`
	Position    int      `json:"position"`
}

// RecordID is a document-local identifier. Numbers are accepted and kept
// in their decimal form so older exports with integer keys still import.
type RecordID string

func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number")
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("id must be a string or number")
	}
	*id = RecordID(n.String())
	return nil
}

// Len returns the number of records in d.
func (d *Document) Len() int {
	return len(d.Collections) + len(d.Groups) + len(d.Items)
}

type naming struct {
	collections, groups, items string
}

var (
	currentNaming = naming{"collections", "groups", "items"}
	legacyNaming  = naming{"boards", "folders", "links"}
)

// ParseDocument checks that raw is an object with exactly the three array
// fields collections, groups and items, then decodes it. The older
// boards/folders/links naming with board_id and folder_id references is
// accepted as well. Any shape problem is ErrMalformedInput.
func ParseDocument(raw []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, malformed("document must be a JSON object with collections, groups and items arrays")
	}

	names, err := detectNaming(fields)
	if err != nil {
		return nil, err
	}

	collections, err := elements(fields, names.collections)
	if err != nil {
		return nil, err
	}
	groups, err := elements(fields, names.groups)
	if err != nil {
		return nil, err
	}
	items, err := elements(fields, names.items)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Collections: make([]CollectionRecord, len(collections)),
		Groups:      make([]GroupRecord, len(groups)),
		Items:       make([]ItemRecord, len(items)),
	}
	legacy := names == legacyNaming

	for i, el := range collections {
		if err := json.Unmarshal(el, &doc.Collections[i]); err != nil {
			return nil, malformed("%s[%d]: %v", names.collections, i, err)
		}
	}
	for i, el := range groups {
		if legacy {
			var g legacyFolder
			if err := json.Unmarshal(el, &g); err != nil {
				return nil, malformed("%s[%d]: %v", names.groups, i, err)
			}
			doc.Groups[i] = g.record()
			continue
		}
		if err := json.Unmarshal(el, &doc.Groups[i]); err != nil {
			return nil, malformed("%s[%d]: %v", names.groups, i, err)
		}
	}
	for i, el := range items {
		if legacy {
			var it legacyLink
			if err := json.Unmarshal(el, &it); err != nil {
				return nil, malformed("%s[%d]: %v", names.items, i, err)
			}
			doc.Items[i] = it.record()
			continue
		}
		if err := json.Unmarshal(el, &doc.Items[i]); err != nil {
			return nil, malformed("%s[%d]: %v", names.items, i, err)
		}
	}

	return doc, nil
}

func detectNaming(fields map[string]json.RawMessage) (naming, error) {
	var names naming
	switch {
	case has(fields, currentNaming.collections, currentNaming.groups, currentNaming.items):
		names = currentNaming
	case has(fields, legacyNaming.collections, legacyNaming.groups, legacyNaming.items):
		names = legacyNaming
	default:
		return naming{}, malformed("document must have collections, groups and items arrays")
	}

	if len(fields) != 3 {
		var extra []string
		for k := range fields {
			if k != names.collections && k != names.groups && k != names.items {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		return naming{}, malformed("unexpected fields: %s", strings.Join(extra, ", "))
	}
	return names, nil
}

func has(fields map[string]json.RawMessage, keys ...string) bool {
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return false
		}
	}
	return true
}

// elements splits an array field into its raw elements. Every element must
// be an object.
func elements(fields map[string]json.RawMessage, key string) ([]json.RawMessage, error) {
	raw := bytes.TrimSpace(fields[key])
	if len(raw) == 0 || raw[0] != '[' {
		return nil, malformed("%s must be an array", key)
	}

	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, malformed("%s must be an array", key)
	}
	for i, el := range out {
		el = bytes.TrimSpace(el)
		if len(el) == 0 || el[0] != '{' {
			return nil, malformed("%s[%d] must be an object", key, i)
		}
	}
	return out, nil
}

type legacyFolder struct {
	ID       RecordID `json:"id"`
	BoardID  RecordID `json:"board_id"`
	Name     string   `json:"name"`
	Color    string   `json:"color"`
	Position int      `json:"position"`
}

func (f legacyFolder) record() GroupRecord {
	return GroupRecord{ID: f.ID, CollectionID: f.BoardID, Name: f.Name, Color: f.Color, Position: f.Position}
}

type legacyLink struct {
	ID          RecordID `json:"id"`
	FolderID    RecordID `json:"folder_id"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description *string  `json:"description"`
	Favicon     *string  `json:"favicon"`
	Position    int      `json:"position"`
}

func (l legacyLink) record() ItemRecord {
	return ItemRecord{
		ID:          l.ID,
		GroupID:     l.FolderID,
		Title:       l.Title,
		URL:         l.URL,
		Description: l.Description,
		Favicon:     l.Favicon,
		Position:    l.Position,
	}
}
