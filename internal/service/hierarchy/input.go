package hierarchy

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

const (
	maxNameLength        = 100
	maxTitleLength       = 500
	maxURLLength         = 2048
	maxDescriptionLength = 2000
	maxFaviconLength     = 2048
	maxBulkURLs          = 100
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// CreateCollectionInput holds the parameters for creating a collection.
type CreateCollectionInput struct {
	Name  string
	Color string // empty = default color
}

// Validate checks all fields and collects all errors.
func (i CreateCollectionInput) Validate() error {
	var errs []domain.FieldError
	errs = validateName(errs, "name", i.Name)
	errs = validateColor(errs, i.Color)
	return collect(errs)
}

// UpdateCollectionInput holds the parameters for updating a collection.
type UpdateCollectionInput struct {
	ID    uuid.UUID
	Name  *string
	Color *string
}

// Validate checks all fields and collects all errors.
func (i UpdateCollectionInput) Validate() error {
	return validateContainerUpdate("collection_id", i.ID, i.Name, i.Color)
}

// CreateGroupInput holds the parameters for creating a group.
type CreateGroupInput struct {
	CollectionID uuid.UUID
	Name         string
	Color        string
}

// Validate checks all fields and collects all errors.
func (i CreateGroupInput) Validate() error {
	var errs []domain.FieldError
	if i.CollectionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "collection_id", Message: "required"})
	}
	errs = validateName(errs, "name", i.Name)
	errs = validateColor(errs, i.Color)
	return collect(errs)
}

// UpdateGroupInput holds the parameters for updating a group.
type UpdateGroupInput struct {
	ID    uuid.UUID
	Name  *string
	Color *string
}

// Validate checks all fields and collects all errors.
func (i UpdateGroupInput) Validate() error {
	return validateContainerUpdate("group_id", i.ID, i.Name, i.Color)
}

// CreateItemInput holds the parameters for creating an item.
type CreateItemInput struct {
	GroupID     uuid.UUID
	Title       string // empty = derived from the URL host
	URL         string
	Description *string
	Favicon     *string
}

// Validate checks all fields and collects all errors.
func (i CreateItemInput) Validate() error {
	var errs []domain.FieldError
	if i.GroupID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "group_id", Message: "required"})
	}
	if len(strings.TrimSpace(i.Title)) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 500 characters"})
	}
	errs = validateURL(errs, "url", i.URL)
	errs = validateOptional(errs, i.Description, i.Favicon)
	return collect(errs)
}

// UpdateItemInput holds the parameters for updating an item.
type UpdateItemInput struct {
	ID          uuid.UUID
	Title       *string
	URL         *string
	Description *string // nil = don't change; ptr("") = clear
	Favicon     *string
}

// Validate checks all fields and collects all errors.
func (i UpdateItemInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.Title == nil && i.URL == nil && i.Description == nil && i.Favicon == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil && len(strings.TrimSpace(*i.Title)) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 500 characters"})
	}
	if i.URL != nil {
		errs = validateURL(errs, "url", *i.URL)
	}
	errs = validateOptional(errs, i.Description, i.Favicon)
	return collect(errs)
}

// AddItemsInput appends several URLs to one group.
type AddItemsInput struct {
	GroupID uuid.UUID
	URLs    []string
}

// Validate checks all fields and collects all errors. Blank entries are
// ignored but at least one URL must remain.
func (i AddItemsInput) Validate() error {
	var errs []domain.FieldError
	if i.GroupID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "group_id", Message: "required"})
	}
	urls := i.nonBlank()
	if len(urls) == 0 {
		errs = append(errs, domain.FieldError{Field: "urls", Message: "at least one url required"})
	}
	if len(urls) > maxBulkURLs {
		errs = append(errs, domain.FieldError{Field: "urls", Message: "max 100 urls per batch"})
	}
	for _, u := range urls {
		errs = validateURL(errs, "urls", u)
	}
	return collect(errs)
}

func (i AddItemsInput) nonBlank() []string {
	var out []string
	for _, u := range i.URLs {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func validateContainerUpdate(idField string, id uuid.UUID, name, color *string) error {
	var errs []domain.FieldError
	if id == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: idField, Message: "required"})
	}
	if name == nil && color == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if name != nil {
		errs = validateName(errs, "name", *name)
	}
	if color != nil {
		if *color == "" {
			errs = append(errs, domain.FieldError{Field: "color", Message: "required"})
		} else {
			errs = validateColor(errs, *color)
		}
	}
	return collect(errs)
}

func validateName(errs []domain.FieldError, field, name string) []domain.FieldError {
	name = domain.NormalizeName(name)
	if name == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len(name) > maxNameLength {
		return append(errs, domain.FieldError{Field: field, Message: "max 100 characters"})
	}
	return errs
}

func validateColor(errs []domain.FieldError, color string) []domain.FieldError {
	if color != "" && !colorPattern.MatchString(color) {
		return append(errs, domain.FieldError{Field: "color", Message: "must be a hex color like #3b82f6"})
	}
	return errs
}

func validateURL(errs []domain.FieldError, field, raw string) []domain.FieldError {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if len(raw) > maxURLLength {
		return append(errs, domain.FieldError{Field: field, Message: "max 2048 characters"})
	}
	if _, err := url.Parse(raw); err != nil {
		return append(errs, domain.FieldError{Field: field, Message: "invalid url"})
	}
	return errs
}

func validateOptional(errs []domain.FieldError, description, favicon *string) []domain.FieldError {
	if description != nil && len(strings.TrimSpace(*description)) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if favicon != nil && len(strings.TrimSpace(*favicon)) > maxFaviconLength {
		errs = append(errs, domain.FieldError{Field: "favicon", Message: "max 2048 characters"})
	}
	return errs
}

func collect(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// trimPtr trims whitespace but keeps an empty string, which clears the column.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
