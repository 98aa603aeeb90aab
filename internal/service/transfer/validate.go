package transfer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/heartmarshall/bookmarks-backend/internal/domain"
)

const (
	maxNameLength  = 100
	maxTitleLength = 500
	maxURLLength   = 2048
	maxTextLength  = 2048
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks record fields and id uniqueness and collects all
// errors. maxEntities <= 0 disables the size cap.
func (d *Document) Validate(maxEntities int) error {
	if maxEntities > 0 && d.Len() > maxEntities {
		return domain.NewValidationError("document", fmt.Sprintf("too many records (max %d)", maxEntities))
	}

	var errs []domain.FieldError
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	seen := map[RecordID]bool{}
	for i, c := range d.Collections {
		p := fmt.Sprintf("collections[%d]", i)
		checkID(add, seen, p, c.ID)
		checkName(add, p+".name", c.Name)
		checkColor(add, p+".color", c.Color)
		checkPosition(add, p+".position", c.Position)
	}

	seen = map[RecordID]bool{}
	for i, g := range d.Groups {
		p := fmt.Sprintf("groups[%d]", i)
		checkID(add, seen, p, g.ID)
		checkName(add, p+".name", g.Name)
		checkColor(add, p+".color", g.Color)
		checkPosition(add, p+".position", g.Position)
	}

	seen = map[RecordID]bool{}
	for i, it := range d.Items {
		p := fmt.Sprintf("items[%d]", i)
		checkID(add, seen, p, it.ID)
		url := strings.TrimSpace(it.URL)
		switch {
		case url == "":
			add(p+".url", "required")
		case len(url) > maxURLLength:
			add(p+".url", "max 2048 characters")
		}
		if len(strings.TrimSpace(it.Title)) > maxTitleLength {
			add(p+".title", "max 500 characters")
		}
		if it.Description != nil && len(*it.Description) > maxTextLength {
			add(p+".description", "max 2048 characters")
		}
		if it.Favicon != nil && len(*it.Favicon) > maxTextLength {
			add(p+".favicon", "max 2048 characters")
		}
		checkPosition(add, p+".position", it.Position)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func checkID(add func(string, string), seen map[RecordID]bool, prefix string, id RecordID) {
	if id == "" {
		add(prefix+".id", "required")
		return
	}
	if seen[id] {
		add(prefix+".id", fmt.Sprintf("duplicate id %q", id))
	}
	seen[id] = true
}

func checkName(add func(string, string), field, name string) {
	name = domain.NormalizeName(name)
	switch {
	case name == "":
		add(field, "required")
	case len(name) > maxNameLength:
		add(field, "max 100 characters")
	}
}

func checkColor(add func(string, string), field, color string) {
	if color != "" && !colorPattern.MatchString(color) {
		add(field, "must be a hex color like #3b82f6")
	}
}

func checkPosition(add func(string, string), field string, pos int) {
	if pos < 0 {
		add(field, "must be non-negative")
	}
}

func malformed(format string, args ...any) error {
	return domain.MalformedInput(format, args...)
}
