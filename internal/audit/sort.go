package audit

import (
	"errors"

	"github.com/crucial707/hci-versions/internal/models"
)

// ErrUnknownSortField is returned by ParseSortField for names outside the listing columns.
var ErrUnknownSortField = errors.New("unknown sort field")

// SortField is a listing column a caller may sort by.
type SortField int

const (
	// SortDefault sorts newest first by creation time.
	SortDefault SortField = iota
	SortItem
	SortTable
	SortUsername
	SortCreatedAt
	SortMessage
)

var sortFieldNames = map[string]SortField{
	"item":       SortItem,
	"table":      SortTable,
	"username":   SortUsername,
	"created_at": SortCreatedAt,
	"message":    SortMessage,
}

// ParseSortField parses a caller supplied sort name. An empty name is SortDefault.
func ParseSortField(name string) (SortField, error) {
	if name == "" {
		return SortDefault, nil
	}
	f, ok := sortFieldNames[name]
	if !ok {
		return SortDefault, ErrUnknownSortField
	}
	return f, nil
}

// Column returns the versions column backing f. Sorting by message sorts by
// the modifications payload.
func (f SortField) Column() models.VersionColumn {
	switch f {
	case SortItem:
		return models.ColumnVersionedID
	case SortTable:
		return models.ColumnVersionedType
	case SortUsername:
		return models.ColumnUserName
	case SortMessage:
		return models.ColumnModifications
	default:
		return models.ColumnCreatedAt
	}
}
