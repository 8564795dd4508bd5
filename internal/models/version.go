package models

import "time"

// Version is one row of the versions table written by the versioning library.
// This service only reads it.
type Version struct {
	ID            int64     `json:"id"`
	Number        int       `json:"number"` // 1 = first revision
	Tag           string    `json:"tag,omitempty"`
	VersionedType string    `json:"versioned_type"`
	VersionedID   string    `json:"versioned_id"`
	UserName      string    `json:"user_name"` // raw identifier, not guaranteed to be a users.id
	Modifications string    `json:"modifications,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// VersionColumn is a sortable column of the versions table.
type VersionColumn int

const (
	ColumnCreatedAt VersionColumn = iota
	ColumnVersionedID
	ColumnVersionedType
	ColumnUserName
	ColumnModifications
)

// String returns the SQL column name.
func (c VersionColumn) String() string {
	switch c {
	case ColumnVersionedID:
		return "versioned_id"
	case ColumnVersionedType:
		return "versioned_type"
	case ColumnUserName:
		return "user_name"
	case ColumnModifications:
		return "modifications"
	default:
		return "created_at"
	}
}

// VersionQuery selects versions of one type, optionally of one record.
type VersionQuery struct {
	VersionedType string
	VersionedID   string // empty means every record of the type
	NumberLike    string // substring matched against the version number
	OrderBy       VersionColumn
	Descending    bool
	Limit         int // 0 means no limit
	Offset        int
}
