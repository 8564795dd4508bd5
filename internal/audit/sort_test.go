package audit

import (
	"errors"
	"testing"

	"github.com/crucial707/hci-versions/internal/models"
)

func TestParseSortField(t *testing.T) {
	tests := []struct {
		name string
		want models.VersionColumn
	}{
		{"", models.ColumnCreatedAt},
		{"item", models.ColumnVersionedID},
		{"table", models.ColumnVersionedType},
		{"username", models.ColumnUserName},
		{"created_at", models.ColumnCreatedAt},
		{"message", models.ColumnModifications},
	}
	for _, tt := range tests {
		f, err := ParseSortField(tt.name)
		if err != nil {
			t.Fatalf("ParseSortField(%q): %v", tt.name, err)
		}
		if got := f.Column(); got != tt.want {
			t.Errorf("ParseSortField(%q).Column() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseSortField_Unknown(t *testing.T) {
	for _, name := range []string{"number", "id; DROP TABLE versions", "Item"} {
		if _, err := ParseSortField(name); !errors.Is(err, ErrUnknownSortField) {
			t.Errorf("ParseSortField(%q): expected ErrUnknownSortField, got %v", name, err)
		}
	}
}
