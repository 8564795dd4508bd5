package repo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/hci-versions/internal/models"
)

var versionRowColumns = []string{"id", "number", "tag", "versioned_type", "versioned_id", "user_name", "modifications", "created_at"}

func TestVersionRepo_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, number, .* FROM versions ORDER BY id LIMIT \$1`).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows(versionRowColumns).
			AddRow(1, 1, "", "Post", "42", "7", "{}", now).
			AddRow(2, 2, "deleted", "Post", "42", "system", "{}", now))

	repo := NewVersionRepo(db)
	versions, err := repo.Latest(context.Background(), 100)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(versions) != 2 || versions[0].Number != 1 || versions[1].Tag != "deleted" || versions[1].UserName != "system" {
		t.Errorf("unexpected versions: %+v", versions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestVersionRepo_Find_ModelPaginated(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM versions WHERE versioned_type = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3$`).
		WithArgs("Post", 10, 10).
		WillReturnRows(sqlmock.NewRows(versionRowColumns).
			AddRow(11, 3, "", "Post", "42", "7", "{}", time.Now()))

	repo := NewVersionRepo(db)
	versions, err := repo.Find(context.Background(), models.VersionQuery{
		VersionedType: "Post",
		OrderBy:       models.ColumnCreatedAt,
		Descending:    true,
		Limit:         10,
		Offset:        10,
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(versions) != 1 || versions[0].ID != 11 {
		t.Errorf("unexpected versions: %+v", versions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestVersionRepo_Find_ObjectWithQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The free-text query only ever matches the version number.
	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM versions WHERE versioned_type = $1 AND versioned_id = $2 AND CAST(number AS TEXT) LIKE $3 ORDER BY user_name ASC, id ASC`) + `$`).
		WithArgs("Post", "42", "%2%").
		WillReturnRows(sqlmock.NewRows(versionRowColumns))

	repo := NewVersionRepo(db)
	versions, err := repo.Find(context.Background(), models.VersionQuery{
		VersionedType: "Post",
		VersionedID:   "42",
		NumberLike:    "2",
		OrderBy:       models.ColumnUserName,
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("expected no versions, got %+v", versions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestVersionRepo_Find_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection refused")
	mock.ExpectQuery(`FROM versions`).WillReturnError(boom)

	repo := NewVersionRepo(db)
	_, err = repo.Find(context.Background(), models.VersionQuery{VersionedType: "Post"})
	if !errors.Is(err, boom) {
		t.Errorf("expected storage error to propagate, got: %v", err)
	}
}
