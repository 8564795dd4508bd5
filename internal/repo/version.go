package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/crucial707/hci-versions/internal/models"
)

const versionColumns = `id, number, COALESCE(tag, ''), versioned_type, versioned_id, COALESCE(user_name, ''), COALESCE(modifications, ''), created_at`

// VersionRepo reads rows written by the versioning library.
type VersionRepo struct {
	db *sql.DB
}

// NewVersionRepo returns a new VersionRepo.
func NewVersionRepo(db *sql.DB) *VersionRepo {
	return &VersionRepo{db: db}
}

// Latest returns the first limit versions in id order.
func (r *VersionRepo) Latest(ctx context.Context, limit int) ([]models.Version, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+versionColumns+` FROM versions ORDER BY id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return scanVersions(rows)
}

// Find returns the versions matching q. The number pattern is a substring
// match on the version number and nothing else.
func (r *VersionRepo) Find(ctx context.Context, q models.VersionQuery) ([]models.Version, error) {
	var sb strings.Builder
	args := []any{q.VersionedType}

	sb.WriteString(`SELECT ` + versionColumns + ` FROM versions WHERE versioned_type = $1`)
	if q.VersionedID != "" {
		args = append(args, q.VersionedID)
		fmt.Fprintf(&sb, ` AND versioned_id = $%d`, len(args))
	}
	if q.NumberLike != "" {
		args = append(args, "%"+q.NumberLike+"%")
		fmt.Fprintf(&sb, ` AND CAST(number AS TEXT) LIKE $%d`, len(args))
	}

	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, ` ORDER BY %s %s, id %s`, q.OrderBy, dir, dir)

	if q.Limit > 0 {
		args = append(args, q.Limit, q.Offset)
		fmt.Fprintf(&sb, ` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	return scanVersions(rows)
}

func scanVersions(rows *sql.Rows) ([]models.Version, error) {
	defer rows.Close()

	var versions []models.Version
	for rows.Next() {
		var v models.Version
		if err := rows.Scan(&v.ID, &v.Number, &v.Tag, &v.VersionedType, &v.VersionedID, &v.UserName, &v.Modifications, &v.CreatedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
