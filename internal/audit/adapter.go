package audit

import (
	"context"
	"errors"

	"github.com/crucial707/hci-versions/internal/models"
)

const (
	// LatestLimit caps Latest.
	LatestLimit = 100
	// DefaultPerPage is the page size used when the adapter is built without one.
	DefaultPerPage = 20
)

// ErrVersioningUnavailable is returned by NewAdapter when no version store is given.
var ErrVersioningUnavailable = errors.New("versioning store not configured")

// VersionStore reads version rows.
type VersionStore interface {
	Latest(ctx context.Context, limit int) ([]models.Version, error)
	Find(ctx context.Context, q models.VersionQuery) ([]models.Version, error)
}

// ListParams are the caller's listing options.
type ListParams struct {
	Query       string // matched against the version number only
	Sort        SortField
	SortReverse bool
	All         bool // skip pagination
	Page        int  // 1-based; <= 0 means the first page
	PerPage     int  // <= 0 means the adapter default
}

// Adapter serves version history to the admin panel. It never writes versions;
// the versioning library records them.
type Adapter struct {
	versions VersionStore
	users    UserFinder
	perPage  int
}

// NewAdapter returns an Adapter reading from versions and resolving user names
// through users. users may be nil.
func NewAdapter(versions VersionStore, users UserFinder, perPage int) (*Adapter, error) {
	if versions == nil {
		return nil, ErrVersioningUnavailable
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Adapter{versions: versions, users: users, perPage: perPage}, nil
}

// Latest returns up to LatestLimit versions in storage order.
func (a *Adapter) Latest(ctx context.Context) ([]View, error) {
	rows, err := a.versions.Latest(ctx, LatestLimit)
	if err != nil {
		return nil, err
	}
	return a.views(ctx, rows), nil
}

// ListForModel lists versions of every record of model.
func (a *Adapter) ListForModel(ctx context.Context, model string, p ListParams) ([]View, error) {
	return a.list(ctx, model, "", p)
}

// ListForObject lists versions of the model record identified by object.
func (a *Adapter) ListForObject(ctx context.Context, model, object string, p ListParams) ([]View, error) {
	return a.list(ctx, model, object, p)
}

// CreateObject is called by the panel after it creates a record. It does nothing.
func (a *Adapter) CreateObject(ctx context.Context, message, object, model, user string) error {
	return nil
}

// UpdateObject is called by the panel after it updates a record. It does nothing.
func (a *Adapter) UpdateObject(ctx context.Context, model, object string, changes map[string]any, user string) error {
	return nil
}

// DeleteObject is called by the panel after it deletes a record. It does nothing.
func (a *Adapter) DeleteObject(ctx context.Context, message, object, model, user string) error {
	return nil
}

func (a *Adapter) list(ctx context.Context, model, object string, p ListParams) ([]View, error) {
	q := models.VersionQuery{
		VersionedType: model,
		VersionedID:   object,
		NumberLike:    p.Query,
		OrderBy:       p.Sort.Column(),
		Descending:    p.SortReverse,
	}
	if p.Sort == SortDefault {
		q.Descending = true
	}

	if !p.All {
		page, perPage := p.Page, p.PerPage
		if page <= 0 {
			page = 1
		}
		if perPage <= 0 {
			perPage = a.perPage
		}
		q.Limit = perPage
		q.Offset = (page - 1) * perPage
	}

	rows, err := a.versions.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return a.views(ctx, rows), nil
}

func (a *Adapter) views(ctx context.Context, rows []models.Version) []View {
	out := make([]View, 0, len(rows))
	for _, v := range rows {
		out = append(out, NewView(ctx, v, a.users))
	}
	return out
}
