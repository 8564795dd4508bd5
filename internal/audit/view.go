package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/crucial707/hci-versions/internal/models"
)

// UserFinder looks up users by primary key. A miss is models.ErrUserNotFound.
type UserFinder interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// View is the display form of one version row.
type View struct {
	Number    int       `json:"number"`
	Event     Event     `json:"event"`
	Message   string    `json:"message"`
	Table     string    `json:"table"`
	Item      string    `json:"item"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewView builds the View for v. users may be nil, in which case the raw
// stored user identifier is shown.
func NewView(ctx context.Context, v models.Version, users UserFinder) View {
	event := ClassifyEvent(v.Number, v.Tag)
	return View{
		Number:    v.Number,
		Event:     event,
		Message:   fmt.Sprintf("%s %s id %s", event, v.VersionedType, v.VersionedID),
		Table:     v.VersionedType,
		Item:      v.VersionedID,
		Username:  resolveUsername(ctx, v.UserName, users),
		CreatedAt: v.CreatedAt,
	}
}

// resolveUsername returns the email of the user whose id is raw, or raw itself.
func resolveUsername(ctx context.Context, raw string, users UserFinder) string {
	if users == nil {
		return raw
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}
	u, err := users.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			slog.Warn("user lookup failed", "user_name", raw, "error", err)
		}
		return raw
	}
	if u == nil || u.Email == "" {
		return raw
	}
	return u.Email
}
