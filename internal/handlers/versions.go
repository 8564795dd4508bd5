package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	"github.com/crucial707/hci-versions/internal/audit"
	"github.com/crucial707/hci-versions/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// VersionHandler serves version history endpoints.
type VersionHandler struct {
	Auditor *audit.Adapter
}

// listQuery holds the raw listing query parameters.
type listQuery struct {
	Query       string `param:"query" validate:"max=255"`
	Sort        string `param:"sort" validate:"omitempty,oneof=item table username created_at message"`
	SortReverse string `param:"sort_reverse"`
	All         string `param:"all" validate:"omitempty,oneof=true false 1 0"`
	Page        string `param:"page" validate:"omitempty,number,max=9"`
	PerPage     string `param:"per_page" validate:"omitempty,number,max=9"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("param")
	})
	return v
}

// Latest returns up to 100 versions, no filter. Served at the collection root so
// every {model} name stays listable.
func (h *VersionHandler) Latest(w http.ResponseWriter, r *http.Request) {
	views, err := h.Auditor.Latest(r.Context())
	if err != nil {
		slog.Error("list latest versions", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeViews(w, "latest", views)
}

// ListForModel returns versions of every record of {model}.
// Query: query, sort, sort_reverse, all, page, per_page.
func (h *VersionHandler) ListForModel(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")
	params, ok := h.parseListParams(w, r)
	if !ok {
		return
	}

	views, err := h.Auditor.ListForModel(r.Context(), model, params)
	if err != nil {
		slog.Error("list model versions", "model", model, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeViews(w, "model", views)
}

// ListForObject returns versions of record {id} of {model}.
func (h *VersionHandler) ListForObject(w http.ResponseWriter, r *http.Request) {
	model := chi.URLParam(r, "model")
	id := chi.URLParam(r, "id")
	params, ok := h.parseListParams(w, r)
	if !ok {
		return
	}

	views, err := h.Auditor.ListForObject(r.Context(), model, id, params)
	if err != nil {
		slog.Error("list object versions", "model", model, "id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	writeViews(w, "object", views)
}

// parseListParams validates the query string. On failure it writes a 400 and returns false.
func (h *VersionHandler) parseListParams(w http.ResponseWriter, r *http.Request) (audit.ListParams, bool) {
	q := r.URL.Query()
	in := listQuery{
		Query:       q.Get("query"),
		Sort:        q.Get("sort"),
		SortReverse: q.Get("sort_reverse"),
		All:         q.Get("all"),
		Page:        q.Get("page"),
		PerPage:     q.Get("per_page"),
	}

	if err := validate.Struct(in); err != nil {
		fields := map[string]string{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = "failed " + fe.Tag()
			}
		}
		JSONValidationError(w, "invalid query parameters", fields, http.StatusBadRequest)
		return audit.ListParams{}, false
	}

	sort, err := audit.ParseSortField(in.Sort)
	if err != nil {
		JSONValidationError(w, "invalid query parameters", map[string]string{"sort": err.Error()}, http.StatusBadRequest)
		return audit.ListParams{}, false
	}

	params := audit.ListParams{
		Query:       in.Query,
		Sort:        sort,
		SortReverse: in.SortReverse == "true",
		All:         in.All == "true" || in.All == "1",
	}
	if in.Page != "" {
		params.Page, _ = strconv.Atoi(in.Page)
	}
	if in.PerPage != "" {
		params.PerPage, _ = strconv.Atoi(in.PerPage)
	}
	return params, true
}

func writeViews(w http.ResponseWriter, scope string, views []audit.View) {
	metrics.RecordListing(scope, len(views))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}
