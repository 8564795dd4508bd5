package versions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

var sample = []map[string]any{
	{"number": 2, "event": "updated", "message": "updated Post id 42", "table": "Post", "item": "42", "username": "ann@example.com", "created_at": "2024-05-01T12:00:00Z"},
}

func TestObject_TableOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/versions/Post/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("sort_reverse"); got != "true" {
			t.Errorf("sort_reverse = %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(sample)
	}))
	defer srv.Close()

	t.Setenv("HCI_VERSIONS_API_URL", srv.URL)
	t.Setenv("HCI_VERSIONS_TOKEN", "tok")

	cmd := objectCmd()
	cmd.SetContext(context.Background())
	_ = cmd.Flags().Set("reverse", "true")
	_ = cmd.Flags().Set("page", "2")

	var runErr error
	out := captureOutput(t, func() {
		runErr = cmd.RunE(cmd, []string{"Post", "42"})
	})

	if runErr != nil {
		t.Fatalf("RunE: %v", runErr)
	}
	if !strings.Contains(out, "updated Post id 42") || !strings.Contains(out, "ann@example.com") {
		t.Fatalf("expected version in output, got: %s", out)
	}
}

func TestLatest_JSONOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/versions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(sample)
	}))
	defer srv.Close()

	t.Setenv("HCI_VERSIONS_API_URL", srv.URL)

	cmd := latestCmd()
	cmd.SetContext(context.Background())
	_ = cmd.Flags().Set("json", "true")

	out := captureOutput(t, func() {
		if err := cmd.RunE(cmd, nil); err != nil {
			t.Errorf("RunE: %v", err)
		}
	})

	if !strings.Contains(out, `"message": "updated Post id 42"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
}

func TestModel_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid query parameters"}`))
	}))
	defer srv.Close()

	t.Setenv("HCI_VERSIONS_API_URL", srv.URL)

	cmd := modelCmd()
	cmd.SetContext(context.Background())
	_ = cmd.Flags().Set("sort", "number")

	err := cmd.RunE(cmd, []string{"Post"})
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("expected API error, got %v", err)
	}
}
