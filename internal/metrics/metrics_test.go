package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/v1/versions":              "/v1/versions",
		"/v1/versions/{model}/{id}": "/v1/versions/{model}/{id}",
		"/v1/other/17":              "/v1/other/{id}",
		"/health":                   "/health",
		"":                          UnmatchedPath,
	}
	for in, want := range tests {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordListing(t *testing.T) {
	before := testutil.ToFloat64(VersionListingsTotal.WithLabelValues("object"))
	served := testutil.ToFloat64(VersionsServedTotal)

	RecordListing("object", 3)

	if got := testutil.ToFloat64(VersionListingsTotal.WithLabelValues("object")); got != before+1 {
		t.Errorf("listings = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(VersionsServedTotal); got != served+3 {
		t.Errorf("served = %v, want %v", got, served+3)
	}
}
