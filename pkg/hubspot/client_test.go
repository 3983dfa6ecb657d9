package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURLForRegion(t *testing.T) {
	tests := []struct {
		region   string
		expected string
	}{
		{"na1", "https://api.hsforms.com"},
		{"na2", "https://api.hsforms.com"},
		{"", "https://api.hsforms.com"},
		{"eu1", "https://api-eu1.hsforms.com"},
		{"ap1", "https://api-ap1.hsforms.com"},
	}

	for _, tt := range tests {
		t.Run("region_"+tt.region, func(t *testing.T) {
			assert.Equal(t, tt.expected, BaseURLForRegion(tt.region))
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	var gotPath string
	var gotPayload SubmissionPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("48890556", "na2", 5*time.Second)
	client.baseURL = srv.URL

	payload := &SubmissionPayload{
		SubmittedAt: 1700000000000,
		Fields: []Field{
			{Name: "email", Value: "jane@example.com"},
		},
		Context: &Context{PageURI: "https://example.com/contact"},
	}

	err := client.Submit(context.Background(), "form-guid", payload)
	require.NoError(t, err)

	assert.Equal(t, "/submissions/v3/integration/submit/48890556/form-guid", gotPath)
	assert.Equal(t, int64(1700000000000), gotPayload.SubmittedAt)
	require.Len(t, gotPayload.Fields, 1)
	assert.Equal(t, "email", gotPayload.Fields[0].Name)
	require.NotNil(t, gotPayload.Context)
	assert.Equal(t, "https://example.com/contact", gotPayload.Context.PageURI)
}

func TestSubmit_ContextOmittedWhenNil(t *testing.T) {
	var raw map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient("48890556", "na2", 5*time.Second)
	client.baseURL = srv.URL

	err := client.Submit(context.Background(), "form-guid", &SubmissionPayload{
		SubmittedAt: 1,
		Fields:      []Field{{Name: "email", Value: "jane@example.com"}},
	})
	require.NoError(t, err)

	_, hasContext := raw["context"]
	assert.False(t, hasContext, "context key must be absent when no metadata is set")
}

func TestSubmit_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error"}`))
	}))
	defer srv.Close()

	client := NewClient("48890556", "na2", 5*time.Second)
	client.baseURL = srv.URL

	err := client.Submit(context.Background(), "form-guid", &SubmissionPayload{
		SubmittedAt: 1,
		Fields:      []Field{{Name: "email", Value: "jane@example.com"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSubmit_TransportError(t *testing.T) {
	client := NewClient("48890556", "na2", 500*time.Millisecond)
	// Closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client.baseURL = srv.URL

	err := client.Submit(context.Background(), "form-guid", &SubmissionPayload{
		SubmittedAt: 1,
		Fields:      []Field{{Name: "email", Value: "jane@example.com"}},
	})
	require.Error(t, err)
}
