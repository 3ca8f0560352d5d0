package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/projectgallery/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRemoteTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRemoteFetchAcceptsBareArrayAndRecordWrapper(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bare array", body: `[{"id":1,"title":"NumArt"},{"id":"two","title":"RISC"}]`},
		{name: "record wrapper", body: `{"record":[{"id":1,"title":"NumArt"},{"id":"two","title":"RISC"}],"metadata":{"private":false}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newRemoteTestServer(t, http.StatusOK, tt.body)
			source := NewRemoteProjectSource(server.URL, time.Second, nil)

			projects, err := source.Fetch(context.Background())
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if len(projects) != 2 {
				t.Fatalf("expected 2 projects, got %d", len(projects))
			}
			if projects[0].ID.String() != "1" || projects[1].Title != "RISC" {
				t.Fatalf("unexpected projects: %+v", projects)
			}
		})
	}
}

func TestRemoteFetchRejectsNonSuccessStatus(t *testing.T) {
	server := newRemoteTestServer(t, http.StatusInternalServerError, `[]`)
	recorder := metrics.New()
	source := NewRemoteProjectSource(server.URL, time.Second, recorder)

	_, err := source.Fetch(context.Background())
	if !errors.Is(err, ErrRemoteStatus) {
		t.Fatalf("expected ErrRemoteStatus, got %v", err)
	}

	count, err := testutil.GatherAndCount(recorder.Registry(), "projectgallery_remote_fetches_total")
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one remote fetch series, got %d", count)
	}
}

func TestRemoteFetchRejectsUnexpectedShapes(t *testing.T) {
	bodies := map[string]string{
		"empty":             ``,
		"object no record":  `{"projects":[]}`,
		"record not a list": `{"record":{"id":1}}`,
		"scalar":            `42`,
		"bad id type":       `[{"id":true}]`,
		"truncated":         `[{"id":1`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := newRemoteTestServer(t, http.StatusOK, body)
			source := NewRemoteProjectSource(server.URL, time.Second, nil)

			if _, err := source.Fetch(context.Background()); !errors.Is(err, ErrRemotePayloadInvalid) {
				t.Fatalf("expected ErrRemotePayloadInvalid, got %v", err)
			}
		})
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestRemoteFetchWrapsTransportErrors(t *testing.T) {
	source := NewRemoteProjectSource("http://remote.invalid/projects", 0, nil)
	source.SetHTTPClient(failingDoer{})

	_, err := source.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if errors.Is(err, ErrRemoteStatus) || errors.Is(err, ErrRemotePayloadInvalid) {
		t.Fatalf("expected a transport error, got %v", err)
	}
}
