package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/projectgallery/internal/db"
	"github.com/projectgallery/internal/metrics"
)

var (
	ErrRemoteStatus         = errors.New("remote source returned a non-success status")
	ErrRemotePayloadInvalid = errors.New("remote payload is not a project list")
)

// Status lines for the gallery page.
const (
	StatusLocalLoaded  = "Loaded projects from local storage."
	StatusLocalFailed  = "Could not load local projects."
	StatusRemoteLoaded = "Loaded projects from remote data."
	StatusRemoteFailed = "Could not load remote projects. Check the remote URL or your API."
)

const maxRemoteBodyBytes = 4 << 20

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RemoteProjectSource fetches projects from a JSON endpoint. The endpoint
// may answer with a bare array or with an object wrapping the array in a
// "record" field.
type RemoteProjectSource struct {
	url     string
	http    httpDoer
	metrics *metrics.Recorder
}

// NewRemoteProjectSource creates a source for url. A non-positive timeout
// leaves the client without one.
func NewRemoteProjectSource(url string, timeout time.Duration, recorder *metrics.Recorder) *RemoteProjectSource {
	if timeout < 0 {
		timeout = 0
	}
	return &RemoteProjectSource{
		url:     strings.TrimSpace(url),
		http:    &http.Client{Timeout: timeout},
		metrics: recorder,
	}
}

// SetHTTPClient swaps the client, mainly for tests.
func (s *RemoteProjectSource) SetHTTPClient(client httpDoer) {
	if client == nil {
		client = &http.Client{}
	}
	s.http = client
}

// URL returns the endpoint.
func (s *RemoteProjectSource) URL() string {
	return s.url
}

// Fetch downloads and decodes the remote project list.
func (s *RemoteProjectSource) Fetch(ctx context.Context) ([]db.Project, error) {
	projects, err := s.fetch(ctx)
	if err != nil {
		log.Printf("[remote] fetch %s: %v", s.url, err)
		s.metrics.ObserveRemote("error")
		return nil, err
	}
	s.metrics.ObserveRemote("ok")
	return projects, nil
}

func (s *RemoteProjectSource) fetch(ctx context.Context) ([]db.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build remote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request remote projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrRemoteStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read remote body: %w", err)
	}
	return decodeRemoteProjects(body)
}

func decodeRemoteProjects(body []byte) ([]db.Project, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrRemotePayloadInvalid
	}

	list := trimmed
	if trimmed[0] == '{' {
		var wrapper struct {
			Record json.RawMessage `json:"record"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemotePayloadInvalid, err)
		}
		list = bytes.TrimSpace(wrapper.Record)
	}

	if len(list) == 0 || list[0] != '[' {
		return nil, ErrRemotePayloadInvalid
	}

	var projects []db.Project
	if err := json.Unmarshal(list, &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemotePayloadInvalid, err)
	}
	if projects == nil {
		projects = []db.Project{}
	}
	return projects, nil
}
