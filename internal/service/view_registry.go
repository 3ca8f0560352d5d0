package service

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultViewCacheSize = 1024

// ViewRegistry hands out the gallery and manage views of each visitor.
// Least recently used visitors are evicted once the registry is full.
type ViewRegistry struct {
	store *ProjectStore
	mu    sync.Mutex
	views *lru.Cache[string, *ProjectView]
}

// NewViewRegistry creates a registry holding at most size views.
func NewViewRegistry(store *ProjectStore, size int) (*ViewRegistry, error) {
	if size <= 0 {
		size = defaultViewCacheSize
	}
	cache, err := lru.New[string, *ProjectView](size)
	if err != nil {
		return nil, fmt.Errorf("create view cache: %w", err)
	}
	return &ViewRegistry{store: store, views: cache}, nil
}

// Gallery returns the visitor's gallery view.
func (r *ViewRegistry) Gallery(visitorID string) *ProjectView {
	return r.view(visitorID, "gallery", GalleryPlaceholder)
}

// Manage returns the visitor's manage-page preview.
func (r *ViewRegistry) Manage(visitorID string) *ProjectView {
	return r.view(visitorID, "manage", ManagePlaceholder)
}

// Len reports how many views are cached.
func (r *ViewRegistry) Len() int {
	return r.views.Len()
}

func (r *ViewRegistry) view(visitorID, name, placeholder string) *ProjectView {
	key := visitorID + "/" + name

	r.mu.Lock()
	defer r.mu.Unlock()

	if view, ok := r.views.Get(key); ok {
		return view
	}
	view := NewProjectView(r.store, placeholder)
	r.views.Add(key, view)
	return view
}
