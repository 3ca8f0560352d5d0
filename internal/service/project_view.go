package service

import (
	"bytes"
	"html/template"
	"log"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/projectgallery/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	GalleryPlaceholder = "No projects to display yet."
	ManagePlaceholder  = "No projects found in local storage yet."
)

var (
	descriptionEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
	)
	descriptionPolicy = bluemonday.UGCPolicy()
)

// CardDefaults fills card fields the record leaves empty.
type CardDefaults struct {
	Title string
	Image string
	Link  string
}

// DefaultCardDefaults returns the fallbacks used by the project card.
func DefaultCardDefaults() CardDefaults {
	return CardDefaults{
		Title: "Project Title",
		Image: "images/NumArt-Demo.png",
		Link:  "#",
	}
}

// ProjectCard is the display form of one project.
type ProjectCard struct {
	ID              string
	Title           string
	Image           string
	Alt             string
	Description     string
	DescriptionHTML template.HTML
	Link            string
	Hidden          bool
}

// RenderCard expands a project into a card, applying defaults to empty
// fields. Alt falls back to the resolved title.
func RenderCard(project db.Project, defaults CardDefaults) ProjectCard {
	card := ProjectCard{
		ID:          project.ID.String(),
		Title:       firstNonEmpty(project.Title, defaults.Title),
		Image:       firstNonEmpty(project.Image, defaults.Image),
		Description: project.Description,
		Link:        firstNonEmpty(project.Link, defaults.Link),
	}
	card.Alt = firstNonEmpty(project.Alt, card.Title)
	card.DescriptionHTML = renderDescription(card.Description)
	return card
}

// RenderCards renders projects in collection order.
func RenderCards(projects []db.Project, defaults CardDefaults) []ProjectCard {
	cards := make([]ProjectCard, 0, len(projects))
	for _, project := range projects {
		cards = append(cards, RenderCard(project, defaults))
	}
	return cards
}

// FilterCards returns copies of cards with Hidden set on those whose title
// and description both miss query. Matching is case-insensitive.
func FilterCards(cards []ProjectCard, query string) []ProjectCard {
	needle := strings.ToLower(strings.TrimSpace(query))
	filtered := make([]ProjectCard, len(cards))
	for i, card := range cards {
		card.Hidden = !(strings.Contains(strings.ToLower(card.Title), needle) ||
			strings.Contains(strings.ToLower(card.Description), needle))
		filtered[i] = card
	}
	return filtered
}

func renderDescription(description string) template.HTML {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := descriptionEngine.Convert([]byte(description), &buf); err != nil {
		log.Printf("[view] render description: %v", err)
		return template.HTML(template.HTMLEscapeString(description))
	}
	return template.HTML(descriptionPolicy.SanitizeBytes(buf.Bytes()))
}

func firstNonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// ViewSnapshot is a copy of a view's state ready for a template.
type ViewSnapshot struct {
	Rendered     bool
	Cards        []ProjectCard
	Placeholder  string
	Status       string
	Query        string
	VisibleCount int
}

// ProjectView holds the cards currently on one visitor's screen and the
// status line shown next to them.
type ProjectView struct {
	store       *ProjectStore
	placeholder string
	defaults    CardDefaults

	mu       sync.Mutex
	rendered bool
	cards    []ProjectCard
	status   string
}

// NewProjectView creates an empty view that shows placeholder when it
// renders an empty collection.
func NewProjectView(store *ProjectStore, placeholder string) *ProjectView {
	return &ProjectView{
		store:       store,
		placeholder: placeholder,
		defaults:    DefaultCardDefaults(),
	}
}

// Render replaces the whole card list.
func (v *ProjectView) Render(projects []db.Project) {
	cards := RenderCards(projects, v.defaults)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.cards = cards
	v.rendered = true
}

// RenderStored re-reads the store and renders what it holds.
func (v *ProjectView) RenderStored() []db.Project {
	projects := v.store.Load()
	v.Render(projects)
	return projects
}

// SetStatus overwrites the status line.
func (v *ProjectView) SetStatus(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = message
}

// Status returns the current status line.
func (v *ProjectView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Snapshot copies the view state, hiding cards that do not match query.
func (v *ProjectView) Snapshot(query string) ViewSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snapshot := ViewSnapshot{
		Rendered: v.rendered,
		Status:   v.status,
		Query:    strings.TrimSpace(query),
		Cards:    FilterCards(v.cards, query),
	}
	if v.rendered && len(v.cards) == 0 {
		snapshot.Placeholder = v.placeholder
	}
	for _, card := range snapshot.Cards {
		if !card.Hidden {
			snapshot.VisibleCount++
		}
	}
	return snapshot
}
