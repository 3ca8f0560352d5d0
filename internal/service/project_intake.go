package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/projectgallery/internal/db"
)

var (
	ErrProjectFieldsMissing = errors.New("all project fields are required")
	ErrProjectIDMissing     = errors.New("project id is required")
)

// Status lines shown after form submissions.
const (
	StatusFieldsMissing = "Please fill out all fields before saving."
	StatusIDMissing     = "Enter an ID to delete."
	StatusReloaded      = "Reloaded projects from local storage."
)

// ProjectForm carries the raw values of the create/update form.
type ProjectForm struct {
	ID          string `form:"id" json:"id"`
	Title       string `form:"title" json:"title"`
	Image       string `form:"image" json:"image"`
	Alt         string `form:"alt" json:"alt"`
	Description string `form:"description" json:"description"`
	Link        string `form:"link" json:"link"`
}

// Trimmed returns the form with surrounding whitespace removed from every field.
func (f ProjectForm) Trimmed() ProjectForm {
	return ProjectForm{
		ID:          strings.TrimSpace(f.ID),
		Title:       strings.TrimSpace(f.Title),
		Image:       strings.TrimSpace(f.Image),
		Alt:         strings.TrimSpace(f.Alt),
		Description: strings.TrimSpace(f.Description),
		Link:        strings.TrimSpace(f.Link),
	}
}

func (f ProjectForm) complete() bool {
	return f.Title != "" && f.Image != "" && f.Alt != "" && f.Description != "" && f.Link != ""
}

// SubmitResult describes a successful create or update.
type SubmitResult struct {
	Project db.Project
	Outcome UpsertOutcome
	Status  string
}

// DeleteResult describes a delete request that reached the store.
type DeleteResult struct {
	ID      string
	Outcome DeleteOutcome
	Status  string
}

// ProjectIntake validates form input and applies it to the store.
type ProjectIntake struct {
	store *ProjectStore
	now   func() time.Time

	mu     sync.Mutex
	lastID int64
}

// NewProjectIntake creates a ProjectIntake writing to store.
func NewProjectIntake(store *ProjectStore) *ProjectIntake {
	return &ProjectIntake{store: store, now: time.Now}
}

// SetClock replaces the time source used for generated ids.
func (in *ProjectIntake) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	in.now = now
}

// Submit creates or updates a project from form input.
func (in *ProjectIntake) Submit(form ProjectForm) (SubmitResult, error) {
	form = form.Trimmed()
	if !form.complete() {
		return SubmitResult{Status: StatusFieldsMissing}, ErrProjectFieldsMissing
	}

	project := db.Project{
		ID:          in.resolveID(form.ID),
		Title:       form.Title,
		Image:       form.Image,
		Alt:         form.Alt,
		Description: form.Description,
		Link:        form.Link,
	}

	outcome, err := in.store.Upsert(project)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("upsert project %s: %w", project.ID, err)
	}

	status := fmt.Sprintf("Created new project with ID %s.", project.ID)
	if outcome == UpsertUpdated {
		status = fmt.Sprintf("Updated project with ID %s.", project.ID)
	}
	return SubmitResult{Project: project, Outcome: outcome, Status: status}, nil
}

// Delete removes every project whose id matches rawID.
func (in *ProjectIntake) Delete(rawID string) (DeleteResult, error) {
	id := strings.TrimSpace(rawID)
	if id == "" {
		return DeleteResult{Status: StatusIDMissing}, ErrProjectIDMissing
	}

	outcome, err := in.store.DeleteByID(id)
	if err != nil {
		return DeleteResult{ID: id}, fmt.Errorf("delete project %s: %w", id, err)
	}

	status := fmt.Sprintf("Deleted project with ID %s.", id)
	if outcome == DeleteNotFound {
		status = fmt.Sprintf("No project found with ID %s.", id)
	}
	return DeleteResult{ID: id, Outcome: outcome, Status: status}, nil
}

func (in *ProjectIntake) resolveID(raw string) db.ProjectID {
	if raw != "" {
		return db.ParseProjectID(raw)
	}
	return db.NumericID(float64(in.nextTimestampID()))
}

// nextTimestampID returns the current time in milliseconds, bumped past the
// previous value when the clock has not advanced.
func (in *ProjectIntake) nextTimestampID() int64 {
	in.mu.Lock()
	defer in.mu.Unlock()

	id := in.now().UnixMilli()
	if id <= in.lastID {
		id = in.lastID + 1
	}
	in.lastID = id
	return id
}
