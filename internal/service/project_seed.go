package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/projectgallery/internal/db"
	"gopkg.in/yaml.v3"
)

// ErrSeedFileEmpty is returned when a seed file lists no projects.
var ErrSeedFileEmpty = errors.New("seed file contains no projects")

// DefaultSeedProjects returns the two example projects written into an
// empty slot.
func DefaultSeedProjects() []db.Project {
	return []db.Project{
		{
			ID:          db.NumericID(1),
			Title:       "NumArt",
			Image:       "images/NumArtLogo.jpg",
			Alt:         "NumArt paint-by-numbers demo",
			Description: "End-to-end paint-by-numbers pipeline that turns images into paintable templates and controls a Raspberry Pi paint mixer.",
			Link:        "https://github.com/ethankook/numart-backend",
		},
		{
			ID:          db.NumericID(2),
			Title:       "RISC Processor",
			Image:       "images/RiscLogo.avif",
			Alt:         "Custom RISC processor diagram",
			Description: "Custom RISC-style CPU with 8 registers and a compact instruction set implemented and simulated for education.",
			Link:        "https://github.com/ethankook/RISC",
		},
	}
}

type seedProject struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Image       string `yaml:"image"`
	Alt         string `yaml:"alt"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

// LoadSeedFile reads seed projects from a YAML list. Ids follow the same
// policy as form submissions; entries without an id are numbered by
// position starting at 1.
func LoadSeedFile(path string) ([]db.Project, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []seedProject
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrSeedFileEmpty
	}

	projects := make([]db.Project, 0, len(entries))
	for i, entry := range entries {
		id := db.NumericID(float64(i + 1))
		if trimmed := strings.TrimSpace(entry.ID); trimmed != "" {
			id = db.ParseProjectID(trimmed)
		}
		project := db.Project{
			ID:          id,
			Title:       strings.TrimSpace(entry.Title),
			Image:       strings.TrimSpace(entry.Image),
			Alt:         strings.TrimSpace(entry.Alt),
			Description: strings.TrimSpace(entry.Description),
			Link:        strings.TrimSpace(entry.Link),
		}
		// a repeated id replaces the earlier entry, as an upsert would
		if index := indexOfProject(projects, id.String()); index >= 0 {
			projects[index] = project
			continue
		}
		projects = append(projects, project)
	}
	return projects, nil
}
