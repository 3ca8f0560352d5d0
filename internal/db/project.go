package db

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Project is one gallery entry as persisted in the projects slot and as
// served by the remote source.
type Project struct {
	ID          ProjectID `json:"id"`
	Title       string    `json:"title"`
	Image       string    `json:"image"`
	Alt         string    `json:"alt"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
}

// ProjectID identifies a project. It is either a string or a number; two ids
// are the same when their String forms are equal.
type ProjectID struct {
	text    string
	number  float64
	numeric bool
	set     bool
}

// StringID returns a string identifier.
func StringID(value string) ProjectID {
	return ProjectID{text: value, set: true}
}

// NumericID returns a numeric identifier.
func NumericID(value float64) ProjectID {
	return ProjectID{number: value, numeric: true, set: true}
}

// IsZero reports whether the id was never assigned.
func (id ProjectID) IsZero() bool {
	return !id.set
}

// IsNumeric reports whether the id holds a number.
func (id ProjectID) IsNumeric() bool {
	return id.set && id.numeric
}

// Number returns the numeric value and whether the id is numeric.
func (id ProjectID) Number() (float64, bool) {
	return id.number, id.IsNumeric()
}

// String returns the canonical projection used for comparisons.
func (id ProjectID) String() string {
	switch {
	case !id.set:
		return ""
	case id.numeric:
		return formatNumber(id.number)
	default:
		return id.text
	}
}

// Equal compares two ids by their canonical projection.
func (id ProjectID) Equal(other ProjectID) bool {
	return id.String() == other.String()
}

// MarshalJSON keeps numeric ids as JSON numbers.
func (id ProjectID) MarshalJSON() ([]byte, error) {
	switch {
	case !id.set:
		return []byte("null"), nil
	case id.numeric:
		if math.IsNaN(id.number) || math.IsInf(id.number, 0) {
			return nil, fmt.Errorf("project id %v is not a finite number", id.number)
		}
		return []byte(formatNumber(id.number)), nil
	default:
		return json.Marshal(id.text)
	}
}

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ProjectID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case nil:
		*id = ProjectID{}
	case string:
		*id = StringID(value)
	case float64:
		*id = NumericID(value)
	default:
		return fmt.Errorf("project id must be a string or number, got %s", string(data))
	}
	return nil
}

// ParseProjectID applies the identifier policy to a trimmed, non-empty
// value: anything that parses as a finite number is stored as a number,
// everything else verbatim.
func ParseProjectID(value string) ProjectID {
	if number, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(number) && !math.IsInf(number, 0) {
		return NumericID(number)
	}
	return StringID(value)
}

func formatNumber(value float64) string {
	if value == 0 {
		return "0"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
