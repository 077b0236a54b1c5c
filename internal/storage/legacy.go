package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// legacyTimeLayout is the minute-resolution local timestamp of legacy files.
const legacyTimeLayout = "2006-01-02 15:04"

// legacyRecord is one entry of a legacy bare-array file.
type legacyRecord struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

// decodeLegacy converts the legacy format into records of the current one.
// Timestamps are read in loc and converted to UTC.
func decodeLegacy(data []byte, loc *time.Location, result *ValidationResult) []record {
	var legacy []legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("decode legacy file: %w", err)})
		return nil
	}

	records := make([]record, 0, len(legacy))
	for i, lr := range legacy {
		path := fmt.Sprintf("[%d]", i)

		created, err := parseLegacyTime(lr.CreatedAt, loc)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".created_at", Err: err})
			continue
		}

		r := record{
			ID:        lr.ID,
			Title:     strings.TrimSpace(lr.Description),
			Priority:  lr.Priority,
			Completed: lr.Completed,
			CreatedAt: created,
		}
		if lr.CompletedAt != nil && *lr.CompletedAt != "" {
			at, err := parseLegacyTime(*lr.CompletedAt, loc)
			if err != nil {
				result.Valid = false
				result.Errors = append(result.Errors, &ValidationError{Path: path + ".completed_at", Err: err})
				continue
			}
			r.CompletedAt = &at
		}
		if r.Title == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".description", Err: fmt.Errorf("must not be blank")})
			continue
		}
		records = append(records, r)
	}
	return records
}

func parseLegacyTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(legacyTimeLayout, s, loc); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q, expected %q", s, legacyTimeLayout)
}

