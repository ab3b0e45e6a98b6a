package models

import (
	"errors"
	"strings"
	"time"
)

// RawNewsItem is an external event as produced by a news source. It is not
// modified after creation.
type RawNewsItem struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	FullText string    `json:"full_text,omitempty"`
}

// Validate requires the identifying fields.
func (n RawNewsItem) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("news item id is required")
	}
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("news item title is required")
	}
	return nil
}
