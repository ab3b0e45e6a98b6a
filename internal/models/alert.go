package models

import (
	"time"
)

// Alert is a classified news item tracked for the session.
type Alert struct {
	ID        string         `json:"id"`
	NewsID    string         `json:"news_id"`
	Title     string         `json:"title"`
	Source    string         `json:"source"`
	Type      string         `json:"type,omitempty"`
	Date      time.Time      `json:"date"`
	Location  string         `json:"location"`
	Summary   string         `json:"summary"`
	FullText  string         `json:"full_text,omitempty"`
	Status    AlertStatus    `json:"status"`
	Analysis  AnalysisResult `json:"analysis"`
	CreatedAt time.Time      `json:"created_at"`
}

// AlertStatus is the user-facing state of an alert.
type AlertStatus string

const (
	AlertStatusUnread    AlertStatus = "unread"    // Created, not yet viewed
	AlertStatusRead      AlertStatus = "read"      // Viewed in detail
	AlertStatusDismissed AlertStatus = "dismissed" // Hidden by the user
	AlertStatusActioned  AlertStatus = "actioned"  // User acted on the recommendation
)

// Valid reports whether s is a known status.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertStatusUnread, AlertStatusRead, AlertStatusDismissed, AlertStatusActioned:
		return true
	}
	return false
}

// NewAlert builds an unread alert from a news item and its analysis.
func NewAlert(id string, item RawNewsItem, analysis AnalysisResult, createdAt time.Time) Alert {
	return Alert{
		ID:        id,
		NewsID:    item.ID,
		Title:     item.Title,
		Source:    item.Source,
		Type:      item.Type,
		Date:      item.Date,
		Location:  item.Location,
		Summary:   item.Summary,
		FullText:  item.FullText,
		Status:    AlertStatusUnread,
		Analysis:  analysis,
		CreatedAt: createdAt,
	}
}

// MarkRead moves an unread alert to read. Other states are left unchanged so
// viewing a dismissed or actioned alert does not revive it.
func (a *Alert) MarkRead() {
	if a.Status == AlertStatusUnread {
		a.Status = AlertStatusRead
	}
}

// Dismiss hides the alert regardless of its current state.
func (a *Alert) Dismiss() {
	a.Status = AlertStatusDismissed
}

// MarkActioned records that the user acted on the alert.
func (a *Alert) MarkActioned() {
	a.Status = AlertStatusActioned
}
