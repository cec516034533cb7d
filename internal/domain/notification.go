package domain

import "time"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

type Position string

const (
	PositionBottom Position = "bottom"
	PositionTop    Position = "top"
	PositionMiddle Position = "middle"
)

// Notification is a transient, non-blocking banner shown to the user.
type Notification struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	DurationMs int       `json:"duration_ms"`
	Position   Position  `json:"position"`
	Severity   Severity  `json:"severity"`
	CreatedAt  time.Time `json:"created_at"`
}
