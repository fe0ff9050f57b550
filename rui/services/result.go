package services

import (
	"time"

	"github.com/xlovstudio/rui/rui/database/models"
)

// Status classifies a command outcome for rendering and metrics.
type Status int

const (
	StatusOK Status = iota
	// StatusInvalid covers malformed input, unknown ids and rule violations.
	StatusInvalid
	StatusInsufficient
	StatusCooldown
	StatusForbidden
	// StatusUnavailable means the catalog cannot serve the request.
	StatusUnavailable
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalid:
		return "invalid"
	case StatusInsufficient:
		return "insufficient"
	case StatusCooldown:
		return "cooldown"
	case StatusForbidden:
		return "forbidden"
	case StatusUnavailable:
		return "unavailable"
	case StatusNotFound:
		return "not_found"
	}
	return "unknown"
}

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Result is the platform independent outcome of a command.
type Result struct {
	Status      Status
	Title       string
	Description string
	Fields      []Field
	Ephemeral   bool

	// Wait is the remaining cooldown for StatusCooldown results.
	Wait time.Duration
	// Offer holds the drop cards awaiting a pick.
	Offer     []models.Card
	ExpiresAt time.Time
	Boost     models.BoostTier
	// Owned is the full inventory for paged rendering.
	Owned []models.UserCard
}

func (r *Result) OK() bool {
	return r.Status == StatusOK
}

func ok(title, description string, fields ...Field) *Result {
	return &Result{Status: StatusOK, Title: title, Description: description, Fields: fields}
}

func fail(status Status, title, description string) *Result {
	return &Result{Status: status, Title: title, Description: description, Ephemeral: true}
}

// Actor identifies the user invoking a command.
type Actor struct {
	ID   string
	Name string
}
