package model

import (
	"fmt"
	"strings"
)

// Status is the work order lifecycle state.
type Status string

const (
	StatusPending          Status = "pending"
	StatusInProgress       Status = "in_progress"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

// Statuses returns every canonical status.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusAwaitingApproval, StatusCompleted, StatusCancelled}
}

// Valid reports whether s is one of the five canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusAwaitingApproval, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the order is still being worked.
func (s Status) IsOpen() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusAwaitingApproval:
		return true
	}
	return false
}

// IsClosed reports whether the order reached a final state.
func (s Status) IsClosed() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// statusAliases maps spellings observed in exported legacy data to the
// canonical statuses. The original records drifted between Portuguese and
// English labels; anything not listed here is a migration error, not a
// silent alias.
var statusAliases = map[string]Status{
	"pendente":              StatusPending,
	"aberta":                StatusPending,
	"open":                  StatusPending,
	"em_andamento":          StatusInProgress,
	"em andamento":          StatusInProgress,
	"aguardando_aprovacao":  StatusAwaitingApproval,
	"aguardando aprovacao":  StatusAwaitingApproval,
	"aguardando aprovação":  StatusAwaitingApproval,
	"concluida":             StatusCompleted,
	"concluída":             StatusCompleted,
	"concluido":             StatusCompleted,
	"concluído":             StatusCompleted,
	"cancelada":             StatusCancelled,
	"cancelado":             StatusCancelled,
}

// ParseStatus normalizes a raw status string to the canonical enum.
// Canonical values pass through; known legacy aliases are rewritten;
// anything else is rejected.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if s := Status(normalized); s.Valid() {
		return s, nil
	}
	if s, ok := statusAliases[normalized]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown work order status %q", raw)
}
