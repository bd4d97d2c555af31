// Package domain holds DTOs for people http and service contracts
package domain

// HistoryItem is one ministry term in a person's career
// IsPresident reports whether the person held the presidency at any
// point during the term
type HistoryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Term        string `json:"term" example:"2022 Jul - Present"`
	IsPresident bool   `json:"is_president"`
}

// History is a person's reconstructed ministry and presidency record.
// Ongoing terms sort first, then by most recently ended
type History struct {
	MinistryHistory    []HistoryItem `json:"ministry_history"`
	MinistriesWorkedAt int           `json:"ministries_worked_at"`
	WorkedAsPresident  int           `json:"worked_as_president"`
}
