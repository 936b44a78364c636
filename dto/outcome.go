package dto

type OutcomeTag string

const (
	TagResolved  OutcomeTag = "resolved"
	TagReflected OutcomeTag = "reflected"
	TagBlocked   OutcomeTag = "blocked"
)

// Outcome is what the front-end renders after an operation. PublicMessage goes
// to everyone, PrivateMessage only to the acting player.
type Outcome struct {
	PublicMessage  string     `json:"publicMessage,omitempty"`
	PrivateMessage string     `json:"privateMessage,omitempty"`
	Success        bool       `json:"success"`
	Error          string     `json:"error,omitempty"`
	Tag            OutcomeTag `json:"tag,omitempty"`
}
