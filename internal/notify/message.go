package notify

import (
	"github.com/campus-dev/job-board/backend/internal/domain"
)

const (
	TypeWelcome                  = "welcome"
	TypeApplicationStatusChanged = "application_status_changed"
	TypePostingApprovalChanged   = "posting_approval_changed"
)

// Message is the JSON document placed on the mail queue. Data is rendered into
// the template chosen by Type.
type Message struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeData struct {
	Username string `json:"username"`
}

type ApplicationStatusData struct {
	Username   string                   `json:"username"`
	JobTitle   string                   `json:"jobTitle"`
	Status     domain.ApplicationStatus `json:"status"`
	Feedback   string                   `json:"feedback"`
	IsComplete bool                     `json:"isComplete"`
}

type PostingApprovalData struct {
	Username string `json:"username"`
	JobTitle string `json:"jobTitle"`
	Approved bool   `json:"approved"`
}
