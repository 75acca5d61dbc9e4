package domain

import (
	"slices"
	"time"
)

type ApplicationStatus string

const (
	StatusSubmitted   ApplicationStatus = "Submitted"
	StatusUnderReview ApplicationStatus = "UnderReview"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

type JobApplication struct {
	ID                int64             `json:"application_id"`
	JobID             int64             `json:"job_id"`
	ApplicantID       int64             `json:"user_id"`
	WhyInterested     string            `json:"why_interested"`
	RelevantSkills    string            `json:"relevant_skills"`
	HopeToGain        string            `json:"hope_to_gain"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	ReviewFeedback    *string           `json:"review_feedback"`
	IsComplete        bool              `json:"isComplete"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// StatusUpdate is written as a whole: callers re-send the current status to change
// only the feedback or the completion flag.
type StatusUpdate struct {
	ApplicationStatus ApplicationStatus `json:"application_status"`
	ReviewFeedback    *string           `json:"review_feedback"`
	IsComplete        bool              `json:"isComplete"`
}

var nextStatuses = map[ApplicationStatus][]ApplicationStatus{
	StatusSubmitted:   {StatusUnderReview, StatusAccepted, StatusRejected},
	StatusUnderReview: {StatusAccepted, StatusRejected},
	StatusAccepted:    {},
	StatusRejected:    {},
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := nextStatuses[s]
	return ok
}

// IsFinal reports whether no other status can follow s.
func (s ApplicationStatus) IsFinal() bool {
	return len(nextStatuses[s]) == 0
}

// CanTransition reports whether an application in status from may move to to.
// Staying in the same status is always allowed.
func CanTransition(from, to ApplicationStatus) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if from == to {
		return true
	}
	return slices.Contains(nextStatuses[from], to)
}
