package domain

import "time"

type JobPosting struct {
	ID          int64     `json:"job_id"`
	OwnerID     int64     `json:"user_id"`
	Title       string    `json:"job_title"`
	Description string    `json:"job_description"`
	SignupForm  string    `json:"job_signup_form"`
	JobTypeTag  string    `json:"job_type_tag"`
	IndustryTag string    `json:"industry_tag"`
	IsApproved  bool      `json:"isApproved"`
	CreatedAt   time.Time `json:"createdAt"`
}
