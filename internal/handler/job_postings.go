package handler

import (
	"net/http"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/service"
)

type jobPostingRequest struct {
	Title       string `json:"job_title" validate:"required,max=200"`
	Description string `json:"job_description" validate:"required"`
	SignupForm  string `json:"job_signup_form" validate:"omitempty,url"`
	JobTypeTag  string `json:"job_type_tag" validate:"max=50"`
	IndustryTag string `json:"industry_tag" validate:"max=50"`
}

func (req jobPostingRequest) input() service.PostingInput {
	return service.PostingInput{
		Title:       req.Title,
		Description: req.Description,
		SignupForm:  req.SignupForm,
		JobTypeTag:  req.JobTypeTag,
		IndustryTag: req.IndustryTag,
	}
}

func (h *Handler) CreateJobPosting(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req jobPostingRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	p, err := h.postingService.Create(r.Context(), myInfo, req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.createdResponse(w, r, "job posting created", map[string]int64{"jobId": p.ID})
}

func (h *Handler) GetAllJobPostings(w http.ResponseWriter, r *http.Request) {
	postings, err := h.postingService.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "job postings", postings)
}

func (h *Handler) GetApprovedJobPostings(w http.ResponseWriter, r *http.Request) {
	h.listByApproval(w, r, true)
}

func (h *Handler) GetPendingJobPostings(w http.ResponseWriter, r *http.Request) {
	h.listByApproval(w, r, false)
}

func (h *Handler) listByApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	postings, err := h.postingService.ListByApproval(r.Context(), approved)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	msg := "pending job postings"
	if approved {
		msg = "approved job postings"
	}
	h.successResponse(w, r, msg, postings)
}

func (h *Handler) GetJobPosting(w http.ResponseWriter, r *http.Request) {
	p, err := h.postingService.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "job posting", p)
}

func (h *Handler) UpdateJobPosting(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req jobPostingRequest
	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	p, err := h.postingService.Update(r.Context(), myInfo, pathID(r), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "job posting updated", p)
}

func (h *Handler) DeleteJobPosting(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if err := h.postingService.Delete(r.Context(), myInfo, pathID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "job posting deleted", nil)
}

// ToggleJobPostingApproval sets the approval flag to the boolean in the body. A
// missing or non-boolean isApproved is rejected before the posting is looked up.
func (h *Handler) ToggleJobPostingApproval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsApproved *bool `json:"isApproved" validate:"required"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	res, err := h.postingService.ToggleApproval(r.Context(), pathID(r), *req.IsApproved)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "job posting approval updated", res)
}
