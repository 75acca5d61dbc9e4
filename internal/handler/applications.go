package handler

import (
	"net/http"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/service"
)

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		JobID          int64  `json:"job_id" validate:"required,gt=0"`
		WhyInterested  string `json:"why_interested" validate:"required"`
		RelevantSkills string `json:"relevant_skills"`
		HopeToGain     string `json:"hope_to_gain"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	a, err := h.applicationService.Apply(r.Context(), myInfo, service.ApplyInput{
		JobID:          req.JobID,
		WhyInterested:  req.WhyInterested,
		RelevantSkills: req.RelevantSkills,
		HopeToGain:     req.HopeToGain,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.createdResponse(w, r, "application submitted", map[string]int64{"applicationId": a.ID})
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	a, err := h.applicationService.Get(r.Context(), myInfo, pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "application", a)
}

func (h *Handler) GetJobApplications(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	apps, err := h.applicationService.ListByJob(r.Context(), myInfo, pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "applications for job posting", apps)
}

func (h *Handler) GetUserApplications(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	apps, err := h.applicationService.ListByUser(r.Context(), myInfo, pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "applications for user", apps)
}

func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	if err := h.applicationService.Delete(r.Context(), myInfo, pathID(r)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "application deleted", nil)
}

// UpdateApplicationStatus has no validate tags: the application is looked up before
// the status value is judged, so an unknown id is 404 even with a bad status.
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req domain.StatusUpdate
	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.applicationService.UpdateStatus(r.Context(), myInfo, pathID(r), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "application status updated", updated)
}
