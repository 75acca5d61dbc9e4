package handler

import (
	"net/http"

	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/campus-dev/job-board/backend/internal/service"
)

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "users", users)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.successResponse(w, r, "user", user)
}

// UpdateUser replaces the profile fields. An isAdmin field in the body is ignored.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email" validate:"required,email"`
		RealName  string `json:"realName" validate:"max=100"`
		IsTeacher bool   `json:"isTeacher"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	updated, err := h.authService.UpdateProfile(r.Context(), myInfo, user, service.ProfileInput{
		Email:     req.Email,
		RealName:  req.RealName,
		IsTeacher: req.IsTeacher,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "user updated", updated)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.authService.DeleteUser(r.Context(), user.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "user deleted", nil)
}

func (h *Handler) GetAdminStatus(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	h.successResponse(w, r, "admin status", struct {
		UserID  int64 `json:"user_id"`
		IsAdmin bool  `json:"isAdmin"`
	}{user.ID, user.IsAdmin})
}

func (h *Handler) CountUserJobPostings(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	total, err := h.postingService.CountByOwner(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "job posting count", struct {
		UserID     int64 `json:"user_id"`
		TotalPosts int64 `json:"total_posts"`
	}{user.ID, total})
}
