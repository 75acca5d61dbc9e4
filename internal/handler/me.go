package handler

import (
	"net/http"

	"github.com/campus-dev/job-board/backend/internal/domain"
)

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "current user", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), myInfo, req.OldPassword, req.NewPassword); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "password updated", nil)
}
