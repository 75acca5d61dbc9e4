package handler

import (
	"net"
	"net/http"

	"github.com/campus-dev/job-board/backend/internal/service"
)

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(w, r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.limiter.Allow(r.Context(), signInKey(req.Username, r)) {
		h.errorResponse(w, r, http.StatusTooManyRequests, "too many sign-in attempts, try again later")
		return
	}

	res, err := h.authService.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.successResponse(w, r, "sign-in successful", res)
}

func signInKey(username string, r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "sign_in:" + username + ":" + ip
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username" validate:"required,max=50"`
		Password  string `json:"password" validate:"required,min=6"`
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

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		RealName:  req.RealName,
		IsTeacher: req.IsTeacher,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.createdResponse(w, r, "user registered", map[string]int64{"id": user.ID})
}
