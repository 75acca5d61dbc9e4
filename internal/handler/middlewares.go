package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/campus-dev/job-board/backend/internal/auth"
	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				fmt.Print(string(debug.Stack())) // slog would flatten the trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth validates the bearer token. A missing token is 401, a malformed or expired
// one is 403.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.bearerIdentity(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) bearerIdentity(r *http.Request) (*auth.Identity, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return nil, domain.AuthError(domain.AuthMissing, nil)
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return nil, domain.AuthError(domain.AuthMalformed, nil)
	}

	return h.tokens.Validate(strings.TrimSpace(token))
}

// me loads the caller's stored identity. A token whose subject no longer exists is
// treated as invalid.
func (h *Handler) me(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := r.Context().Value(IdentityCtxKey).(*auth.Identity)

		myInfo, err := h.authService.GetUser(r.Context(), identity.UserID)
		if err != nil {
			if domain.IsKind(err, domain.KindNotFound) {
				err = domain.AuthError(domain.AuthMalformed, err)
			}
			h.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
		if !myInfo.IsAdmin {
			h.writeError(w, r, domain.ForbiddenError("admin privileges required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) idParam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			h.writeError(w, r, domain.ValidationError("invalid id"))
			return
		}

		ctx := context.WithValue(r.Context(), IDCtx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func pathID(r *http.Request) int64 {
	return r.Context().Value(IDCtx).(int64)
}

func (h *Handler) userInfo(next http.Handler) http.Handler {
	return h.idParam(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authService.GetUser(r.Context(), pathID(r))
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserInfoCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}))
}

func (h *Handler) preventOperateInitialAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(UserInfoCtx).(*domain.User)
		if user.Username == h.config.InitialAdmin.Username {
			h.writeError(w, r, domain.ForbiddenError("the initial admin cannot be modified"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
