package handler

import (
	"github.com/campus-dev/job-board/backend/internal/auth"
	"github.com/campus-dev/job-board/backend/internal/config"
	"github.com/campus-dev/job-board/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type Handler struct {
	validate   *validator.Validate
	translator ut.Translator
	config     *config.Config

	authService        *service.AuthService
	postingService     *service.PostingService
	applicationService *service.ApplicationService
	tokens             *auth.TokenManager
	limiter            *SignInLimiter

	Mux *chi.Mux
}

// NewHandler wires the services into an HTTP handler. limiter may be nil, in which
// case sign-in is not throttled.
func NewHandler(
	cfg *config.Config,
	authService *service.AuthService,
	postingService *service.PostingService,
	applicationService *service.ApplicationService,
	tokens *auth.TokenManager,
	limiter *SignInLimiter,
) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		translator: trans,
		config:     cfg,

		authService:        authService,
		postingService:     postingService,
		applicationService: applicationService,
		tokens:             tokens,
		limiter:            limiter,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Post("/sign-in", h.SignIn)

	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.me)
		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.GetMe)
			r.Patch("/password", h.UpdateMyPassword)
		})
	})

	h.Mux.Route("/users", func(r chi.Router) {
		r.Post("/", h.Register) // registration is the only public user route

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Use(h.me)
			r.With(h.requireAdmin).Get("/", h.GetAllUsers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUser)
				r.Put("/", h.UpdateUser)
				r.With(h.requireAdmin).With(h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.Get("/admin-status", h.GetAdminStatus)
				r.Get("/job-posts/count", h.CountUserJobPostings)
			})
		})
	})

	h.Mux.Route("/job_postings", func(r chi.Router) {
		r.Get("/approved", h.GetApprovedJobPostings)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Use(h.me)
			r.Post("/", h.CreateJobPosting)
			r.Get("/", h.GetAllJobPostings)
			r.With(h.requireAdmin).Get("/pending", h.GetPendingJobPostings)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.idParam)
				r.Get("/", h.GetJobPosting)
				r.Put("/", h.UpdateJobPosting)
				r.Delete("/", h.DeleteJobPosting)
				r.With(h.requireAdmin).Put("/toggle-approval", h.ToggleJobPostingApproval)
			})
		})
	})

	h.Mux.Route("/applications", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.me)
		r.Post("/", h.CreateApplication)
		r.With(h.idParam).Get("/job/{id}", h.GetJobApplications)
		r.With(h.idParam).Get("/user/{id}", h.GetUserApplications)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.idParam)
			r.Get("/", h.GetApplication)
			r.Delete("/", h.DeleteApplication)
			r.Put("/status", h.UpdateApplicationStatus)
		})
	})
}
