package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/arborview-health/practice-manager/backend/internal/calendar"
	"github.com/arborview-health/practice-manager/backend/internal/config"
	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/extsync"
	"github.com/arborview-health/practice-manager/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	syncer      *extsync.Syncer
	builder     *calendar.Builder

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		syncer:      extsync.NewSyncer(cfg, repo),
		builder: &calendar.Builder{
			Expander: calendar.Expander{MaxOccurrences: cfg.Calendar.MaxOccurrencesPerSeries},
			Cache:    newRedisExpansionCache(rdb, cfg),
		},

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/working-hours", func(r chi.Router) {
				r.Get("/", h.GetMyWorkingHours)
				r.Patch("/", h.UpdateMyWorkingHours)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RolePracticeAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RolePracticeAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RolePracticeAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RolePracticeAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/staff/{id}", func(r chi.Router) {
			r.Use(h.staffInfo)
			r.Get("/calendar", h.GetStaffCalendar)
			r.Route("/availability-template", func(r chi.Router) {
				r.Get("/", h.GetAvailabilityTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleClinician, domain.RolePracticeAdmin})).Put("/", h.ReplaceAvailabilityTemplate)
			})
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Post("/", h.CreateAppointment)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.appointment)
				r.Get("/", h.GetAppointment)
				r.Patch("/", h.UpdateAppointment)
				r.Delete("/", h.DeleteAppointment)
			})
		})

		r.Route("/series", func(r chi.Router) {
			r.Post("/", h.CreateSeries)
			r.Get("/", h.GetSeriesForStaff)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.series)
				r.Get("/", h.GetSeries)
				r.Get("/exceptions", h.GetSeriesExceptions)
				r.Patch("/", h.UpdateSeries)
				r.Delete("/", h.DeleteSeries)
				r.Route("/occurrences", func(r chi.Router) {
					r.Post("/cancel", h.CancelOccurrence)
					r.Post("/reschedule", h.RescheduleOccurrence)
				})
			})
		})

		r.Route("/manual-blocks", func(r chi.Router) {
			r.Post("/", h.CreateManualBlock)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.manualBlock)
				r.Patch("/", h.UpdateManualBlock)
				r.Delete("/", h.DeleteManualBlock)
			})
		})

		r.Route("/external-calendars", func(r chi.Router) {
			r.Post("/", h.CreateExternalCalendar)
			r.Get("/", h.GetAllExternalCalendars)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.externalCalendar)
				r.Delete("/", h.DeleteExternalCalendar)
				r.Post("/sync", h.SyncExternalCalendar)
			})
		})
	})
}
