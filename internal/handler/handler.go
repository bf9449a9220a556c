package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/greencart-dev/greencart/backend/internal/config"
	"github.com/greencart-dev/greencart/backend/internal/domain"
	"github.com/greencart-dev/greencart/backend/internal/metrics"
	"github.com/greencart-dev/greencart/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	metrics     *metrics.Metrics

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client, m *metrics.Metrics) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
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
		metrics:     m,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.instrument)

	h.Mux.Method("GET", "/metrics", h.metrics.Handler())

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a valid session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/", h.GetAllUsers)
		})

		r.Route("/drivers", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateDriver)
			r.Get("/", h.GetAllDrivers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.driverInfo)
				r.Get("/", h.GetDriver)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/", h.UpdateDriver)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteDriver)
			})
		})

		r.Route("/routes", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateRoute)
			r.Get("/", h.GetAllRoutes)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.routeInfo)
				r.Get("/", h.GetRoute)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/", h.UpdateRoute)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteRoute)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateOrder)
			r.Get("/", h.GetAllOrders)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.orderInfo)
				r.Get("/", h.GetOrder)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Put("/", h.UpdateOrder)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteOrder)
			})
		})

		r.Route("/simulations", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.RunSimulation)
			r.Get("/", h.GetSimulationHistory)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.simulationResult)
				r.Get("/", h.GetSimulationResult)
				r.Get("/export", h.ExportSimulationResult)
			})
		})
	})
}
