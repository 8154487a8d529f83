package report

import (
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/snacktrackhq/snacktrack/internal/auth"
	"github.com/snacktrackhq/snacktrack/internal/order"
)

type Handler struct {
	repo   order.OrderRepo
	authMW *auth.Middleware
	loc    *time.Location
	config *apt.Config
	logger apt.Logger
	tlm    *telemetry.HTTP
}

func NewHandler(repo order.OrderRepo, authMW *auth.Middleware, loc *time.Location, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		repo:   repo,
		authMW: authMW,
		loc:    loc,
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		if h.authMW != nil {
			r.Use(h.authMW.RequireAuth)
		}
		r.Use(auth.RequireRole(auth.RoleOwner))

		r.Get("/summary", h.GetDashboard)
	})
}

// GetDashboard serves the full sales snapshot. Orders are read once so
// every figure in the response agrees with every other.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetDashboard")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	orders, err := h.repo.List(ctx)
	if err != nil {
		log.Error("error loading orders for dashboard", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not build dashboard")
		return
	}

	dashboard := BuildDashboard(orders, time.Now(), h.loc)

	apt.RespondSuccess(w, dashboard)
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With(
		"request_id", apt.RequestIDFrom(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}
