package menu

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/snacktrackhq/snacktrack/internal/auth"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	repo    SnackRepo
	authMW  *auth.Middleware
	config  *apt.Config
	logger  apt.Logger
	tlm     *telemetry.HTTP
}

func NewHandler(repo SnackRepo, authMW *auth.Middleware, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		repo:   repo,
		authMW: authMW,
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/menu/snacks", func(r chi.Router) {
		if h.authMW != nil {
			r.Use(h.authMW.RequireAuth)
		}

		r.With(auth.RequireRole(auth.RoleOwner, auth.RoleStaff)).Get("/", h.ListSnacks)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleOwner))
			r.Post("/", h.CreateSnack)
			r.Put("/{id}", h.UpdateSnack)
			r.Delete("/{id}", h.DeleteSnack)
		})
	})
}

func (h *Handler) ListSnacks(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListSnacks")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	snacks, err := h.repo.List(ctx)
	if err != nil {
		log.Error("error retrieving snacks", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve snacks")
		return
	}

	apt.RespondCollection(w, snacks, "snack")
}

func (h *Handler) CreateSnack(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateSnack")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodeSnackPayload(w, r, log)
	if !ok {
		return
	}

	if errs := ValidateSnack(req.Name, req.Price); len(errs) > 0 {
		log.Debug("snack validation failed", "errors", errs)
		apt.RespondError(w, http.StatusBadRequest, errs[0].Message)
		return
	}

	name := strings.TrimSpace(req.Name)
	existing, err := h.repo.GetByName(ctx, name)
	if err != nil {
		log.Error("cannot check snack name", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create snack")
		return
	}
	if existing != nil {
		apt.RespondError(w, http.StatusConflict, "A snack with this name already exists")
		return
	}

	snack := NewSnack()
	snack.Name = name
	snack.Price = req.Price
	snack.BeforeCreate()

	if err := h.repo.Create(ctx, snack); err != nil {
		log.Error("cannot create snack", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create snack")
		return
	}

	links := apt.RESTfulLinksFor(snack)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, snack, links...)
}

func (h *Handler) UpdateSnack(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateSnack")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	snack, err := h.repo.Get(ctx, id)
	if err != nil || snack == nil {
		log.Debug("snack not found", "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Snack not found")
		return
	}

	req, ok := h.decodeSnackPayload(w, r, log)
	if !ok {
		return
	}

	if errs := ValidateSnack(req.Name, req.Price); len(errs) > 0 {
		log.Debug("snack validation failed", "errors", errs)
		apt.RespondError(w, http.StatusBadRequest, errs[0].Message)
		return
	}

	snack.Name = strings.TrimSpace(req.Name)
	snack.Price = req.Price
	if req.Active != nil {
		snack.Active = *req.Active
	}
	snack.BeforeUpdate()

	if err := h.repo.Save(ctx, snack); err != nil {
		log.Error("cannot update snack", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not update snack")
		return
	}

	links := apt.RESTfulLinksFor(snack)
	apt.RespondSuccess(w, snack, links...)
}

func (h *Handler) DeleteSnack(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteSnack")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if err == ErrSnackNotFound {
			apt.RespondError(w, http.StatusNotFound, "Snack not found")
			return
		}
		log.Error("cannot delete snack", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete snack")
		return
	}

	apt.RespondSuccess(w, DeleteConfirmation{Message: "Snack deleted"})
}

type DeleteConfirmation struct {
	Message string `json:"message"`
}

// Helper methods

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}

type SnackRequest struct {
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Active *bool  `json:"active,omitempty"`
}

func (h *Handler) decodeSnackPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (SnackRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return SnackRequest{}, false
	}

	var req SnackRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return SnackRequest{}, false
	}

	return req, true
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With(
		"request_id", apt.RequestIDFrom(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}
