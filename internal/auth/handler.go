package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
)

const MaxBodyBytes = 1 << 20

// SignInRequest represents the signin payload
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type Handler struct {
	repo   UserRepo
	config *apt.Config
	logger apt.Logger
	tlm    *telemetry.HTTP
}

func NewHandler(repo UserRepo, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Handler{
		repo:   repo,
		config: config,
		logger: logger,
		tlm:    telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", h.SignIn)
		// No self-signup: the owner account is seeded and staff accounts
		// are provisioned by the owner out of band.
	})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SignIn")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	req, ok := h.decodeSignInPayload(w, r, log)
	if !ok {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		log.Debug("missing credentials in signin request")
		apt.RespondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := SignIn(ctx, h.repo, h.config, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Debug("invalid credentials")
			apt.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Error("error signing in", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	apt.RespondSuccess(w, AuthResponse{User: user, Token: token})
}

func (h *Handler) decodeSignInPayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (SignInRequest, bool) {
	var req SignInRequest

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("cannot read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return req, false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		log.Debug("empty request body")
		apt.RespondError(w, http.StatusBadRequest, "Request body is empty")
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("cannot decode JSON", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Could not parse JSON")
		return req, false
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
