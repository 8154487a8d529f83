package order

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	aptevents "github.com/appetiteclub/apt/events"
	"github.com/appetiteclub/apt/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/snacktrackhq/snacktrack/internal/auth"
	"github.com/snacktrackhq/snacktrack/internal/events"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	orderRepo OrderRepo
	userRepo  auth.UserRepo
	numberer  *DailyNumberer
	catalog   PriceCatalog
	publisher aptevents.Publisher
	authMW    *auth.Middleware
	loc       *time.Location
	config    *apt.Config
	logger    apt.Logger
	tlm       *telemetry.HTTP
}

type HandlerDeps struct {
	OrderRepo OrderRepo
	UserRepo  auth.UserRepo
	Numberer  *DailyNumberer
	Catalog   PriceCatalog
	Publisher aptevents.Publisher
	AuthMW    *auth.Middleware
	Location  *time.Location
}

func NewHandler(hd HandlerDeps, config *apt.Config, logger apt.Logger) *Handler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	loc := hd.Location
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		orderRepo: hd.OrderRepo,
		userRepo:  hd.UserRepo,
		numberer:  hd.Numberer,
		catalog:   hd.Catalog,
		publisher: hd.Publisher,
		authMW:    hd.AuthMW,
		loc:       loc,
		config:    config,
		logger:    logger,
		tlm:       telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		if h.authMW != nil {
			r.Use(h.authMW.RequireAuth)
		}
		r.Use(auth.RequireRole(auth.RoleOwner, auth.RoleStaff))

		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}/pay", h.MarkOrderPaid)
		r.Patch("/{id}/unpay", h.UndoPayment)
		r.Delete("/{id}", h.DeleteOrder)
	})
}

// Order Handlers

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	identity, ok := auth.IdentityFrom(ctx)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	req, ok := h.decodeOrderCreatePayload(w, r, log)
	if !ok {
		return
	}

	if errs := ValidateCreateOrder(req); len(errs) > 0 {
		log.Debug("order validation failed", "errors", errs)
		apt.RespondError(w, http.StatusBadRequest, errs[0].Message)
		return
	}

	// Totals are recomputed from the catalog; client-side arithmetic is
	// checked, never trusted.
	if h.catalog != nil {
		canonical, err := RecomputeTotal(ctx, h.catalog, req.Items)
		if err != nil {
			if errors.Is(err, ErrUnknownSnack) || errors.Is(err, ErrPriceMismatch) {
				log.Debug("order rejected by catalog check", "error", err)
				apt.RespondError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Error("catalog lookup failed", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not verify order prices")
			return
		}
		if canonical != req.TotalAmount {
			log.Debug("order total mismatch", "sent", req.TotalAmount, "canonical", canonical)
			apt.RespondError(w, http.StatusBadRequest, "total_amount does not match catalog prices")
			return
		}
	}

	order := NewOrder()
	order.Items = req.Items
	order.TotalAmount = req.TotalAmount
	order.CreatedBy = identity.ID
	order.BeforeCreate()

	if h.numberer != nil {
		number, err := h.numberer.Next(ctx, order.CreatedAt)
		if err != nil {
			// The daily number is cosmetic. Store the order without one
			// rather than turning a counter hiccup into a lost sale.
			log.Error("cannot assign daily number", "error", err)
		} else {
			order.DailyNumber = number
		}
	}

	if err := h.orderRepo.Create(ctx, order); err != nil {
		log.Error("cannot create order", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not create order")
		return
	}

	h.publishOrderEvent(ctx, events.EventOrderCreated, order)

	links := apt.RESTfulLinksFor(order)
	w.WriteHeader(http.StatusCreated)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	orders, ok := h.fetchFilteredOrders(w, r, log)
	if !ok {
		return
	}

	views, err := h.resolveCreators(ctx, orders)
	if err != nil {
		log.Error("error resolving order creators", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	apt.RespondCollection(w, views, "order")
}

func (h *Handler) fetchFilteredOrders(w http.ResponseWriter, r *http.Request, log apt.Logger) ([]*Order, bool) {
	ctx := r.Context()
	status := r.URL.Query().Get("status")
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	var orders []*Order
	var err error

	switch {
	case status != "":
		switch status {
		case "paid":
			orders, err = h.orderRepo.ListByPayment(ctx, true)
		case "pending":
			orders, err = h.orderRepo.ListByPayment(ctx, false)
		default:
			log.Debug("invalid status parameter", "status", status)
			apt.RespondError(w, http.StatusBadRequest, "Invalid status parameter")
			return nil, false
		}
	case fromStr != "" || toStr != "":
		from, to, parseErr := h.parseDateRange(fromStr, toStr)
		if parseErr != nil {
			log.Debug("invalid date range", "from", fromStr, "to", toStr)
			apt.RespondError(w, http.StatusBadRequest, "Invalid date range, expected YYYY-MM-DD")
			return nil, false
		}
		orders, err = h.orderRepo.ListRange(ctx, from, to)
	default:
		orders, err = h.orderRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving orders", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return nil, false
	}

	return orders, true
}

func (h *Handler) MarkOrderPaid(w http.ResponseWriter, r *http.Request) {
	h.setPaymentState(w, r, "Handler.MarkOrderPaid", true)
}

func (h *Handler) UndoPayment(w http.ResponseWriter, r *http.Request) {
	h.setPaymentState(w, r, "Handler.UndoPayment", false)
}

func (h *Handler) setPaymentState(w http.ResponseWriter, r *http.Request, span string, done bool) {
	w, r, finish := h.tlm.Start(w, r, span)
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	// Setting the same state twice is a no-op success, not an error.
	if order.SetPaymentState(done) {
		if err := h.orderRepo.Save(ctx, order); err != nil {
			log.Error("cannot update order payment state", "error", err, "id", id.String())
			apt.RespondError(w, http.StatusInternalServerError, "Could not update order")
			return
		}

		eventType := events.EventOrderPaid
		if !done {
			eventType = events.EventOrderUnpaid
		}
		h.publishOrderEvent(ctx, eventType, order)
	}

	links := apt.RESTfulLinksFor(order)
	apt.RespondSuccess(w, order, links...)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteOrder")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.orderRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order == nil {
		apt.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	// Paid orders are settled money; they stay.
	if order.PaymentDone {
		apt.RespondError(w, http.StatusConflict, "Cannot delete a paid order")
		return
	}

	if err := h.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			apt.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		log.Error("cannot delete order", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not delete order")
		return
	}

	h.publishOrderEvent(ctx, events.EventOrderDeleted, order)

	apt.RespondSuccess(w, DeleteConfirmation{Message: "Order deleted"})
}

type DeleteConfirmation struct {
	Message string `json:"message"`
}

// CreatorView is the only projection of the ordering identity that ever
// leaves the API. No credential material, no internal user fields.
type CreatorView struct {
	Email string    `json:"email"`
	Role  auth.Role `json:"role"`
}

// OrderView is an order with its creator resolved for list responses.
type OrderView struct {
	*Order
	Creator *CreatorView `json:"created_by_user,omitempty"`
}

func (h *Handler) resolveCreators(ctx context.Context, orders []*Order) ([]*OrderView, error) {
	views := make([]*OrderView, 0, len(orders))
	creators := make(map[uuid.UUID]*CreatorView)

	for _, o := range orders {
		view := &OrderView{Order: o}
		if o.CreatedBy != uuid.Nil {
			creator, ok := creators[o.CreatedBy]
			if !ok {
				user, err := h.userRepo.Get(ctx, o.CreatedBy)
				if err != nil {
					return nil, err
				}
				if user != nil {
					creator = &CreatorView{Email: user.Email, Role: user.Role}
				}
				creators[o.CreatedBy] = creator
			}
			view.Creator = creator
		}
		views = append(views, view)
	}

	return views, nil
}

// Helper methods

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log apt.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		apt.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "id", idStr)
		apt.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now().In(h.loc)

	if fromStr != "" {
		parsed, err := time.ParseInLocation(dayKeyFormat, fromStr, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.ParseInLocation(dayKeyFormat, toStr, h.loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Inclusive upper bound: end of the requested day.
		to = parsed.AddDate(0, 0, 1)
	}

	return from, to, nil
}

// Payload decoders

type OrderCreateRequest struct {
	Items       []LineItem `json:"items"`
	TotalAmount int64      `json:"total_amount"`
}

func (h *Handler) decodeOrderCreatePayload(w http.ResponseWriter, r *http.Request, log apt.Logger) (OrderCreateRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return OrderCreateRequest{}, false
	}

	var req OrderCreateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.Debug("failed to decode request body", "error", err)
		apt.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return OrderCreateRequest{}, false
	}

	return req, true
}

func (h *Handler) publishOrderEvent(ctx context.Context, eventType string, o *Order) {
	if h.publisher == nil {
		return
	}

	evt := events.OrderEvent{
		EventType:   eventType,
		OccurredAt:  time.Now().UTC(),
		OrderID:     o.ID.String(),
		DailyNumber: o.DailyNumber,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
		PaymentDone: o.PaymentDone,
		CreatedBy:   o.CreatedBy.String(),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal order event", "error", err, "event_type", eventType)
		return
	}
	if err := h.publisher.Publish(ctx, events.OrderLifecycleTopic, payload); err != nil {
		h.logger.Error("cannot publish order event", "error", err, "event_type", eventType, "order_id", o.ID.String())
	}
}

func (h *Handler) log(r *http.Request) apt.Logger {
	return h.logger.With(
		"request_id", apt.RequestIDFrom(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}
