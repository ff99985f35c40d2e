package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/micropay/micropay-api/internal/api/shared"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/service"
)

// NotificationHandler handles the notification dispatch and listing
// endpoints.
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler with the given
// dependencies.
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Dispatch handles POST /notifications.
func (h *NotificationHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req NotificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	n, err := h.notifications.Dispatch(r.Context(), service.DispatchRequest{
		RecipientEmail: req.RecipientEmail,
		Type:           domain.NotificationType(req.Type),
		Subject:        req.Subject,
		Message:        req.Message,
		UserID:         req.UserID,
		ReferenceID:    req.ReferenceID,
	})
	h.respondDispatch(w, r, n, err)
}

// DispatchRegistration handles POST /notifications/registration.
func (h *NotificationHandler) DispatchRegistration(w http.ResponseWriter, r *http.Request) {
	var req RegistrationNotificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	n, err := h.notifications.DispatchRegistration(r.Context(), req.Email, req.UserID)
	h.respondDispatch(w, r, n, err)
}

// DispatchPayment handles POST /notifications/payment.
func (h *NotificationHandler) DispatchPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentNotificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	n, err := h.notifications.DispatchPayment(r.Context(), req.Email, req.Amount, req.ReferenceID)
	h.respondDispatch(w, r, n, err)
}

// DispatchTransaction handles POST /notifications/transaction.
func (h *NotificationHandler) DispatchTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionNotificationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	n, err := h.notifications.DispatchTransaction(
		r.Context(), req.Email, req.Amount, req.Counterparty, req.Outgoing, req.ReferenceID)
	h.respondDispatch(w, r, n, err)
}

// respondDispatch writes the outcome of a dispatch. A failed dispatch still
// produced a persisted record, so the response carries it alongside the
// error status.
func (h *NotificationHandler) respondDispatch(
	w http.ResponseWriter,
	r *http.Request,
	n *domain.Notification,
	err error,
) {
	if err != nil {
		if n != nil && n.Status == domain.NotificationStatusFailed {
			shared.RespondWithJSON(w, r, http.StatusBadGateway, n)
			return
		}
		respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, n)
}

// List handles GET /notifications with optional status and limit filters.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.NotificationStatus(r.URL.Query().Get("status"))

	list, err := h.notifications.List(r.Context(), status, parseLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// ListForRecipient handles GET /notifications/user/{email}.
func (h *NotificationHandler) ListForRecipient(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	list, err := h.notifications.ListForRecipient(r.Context(), email, parseLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, list)
}
