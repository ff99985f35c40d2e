package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/micropay/micropay-api/internal/api"
	"github.com/micropay/micropay-api/internal/domain"
	"github.com/micropay/micropay-api/internal/mocks"
	"github.com/micropay/micropay-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sentNotification(t *testing.T) *domain.Notification {
	t.Helper()
	n, err := domain.NewNotification(
		"user@example.com", domain.NotificationTypeGeneral, "Hello", "A message")
	require.NoError(t, err)
	n.Status = domain.NotificationStatusSent
	n.EmailMessageID = "ses-1"
	return n
}

func TestNotificationHandler_Dispatch(t *testing.T) {
	t.Run("returns 201 with the dispatched record", func(t *testing.T) {
		notifications := new(mocks.NotificationService)
		n := sentNotification(t)
		notifications.On("Dispatch", mock.Anything, service.DispatchRequest{
			RecipientEmail: "user@example.com",
			Type:           domain.NotificationTypeGeneral,
			Subject:        "Hello",
			Message:        "A message",
		}).Return(n, nil)

		rec := postJSON(t, api.NewNotificationHandler(notifications).Dispatch, api.NotificationRequest{
			RecipientEmail: "user@example.com",
			Type:           "general",
			Subject:        "Hello",
			Message:        "A message",
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var got domain.Notification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.NotificationStatusSent, got.Status)
	})

	t.Run("unknown type rejected before the service", func(t *testing.T) {
		notifications := new(mocks.NotificationService)

		rec := postJSON(t, api.NewNotificationHandler(notifications).Dispatch, api.NotificationRequest{
			RecipientEmail: "user@example.com",
			Type:           "carrier-pigeon",
			Subject:        "Hello",
			Message:        "A message",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		notifications.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("total delivery failure returns 502 with the failed record", func(t *testing.T) {
		notifications := new(mocks.NotificationService)
		n := sentNotification(t)
		n.Status = domain.NotificationStatusFailed
		n.EmailMessageID = ""
		notifications.On("Dispatch", mock.Anything, mock.Anything).
			Return(n, domain.ErrInternal)

		rec := postJSON(t, api.NewNotificationHandler(notifications).Dispatch, api.NotificationRequest{
			RecipientEmail: "user@example.com",
			Type:           "general",
			Subject:        "Hello",
			Message:        "A message",
		})

		require.Equal(t, http.StatusBadGateway, rec.Code)
		var got domain.Notification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, domain.NotificationStatusFailed, got.Status)
	})
}

func TestNotificationHandler_TypedDispatches(t *testing.T) {
	t.Run("registration", func(t *testing.T) {
		notifications := new(mocks.NotificationService)
		notifications.On("DispatchRegistration", mock.Anything, "user@example.com", "user-1").
			Return(sentNotification(t), nil)

		rec := postJSON(t, api.NewNotificationHandler(notifications).DispatchRegistration,
			api.RegistrationNotificationRequest{Email: "user@example.com", UserID: "user-1"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		notifications.AssertExpectations(t)
	})

	t.Run("payment", func(t *testing.T) {
		notifications := new(mocks.NotificationService)
		notifications.On("DispatchPayment", mock.Anything, "user@example.com", 42.5, "pay-1").
			Return(sentNotification(t), nil)

		rec := postJSON(t, api.NewNotificationHandler(notifications).DispatchPayment,
			api.PaymentNotificationRequest{Email: "user@example.com", Amount: 42.5, ReferenceID: "pay-1"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		notifications.AssertExpectations(t)
	})

	t.Run("transaction", func(t *testing.T) {
		notifications := new(mocks.NotificationService)
		notifications.On("DispatchTransaction",
			mock.Anything, "a@x.com", 10.0, "b@x.com", true, "txn-1").
			Return(sentNotification(t), nil)

		rec := postJSON(t, api.NewNotificationHandler(notifications).DispatchTransaction,
			api.TransactionNotificationRequest{
				Email:        "a@x.com",
				Amount:       10,
				Counterparty: "b@x.com",
				Outgoing:     true,
				ReferenceID:  "txn-1",
			})

		assert.Equal(t, http.StatusCreated, rec.Code)
		notifications.AssertExpectations(t)
	})
}

func TestNotificationHandler_Listing(t *testing.T) {
	t.Run("admin listing forwards status filter", func(t *testing.T) {
		notifications := new(mocks.NotificationService)
		notifications.On("List", mock.Anything, domain.NotificationStatusSent, 0).
			Return([]*domain.Notification{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/notifications?status=sent", nil)
		rec := httptest.NewRecorder()
		api.NewNotificationHandler(notifications).List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		notifications.AssertExpectations(t)
	})

	t.Run("per-recipient listing reads the email from the route", func(t *testing.T) {
		notifications := new(mocks.NotificationService)
		notifications.On("ListForRecipient", mock.Anything, "user@example.com", 0).
			Return([]*domain.Notification{sentNotification(t)}, nil)

		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("email", "user@example.com")

		req := httptest.NewRequest(http.MethodGet, "/notifications/user/user@example.com", nil)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
		rec := httptest.NewRecorder()
		api.NewNotificationHandler(notifications).ListForRecipient(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []*domain.Notification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
	})
}
