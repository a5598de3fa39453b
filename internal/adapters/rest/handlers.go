package rest

import (
	"errors"
	"net/http"

	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"
	"subscription-service/internal/core/port/usecases_port"
)

// Тексты ошибок API. Все отказы отдаются со статусом 400.
const (
	msgInvalidInput       = "invalid link or email"
	msgAlreadySubscribed  = "already subscribed"
	msgSubscribeFailed    = "failed to subscribe"
	msgNoSubscriptions    = "no subscriptions"
	msgRetrieveFailed     = "failed to retrieve"
	msgRetrieveAllFailed  = "failed to retrieve subscriptions"
	msgSubscriptionAbsent = "subscription does not exist"
	msgDeleteFailed       = "failed to delete"
)

// SubscriptionHandler - обработчики /subscriptions
type SubscriptionHandler struct {
	subscribeUC usecases_port.SubscribeUseCasePort
	getUC       usecases_port.GetSubscriptionsUseCasePort
	getAllUC    usecases_port.GetAllSubscriptionsUseCasePort
	deleteUC    usecases_port.DeleteSubscriptionUseCasePort
}

// NewSubscriptionHandler - конструктор.
func NewSubscriptionHandler(
	subscribeUC usecases_port.SubscribeUseCasePort,
	getUC usecases_port.GetSubscriptionsUseCasePort,
	getAllUC usecases_port.GetAllSubscriptionsUseCasePort,
	deleteUC usecases_port.DeleteSubscriptionUseCasePort,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscribeUC: subscribeUC,
		getUC:       getUC,
		getAllUC:    getAllUC,
		deleteUC:    deleteUC,
	}
}

// Subscribe обрабатывает POST /subscriptions/subscribe?link=&email=
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Subscribe"})

	link := r.URL.Query().Get("link")
	email := r.URL.Query().Get("email")

	err := h.subscribeUC.Execute(r.Context(), link, email)
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "subscription created"})
	case errors.Is(err, domain.ErrValidation):
		WriteJSONError(w, http.StatusBadRequest, msgInvalidInput)
	case errors.Is(err, domain.ErrDuplicate):
		WriteJSONError(w, http.StatusBadRequest, msgAlreadySubscribed)
	default:
		logger.Error("Subscribe use case failed", err, nil)
		WriteJSONError(w, http.StatusBadRequest, msgSubscribeFailed)
	}
}

// GetSubscriptions обрабатывает GET /subscriptions/getsubscribes?email=
func (h *SubscriptionHandler) GetSubscriptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSubscriptions"})

	items, err := h.getUC.Execute(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusBadRequest, msgNoSubscriptions)
			return
		}
		logger.Error("Get subscriptions use case failed", err, nil)
		WriteJSONError(w, http.StatusBadRequest, msgRetrieveFailed)
		return
	}

	RespondWithJSON(w, http.StatusOK, toSubscriptionPriceResponses(items))
}

// GetAllSubscriptions обрабатывает GET /subscriptions/getallsubscribes
func (h *SubscriptionHandler) GetAllSubscriptions(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetAllSubscriptions"})

	items, err := h.getAllUC.Execute(r.Context())
	if err != nil {
		logger.Error("Get all subscriptions use case failed", err, nil)
		WriteJSONError(w, http.StatusBadRequest, msgRetrieveAllFailed)
		return
	}

	RespondWithJSON(w, http.StatusOK, toSubscriptionResponses(items))
}

// DeleteSubscription обрабатывает DELETE /subscriptions/delete?link=&email=
func (h *SubscriptionHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteSubscription"})

	err := h.deleteUC.Execute(r.Context(), r.URL.Query().Get("link"), r.URL.Query().Get("email"))
	switch {
	case err == nil:
		RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "subscription deleted"})
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusBadRequest, msgSubscriptionAbsent)
	default:
		logger.Error("Delete subscription use case failed", err, nil)
		WriteJSONError(w, http.StatusBadRequest, msgDeleteFailed)
	}
}

// Health обрабатывает GET /healthz
func (h *SubscriptionHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
