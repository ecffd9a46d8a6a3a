package rest

import (
	"net/http"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/port"
	"marketplace-client/internal/core/port/usecases_port"
)

// NotificationsHandler - хендлеры уведомлений (доставка опросом).
type NotificationsHandler struct {
	pollUC usecases_port.PollNotificationsUseCasePort
}

// NewNotificationsHandler - конструктор.
func NewNotificationsHandler(pollUC usecases_port.PollNotificationsUseCasePort) *NotificationsHandler {
	return &NotificationsHandler{pollUC: pollUC}
}

// List обрабатывает GET /api/v1/notifications
// Возвращает последний успешно полученный список. refresh=1 форсирует
// внеочередной опрос перед ответом.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListNotifications"})

	if r.URL.Query().Get("refresh") == "1" {
		if err := h.pollUC.Refresh(r.Context()); err != nil {
			// Ошибка опроса не фатальна: отдаем последние известные данные
			logger.Warn("On-demand poll failed, serving last known list", port.Fields{"error": err.Error()})
		}
	}

	items, lastErr := h.pollUC.Snapshot(r.Context())

	response := NotificationsListResponse{
		Data:  make([]NotificationResponse, len(items)),
		Error: lastErr,
	}
	for i, n := range items {
		response.Data[i] = NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: FormatDate(n.CreatedAt),
			Read:      n.Read,
		}
	}

	RespondWithJSON(w, http.StatusOK, response)
}
