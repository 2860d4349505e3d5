package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AUlyanoff/web-api-server/internal/service"

	"go.uber.org/zap"
)

// APIHandler — read-only json api поверх таблицы пользователей
type APIHandler struct {
	Users  *service.UserService
	Logger *zap.SugaredLogger
}

// NewAPIHandler создаёт хендлер api
func NewAPIHandler(users *service.UserService, logger *zap.SugaredLogger) *APIHandler {
	return &APIHandler{Users: users, Logger: logger}
}

// dataResponse — единый конверт ответов api
type dataResponse struct {
	Data any `json:"data"`
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dataResponse{Data: payload})
	h.Logger.Infow("api запрос выполнен", "uri", r.RequestURI, "status", http.StatusOK)
}

// UsersCount считает количество пользователей в базе
func (h *APIHandler) UsersCount(w http.ResponseWriter, r *http.Request) {
	h.Logger.Debugw("api запрос начат", "uri", r.RequestURI)

	n, err := h.Users.CountUsers(r.Context())
	if err != nil {
		h.Logger.Errorw("api: ошибка подсчёта пользователей", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, r, n)
}

// UsersList возвращает список зарегистрированных пользователей (name+email)
func (h *APIHandler) UsersList(w http.ResponseWriter, r *http.Request) {
	h.Logger.Debugw("api запрос начат", "uri", r.RequestURI)

	list, err := h.Users.ListUsers(r.Context())
	if err != nil {
		h.Logger.Errorw("api: ошибка чтения списка пользователей", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, r, list)
}
