package http

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/browse"
)

// BrowseHandler обрабатывает HTTP-запросы сессии просмотра каталога:
// поиск, постраничный показ, дозагрузка.
type BrowseHandler struct {
	session *browse.Session
	logger  *log.Entry
}

// NewBrowseHandler создаёт handler сессии просмотра.
func NewBrowseHandler(session *browse.Session, logger *log.Entry) *BrowseHandler {
	return &BrowseHandler{
		session: session,
		logger:  logger,
	}
}

// setQueryRequest — тело запроса на смену поискового запроса.
type setQueryRequest struct {
	Query string `json:"query"`
}

// GetPage обрабатывает GET /browse.
func (h *BrowseHandler) GetPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Page())
}

// Refresh обрабатывает POST /browse/refresh: перечитывает каталог.
// При ошибке предыдущие данные сессии сохраняются.
func (h *BrowseHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Refresh(r.Context()); err != nil {
		h.logger.WithError(err).Warn("browse refresh failed")
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Page())
}

// SetQuery обрабатывает PUT /browse/query. Применение запроса
// дебаунсится, поэтому ответ отражает состояние до применения.
func (h *BrowseHandler) SetQuery(w http.ResponseWriter, r *http.Request) {
	var req setQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	h.session.SetQuery(req.Query)
	writeJSON(w, http.StatusAccepted, h.session.Page())
}

// LoadMore обрабатывает POST /browse/more: расширяет окно показа.
func (h *BrowseHandler) LoadMore(w http.ResponseWriter, _ *http.Request) {
	h.session.LoadMore()
	writeJSON(w, http.StatusOK, h.session.Page())
}
