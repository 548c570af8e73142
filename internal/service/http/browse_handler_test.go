package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcart/internal/browse"
)

func TestBrowseEndpoints_PagingFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	// Первая страница: окно показа меньше полного списка.
	rec := doJSON(t, router, http.MethodGet, "/browse", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page browse.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 4, page.Total)
	require.Equal(t, 3, page.Shown)
	require.True(t, page.HasMore)
	require.Len(t, page.Items, 3)

	// Дозагрузка расширяет окно до конца списка.
	rec = doJSON(t, router, http.MethodPost, "/browse/more", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 4, page.Shown)
	require.False(t, page.HasMore)
}

func TestBrowseEndpoints_SearchResetsWindow(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/browse/more", "")

	rec := doJSON(t, router, http.MethodPut, "/browse/query", `{"query":"gold"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	// Дебаунс в тестовой сборке нулевой, запрос применён сразу.
	rec = doJSON(t, router, http.MethodGet, "/browse", "")
	var page browse.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, "gold", page.Query)
	require.Equal(t, 1, page.Total)
	require.Equal(t, 1, page.Shown)
	require.False(t, page.HasMore)
}

func TestBrowseEndpoints_Refresh(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/browse/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page browse.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, 4, page.Total)
}
