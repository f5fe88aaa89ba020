package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(NewStructuredLogger(logger))
	router.Post("/swipes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{}`))
	})

	req, _ := http.NewRequest(http.MethodPost, "/swipes", bytes.NewBufferString(`{"raw":"FFFF"}`))
	req.Header.Set("X-Request-Id", "swipe-req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	line := buf.String()
	require.Contains(t, line, "msg=request")
	require.Contains(t, line, "method=POST")
	require.Contains(t, line, "path=/swipes")
	require.Contains(t, line, "status=422")
	require.Contains(t, line, "bytes=2")
	require.Contains(t, line, "request_id=swipe-req-1")
	require.NotContains(t, line, "FFFF")
}
