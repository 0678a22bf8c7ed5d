package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/invest-keeper/internal/logger"
)

// loggedRequest creates a test request carrying a buffer-backed logger in its
// context, the way withTraceID attaches one in the real middleware chain.
func loggedRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf).With().Timestamp().Logger()
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	tests := []struct {
		name             string
		method           string
		path             string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
	}{
		{
			name:            "GET categories 200",
			method:          http.MethodGet,
			path:            "/api/categories",
			handlerStatus:   http.StatusOK,
			handlerResponse: "[]",
			checkLogContains: []string{
				`"method":"GET"`,
				`"uri":"/api/categories"`,
				`"status":200`,
				`"duration":`,
				`"size":2`,
			},
		},
		{
			name:            "POST signup 201",
			method:          http.MethodPost,
			path:            "/api/auth/signup",
			handlerStatus:   http.StatusCreated,
			handlerResponse: "created",
			checkLogContains: []string{
				`"method":"POST"`,
				`"uri":"/api/auth/signup"`,
				`"status":201`,
			},
		},
		{
			name:            "DELETE 404",
			method:          http.MethodDelete,
			path:            "/api/categories/no-such-slug",
			handlerStatus:   http.StatusNotFound,
			handlerResponse: "not found",
			checkLogContains: []string{
				`"status":404`,
				`"uri":"/api/categories/no-such-slug"`,
			},
		},
		{
			name:            "query parameters are preserved in uri",
			method:          http.MethodDelete,
			path:            "/api/categories/stocks/entries?entryIndex=2",
			handlerStatus:   http.StatusOK,
			handlerResponse: "ok",
			checkLogContains: []string{
				`"uri":"/api/categories/stocks/entries?entryIndex=2"`,
				`"status":200`,
			},
		},
		{
			name:          "500 is logged too",
			method:        http.MethodGet,
			path:          "/api/categories/export",
			handlerStatus: http.StatusInternalServerError,
			checkLogContains: []string{
				`"status":500`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf bytes.Buffer

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerResponse != "" {
					_, _ = w.Write([]byte(tt.handlerResponse))
				}
			})

			middleware := h.withLogging(next)

			req := loggedRequest(tt.method, tt.path, &logBuf)
			rr := httptest.NewRecorder()
			middleware.ServeHTTP(rr, req)

			assert.Equal(t, tt.handlerStatus, rr.Code)

			logOutput := logBuf.String()
			assert.NotEmpty(t, logOutput, "log should not be empty")

			for _, expected := range tt.checkLogContains {
				assert.Contains(t, logOutput, expected, "log should contain: %s", expected)
			}
		})
	}
}

func TestWithLogging_ResponseSize(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
	})

	middleware := h.withLogging(next)

	req := loggedRequest(http.MethodGet, "/api/categories/export", &logBuf)
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, `"size":1024`)
}

func TestWithLogging_ImplicitStatusLogsAs200(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})

	middleware := h.withLogging(next)

	req := loggedRequest(http.MethodGet, "/test", &logBuf)
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, logBuf.String(), `"status":200`)
}

func TestWithLogging_DurationObserved(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	delay := 50 * time.Millisecond
	var logBuf bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.withLogging(next)

	req := loggedRequest(http.MethodGet, "/slow", &logBuf)
	rr := httptest.NewRecorder()

	start := time.Now()
	middleware.ServeHTTP(rr, req)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, delay)
	assert.Contains(t, logBuf.String(), `"duration":`)
}

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	})
	middleware := h.withLogging(next)

	var logBuf bytes.Buffer
	req := loggedRequest(http.MethodGet, "/panic", &logBuf)
	rr := httptest.NewRecorder()

	// Recovery belongs to chi's Recoverer, not to the logging layer.
	assert.Panics(t, func() {
		middleware.ServeHTTP(rr, req)
	})
}

func TestWithLogging_NopLoggerContext(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := h.withLogging(next)

	nop := logger.Nop()
	req := httptest.NewRequest(http.MethodGet, "/nop", nil)
	req = req.WithContext(nop.Logger.WithContext(req.Context()))

	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		middleware.ServeHTTP(rr, req)
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}
