package requestid_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeoblyv/spider/pkg/logger"
	"github.com/yeoblyv/spider/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, incoming string, header string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var seen string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid when absent", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, requestid.Middleware, "", requestid.Header)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses valid incoming id", func(t *testing.T) {
		t.Parallel()
		id, rec := serve(t, requestid.Middleware, "edge-42_a", requestid.Header)
		assert.Equal(t, "edge-42_a", id)
		assert.Equal(t, "edge-42_a", rec.Header().Get(requestid.Header))
	})

	invalid := []string{
		"with space",
		"slash/inside",
		`back\slash`,
		"semi;colon",
		"<script>",
		strings.Repeat("a", 129),
	}
	for _, in := range invalid {
		t.Run("replaces invalid "+in[:min(len(in), 12)], func(t *testing.T) {
			t.Parallel()
			id, _ := serve(t, requestid.Middleware, in, requestid.Header)
			assert.NotEqual(t, in, id)
			_, err := uuid.Parse(id)
			assert.NoError(t, err)
		})
	}
}

func TestNewOptions(t *testing.T) {
	t.Parallel()

	t.Run("custom header", func(t *testing.T) {
		t.Parallel()
		mw := requestid.New(requestid.WithHeader("x-correlation-id"))
		id, rec := serve(t, mw, "abc", "X-Correlation-Id")
		assert.Equal(t, "abc", id)
		assert.Equal(t, "abc", rec.Header().Get("X-Correlation-Id"))
		assert.Empty(t, rec.Header().Get(requestid.Header))
	})

	t.Run("custom generator", func(t *testing.T) {
		t.Parallel()
		mw := requestid.New(requestid.WithGenerator(func() string { return "fixed" }))
		id, _ := serve(t, mw, "", requestid.Header)
		assert.Equal(t, "fixed", id)
	})

	t.Run("untrusted incoming ignored", func(t *testing.T) {
		t.Parallel()
		mw := requestid.New(
			requestid.WithTrustIncoming(false),
			requestid.WithGenerator(func() string { return "server-side" }),
		)
		id, _ := serve(t, mw, "client-side", requestid.Header)
		assert.Equal(t, "server-side", id)
	})
}

func TestIsValid(t *testing.T) {
	t.Parallel()
	assert.True(t, requestid.IsValid("a1-B2_c3"))
	assert.True(t, requestid.IsValid(strings.Repeat("x", 128)))
	assert.False(t, requestid.IsValid(""))
	assert.False(t, requestid.IsValid(strings.Repeat("x", 129)))
	assert.False(t, requestid.IsValid("a.b"))
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	assert.Empty(t, requestid.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Empty(t, requestid.FromContext(nil))
	assert.Equal(t, "id-1", requestid.FromContext(requestid.WithContext(context.Background(), "id-1")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithFormat(logger.FormatJSON),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	log.InfoContext(requestid.WithContext(context.Background(), "req-7"), "hello")
	assert.Contains(t, buf.String(), `"request_id":"req-7"`)

	buf.Reset()
	log.InfoContext(context.Background(), "bye")
	assert.NotContains(t, buf.String(), "request_id")

	attr, ok := requestid.LoggerExtractor()(requestid.WithContext(context.Background(), "x"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "x", attr.Value.String())
}
