package restapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"points_checker/internal/domain/entity"
)

func TestNewResultRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   entity.FetchResult
		want ResultRow
	}{
		{
			name: "success",
			in:   entity.NewSuccessResult("w1", map[string]any{"total_points": 10.0, "last_24h_points": 1.0}),
			want: ResultRow{Address: "w1", TotalPoints: "10", Last24hPoints: "1", Status: "✅ Success", OK: true},
		},
		{
			name: "success without fields",
			in:   entity.NewSuccessResult("w2", map[string]any{"rank": 3.0}),
			want: ResultRow{Address: "w2", TotalPoints: "-", Last24hPoints: "-", Status: "✅ Success", OK: true},
		},
		{
			name: "non-numeric field shown as is",
			in:   entity.NewSuccessResult("w3", map[string]any{"total_points": "n/a"}),
			want: ResultRow{Address: "w3", TotalPoints: "n/a", Last24hPoints: "-", Status: "✅ Success", OK: true},
		},
		{
			name: "null field renders empty",
			in:   entity.NewSuccessResult("w5", map[string]any{"total_points": nil, "last_24h_points": 2.0}),
			want: ResultRow{Address: "w5", TotalPoints: "", Last24hPoints: "2", Status: "✅ Success", OK: true},
		},
		{
			name: "error reported in body",
			in:   entity.NewSuccessResult("w6", map[string]any{"error": "wallet not found"}),
			want: ResultRow{Address: "w6", TotalPoints: "-", Last24hPoints: "-", Status: "❌ wallet not found"},
		},
		{
			name: "error",
			in:   entity.NewErrorResult("w4", "Failed for w4"),
			want: ResultRow{Address: "w4", TotalPoints: "-", Last24hPoints: "-", Status: "❌ Failed for w4"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewResultRow(tt.in))
		})
	}
}

func TestNewPageView(t *testing.T) {
	t.Parallel()

	t.Run("no batch", func(t *testing.T) {
		t.Parallel()
		view := NewPageView(entity.NewSession("s"), nil)
		assert.False(t, view.Running)
		assert.Empty(t, view.Rows)
		assert.Empty(t, view.Checking)
		assert.False(t, view.ShowModal)
		assert.Equal(t, entity.DonationAddress, view.DonationAddress)
	})

	t.Run("running batch", func(t *testing.T) {
		t.Parallel()
		batch := entity.NewBatch("b", []entity.Wallet{{Address: "a"}, {Address: "b"}, {Address: "c"}})
		batch.Resolve(entity.NewErrorResult("a", "Failed for a"))
		snap := batch.Snapshot()

		view := NewPageView(entity.NewSession("s"), &snap)
		assert.True(t, view.Running)
		assert.Equal(t, "b, c", view.Checking)
		assert.Equal(t, "a\nb\nc", view.Input)
		require.Len(t, view.Rows, 1)
		assert.Equal(t, "❌ Failed for a", view.Rows[0].Status)
	})

	t.Run("modal follows the session", func(t *testing.T) {
		t.Parallel()
		session := entity.NewSession("s")
		session.LatchFirstSuccess()
		assert.True(t, NewPageView(session, nil).ShowModal)
	})
}

func TestIndexTemplate(t *testing.T) {
	t.Parallel()
	tmpl, err := LoadTemplates()
	require.NoError(t, err)

	batch := entity.NewBatch("b", []entity.Wallet{{Address: "<script>"}, {Address: "next"}})
	batch.Resolve(entity.NewErrorResult("<script>", "Failed for <script>"))
	snap := batch.Snapshot()

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, indexTemplate, NewPageView(entity.NewSession("s"), &snap)))

	out := buf.String()
	assert.Contains(t, out, `http-equiv="refresh"`)
	assert.Contains(t, out, "Checking: next")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestZapLoggerMiddleware(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)

	router := gin.New()
	router.Use(ZapLoggerMiddleware(zap.New(core)))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?x=1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusInternalServerError, entries[1].ContextMap()["status"])
}
