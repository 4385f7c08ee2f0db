package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/chart/pkg/charts"
	"github.com/go-drift/chart/pkg/geometry"
	"github.com/go-drift/chart/pkg/rendering"
)

var size = rendering.Size{Width: 64, Height: 32}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := New(10 * time.Millisecond)
	lc := charts.NewLineChart(geometry.Series{
		X: []float64{0, 1, 2, 3},
		Y: []float64{1, 4, 2, 5},
	})
	require.NoError(t, s.Add("visits", lc, size))
	s.Scheduler().Tick(0)
	return s
}

func do(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, http.StatusMethodNotAllowed, do(s, http.MethodPost, "/health").Code)
}

func TestFrame(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodGet, "/charts/visits/frame.png")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/charts/missing/frame.png").Code)
}

func TestCharts(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodGet, "/charts")
	require.Equal(t, http.StatusOK, rec.Code)
	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	require.Len(t, st.Charts, 1)
	assert.Equal(t, ChartInfo{
		Key:    "visits",
		Width:  64,
		Height: 32,
		Points: 4,
		Shapes: []string{charts.ShapeGrid, charts.ShapeFill, charts.ShapeStroke, charts.ShapeLabels, charts.ShapeHover},
	}, st.Charts[0])
	assert.Equal(t, uint64(1), st.Stats.Ticks)
}

func TestPointer(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodPost, "/charts/visits/pointer?x=10&y=20", http.StatusNoContent},
		{http.MethodPost, "/charts/visits/pointer?x=10", http.StatusBadRequest},
		{http.MethodPost, "/charts/missing/pointer?x=1&y=1", http.StatusNotFound},
		{http.MethodDelete, "/charts/visits/pointer", http.StatusNoContent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, do(s, tt.method, tt.target).Code, "%s %s", tt.method, tt.target)
	}
}

func TestShapeActions(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		target string
		want   int
	}{
		{"/charts/visits/shapes/stroke/pause", http.StatusNoContent},
		{"/charts/visits/shapes/stroke/resume", http.StatusNoContent},
		{"/charts/visits/shapes/stroke/reset", http.StatusNoContent},
		{"/charts/visits/shapes/stroke/explode", http.StatusBadRequest},
		{"/charts/visits/shapes/nope/pause", http.StatusNotFound},
		{"/charts/visits/invalidate", http.StatusNoContent},
		{"/charts/missing/invalidate", http.StatusNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, do(s, http.MethodPost, tt.target).Code, "POST %s", tt.target)
	}
}

func TestListenAndRun(t *testing.T) {
	s := newTestServer(t)
	addr, err := s.Listen("127.0.0.1:0")
	require.NoError(t, err)
	again, err := s.Listen("127.0.0.1:0")
	require.NoError(t, err)
	assert.Equal(t, addr, again, "second Listen should return the bound address")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	url := fmt.Sprintf("http://%s/charts", addr)
	deadline := time.Now().Add(2 * time.Second)
	for {
		var st Status
		resp, err := http.Get(url)
		if err == nil {
			err = json.NewDecoder(resp.Body).Decode(&st)
			resp.Body.Close()
		}
		if err == nil && st.Running && st.Stats.Ticks > 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("loop never ticked: %+v, %v", st, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, s.Scheduler().Running(), "scheduler should stop with the server")
}

func TestReAddWhileRunning(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for i := range 40 {
		n := 4 + i%3
		series := geometry.Series{X: make([]float64, n), Y: make([]float64, n)}
		for j := range n {
			series.X[j], series.Y[j] = float64(j), float64((i+j)%5)
		}
		require.NoError(t, s.Add("visits", charts.NewLineChart(series), size))
		assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/charts").Code)
		time.Sleep(time.Millisecond)
	}

	cancel()
	require.NoError(t, <-done)
	st := s.status()
	require.Len(t, st.Charts, 1)
	assert.Equal(t, 4+39%3, st.Charts[0].Points)
}
