package inspector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	layoutkit "github.com/grindlemire/go-layoutkit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardArrangement() layoutkit.Arrangement {
	card := layoutkit.NewSizeLayout(layoutkit.SizeConfig[*layoutkit.HeadlessView]{
		BaseConfig: layoutkit.BaseConfig[*layoutkit.HeadlessView]{
			Alignment: layoutkit.Center,
			ReuseID:   "card",
			Class:     layoutkit.HeadlessClass("Card"),
			Config:    func(*layoutkit.HeadlessView) {},
		},
		Width:  100,
		Height: 50,
	}, nil)
	root := layoutkit.NewInsetLayout(layoutkit.InsetConfig[layoutkit.View]{
		BaseConfig: layoutkit.BaseConfig[layoutkit.View]{Alignment: layoutkit.Fill},
	}, card)
	return layoutkit.ArrangeWithin(root, layoutkit.NewRect(0, 0, 320, 480))
}

func appliedEvent(gen uint64, arr *layoutkit.Arrangement) layoutkit.PassEvent {
	return layoutkit.PassEvent{
		PassID:     uuid.New(),
		Generation: gen,
		Stage:      layoutkit.StageFinished,
		Time:       time.Now(),
		Result: &layoutkit.PassResult{
			Outcome:     layoutkit.PassApplied,
			Report:      layoutkit.ApplyReport{Built: 1},
			Arrangement: arr,
		},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNew_Options(t *testing.T) {
	_, err := New(WithLogger(nil))
	assert.Error(t, err)
	_, err = New(WithHistory(0))
	assert.Error(t, err)
	_, err = New(WithPushRate(0))
	assert.Error(t, err)

	s, err := New(WithHistory(5), WithPushRate(2))
	require.NoError(t, err)
	assert.Equal(t, 5, s.history)
}

func TestSnapshot(t *testing.T) {
	arr := cardArrangement()
	tree := Snapshot(&arr)

	require.NotNil(t, tree)
	assert.False(t, tree.NeedsView)
	assert.Empty(t, tree.ViewType)
	assert.Equal(t, Frame{Width: 320, Height: 480}, tree.Frame)
	require.Len(t, tree.Children, 1)

	card := tree.Children[0]
	assert.Equal(t, "card", card.ReuseID)
	assert.Equal(t, "Card", card.ViewType)
	assert.True(t, card.NeedsView)
	assert.Equal(t, Frame{X: 110, Y: 215, Width: 100, Height: 50}, card.Frame)

	assert.Nil(t, Snapshot(nil))
}

func TestObserve_KeepsHistory(t *testing.T) {
	s, err := New(WithHistory(2))
	require.NoError(t, err)

	for gen := uint64(1); gen <= 3; gen++ {
		s.Observe(layoutkit.PassEvent{PassID: uuid.New(), Generation: gen, Stage: layoutkit.StageSubmitted})
	}

	events := s.Events()
	require.Len(t, events, 2)
	assert.EqualValues(t, 2, events[0].Generation)
	assert.EqualValues(t, 3, events[1].Generation)
	assert.Equal(t, "submitted", events[1].Stage)
}

func TestObserve_RecordsOutcome(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	s.Observe(layoutkit.PassEvent{
		PassID:     uuid.New(),
		Generation: 4,
		Stage:      layoutkit.StageFinished,
		Result: &layoutkit.PassResult{
			Outcome: layoutkit.PassFailed,
			Err:     errors.New("loop stopped"),
		},
	})
	assert.Nil(t, s.Tree(), "failed passes leave the tree alone")

	events := s.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "failed", events[0].Outcome)
	assert.Equal(t, []string{"loop stopped"}, events[0].Errors)
}

func TestRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "inspector_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	s, err := New(WithGatherer(reg))
	require.NoError(t, err)
	h := s.Handler()

	rec := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, h, "/tree").Code)

	arr := cardArrangement()
	s.Observe(layoutkit.PassEvent{PassID: uuid.New(), Generation: 1, Stage: layoutkit.StageArranged, Arrangement: &arr})
	s.Observe(appliedEvent(1, &arr))

	rec = get(t, h, "/tree")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var tree TreeNode
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tree))
	assert.Equal(t, "card", tree.Children[0].ReuseID)

	rec = get(t, h, "/passes")
	require.Equal(t, http.StatusOK, rec.Code)
	var events []Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, 2, events[0].Nodes)
	assert.Equal(t, "applied", events[1].Outcome)
	assert.Equal(t, 1, events[1].Built)

	rec = get(t, h, "/passes?limit=1")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "finished", events[0].Stage)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/passes?limit=x").Code)

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inspector_test_total 1")
}

func TestRoutes_NoMetricsWithoutGatherer(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/metrics").Code)
}

func TestWebsocket_PushesEvents(t *testing.T) {
	s, err := New(WithPushRate(1000))
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.subs) == 1
	}, 2*time.Second, 5*time.Millisecond)

	arr := cardArrangement()
	s.Observe(appliedEvent(7, &arr))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.EqualValues(t, 7, ev.Generation)
	assert.Equal(t, "applied", ev.Outcome)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.subs) == 0
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPipelineIntegration(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	loop, err := layoutkit.NewMainLoop()
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() { done <- loop.Run(context.Background()) }()
	defer func() {
		loop.Stop()
		<-done
	}()

	p, err := layoutkit.NewPipeline(loop, layoutkit.NewApplier(layoutkit.NewHeadlessView("Window")),
		layoutkit.WithExecutor(layoutkit.InlineExecutor{}),
		layoutkit.WithObserver(s.Observe),
	)
	require.NoError(t, err)

	arr := cardArrangement()
	pass := p.Submit(context.Background(), arr.Layout, layoutkit.NewRect(0, 0, 320, 480))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := pass.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, layoutkit.PassApplied, result.Outcome)

	tree := s.Tree()
	require.NotNil(t, tree)
	assert.Equal(t, "Card", tree.Children[0].ViewType)

	var stages []string
	for _, e := range s.Events() {
		stages = append(stages, e.Stage)
	}
	assert.Equal(t, []string{"submitted", "arranged", "finished"}, stages)
}
