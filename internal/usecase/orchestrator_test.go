package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"Wallboard/internal/domain/models"
	"Wallboard/pkg/config"
	httpx "Wallboard/pkg/http"
	"Wallboard/pkg/scheduler"
)

func newTestOrchestrator(src *scriptedSource) (*RefreshOrchestrator, *scheduler.Manual, *recordingDisplay, *recordingMetrics) {
	sched := scheduler.NewManual(epoch)
	disp := &recordingDisplay{}
	m := &recordingMetrics{}
	o := NewRefreshOrchestrator(src, sched, disp, m, NewFreshnessTracker(0, 0), nil, OrchestratorConfig{
		Interval:      30 * time.Second,
		ClockInterval: time.Second,
		Location:      time.UTC,
	})
	return o, sched, disp, m
}

func TestOrchestrator_InitialStatus(t *testing.T) {
	o, _, _, _ := newTestOrchestrator(&scriptedSource{})
	st := o.Status()

	if st.Connection != models.Disconnected || st.Indicator != "Offline" {
		t.Fatalf("initial connection = %s/%s", st.Connection, st.Indicator)
	}
	if st.Freshness != models.FreshnessNoData || st.FreshnessText != "等待数据" || st.FreshnessColor != "#666" {
		t.Fatalf("initial freshness = %+v", st)
	}
	if o.ID() == "" {
		t.Fatal("instance id is empty")
	}
}

func TestOrchestrator_StartFetchesImmediately(t *testing.T) {
	src := &scriptedSource{}
	src.push(&models.Snapshot{Timestamp: "2024-01-02T09:29:50", DataMode: "wind"}, nil)
	o, _, disp, _ := newTestOrchestrator(src)

	o.Start(context.Background())

	if src.callCount() != 1 {
		t.Fatalf("fetches after Start = %d, want 1", src.callCount())
	}
	if len(disp.renders) != 1 {
		t.Fatalf("renders = %d, want 1", len(disp.renders))
	}
	st := disp.lastStatus()
	want := models.StatusReadout{
		DataMode:         "wind",
		HeaderDataMode:   "模式：WIND",
		LastUpdate:       "09:29:50",
		HeaderLastUpdate: "更新：09:29:50",
		Connection:       models.Connected,
		ConnectionText:   "已连接",
		ConnectionColor:  "#4caf50",
		Indicator:        "Live",
		Freshness:        models.FreshnessFresh,
		FreshnessText:    "数据实时",
		FreshnessColor:   "#4caf50",
	}
	if !st.LastSuccess.Equal(time.Date(2024, 1, 2, 9, 29, 50, 0, time.UTC)) {
		t.Fatalf("last success = %s", st.LastSuccess)
	}
	want.LastSuccess = st.LastSuccess
	if st != want {
		t.Fatalf("status =\n%+v\nwant\n%+v", st, want)
	}
	if o.Status() != st {
		t.Fatal("Status() differs from the last pushed readout")
	}
	if len(disp.clocks) == 0 || disp.clocks[0] != "09:30:00" {
		t.Fatalf("clock = %v", disp.clocks)
	}
}

func TestOrchestrator_RefreshCadence(t *testing.T) {
	src := &scriptedSource{}
	o, sched, disp, _ := newTestOrchestrator(src)
	o.Start(context.Background())

	sched.Advance(90 * time.Second)

	if got := src.callCount(); got != 4 {
		t.Fatalf("fetches after 90s = %d, want 4", got)
	}
	// one immediate tick plus one per second
	if got := len(disp.clocks); got != 91 {
		t.Fatalf("clock ticks = %d, want 91", got)
	}
}

func TestOrchestrator_MissingTimestampUsesNow(t *testing.T) {
	src := &scriptedSource{}
	src.push(&models.Snapshot{}, nil)
	o, _, disp, _ := newTestOrchestrator(src)
	o.Start(context.Background())

	st := disp.lastStatus()
	if st.LastUpdate != "09:30:00" || !st.LastSuccess.Equal(epoch) {
		t.Fatalf("status = %+v", st)
	}
	if st.DataMode != "mock" || st.HeaderDataMode != "模式：MOCK" {
		t.Fatalf("default mode = %q / %q", st.DataMode, st.HeaderDataMode)
	}
}

func TestOrchestrator_FailureKeepsContentAndMarksStale(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
	}{
		{"transport", &httpx.TransportError{Method: "GET", URL: "x", Err: errors.New("refused")}, "transport"},
		{"http", &httpx.HTTPError{Status: 503, URL: "x"}, "http"},
		{"decode", &httpx.DecodeError{URL: "x", Err: errors.New("bad json")}, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{}
			src.push(&models.Snapshot{DataMode: "open"}, nil)
			src.push(nil, tt.err)
			o, sched, disp, m := newTestOrchestrator(src)
			o.Start(context.Background())

			sched.Advance(30 * time.Second)

			if len(disp.renders) != 1 {
				t.Fatalf("renders = %d, failure must not re-render", len(disp.renders))
			}
			st := disp.lastStatus()
			if st.Connection != models.Disconnected || st.Indicator != "Offline" || st.ConnectionText != "连接中断" {
				t.Fatalf("connection = %+v", st)
			}
			if st.LastUpdate != "stale" || st.HeaderLastUpdate != "更新：暂停" {
				t.Fatalf("stale markers = %q / %q", st.LastUpdate, st.HeaderLastUpdate)
			}
			if st.DataMode != "open" {
				t.Fatalf("data mode = %q, want the last known mode", st.DataMode)
			}
			// 30s since the last success
			if st.Freshness != models.FreshnessAging {
				t.Fatalf("freshness = %s, want aging", st.Freshness)
			}
			if want := []string{"ok", tt.kind}; !reflect.DeepEqual(m.outcomes, want) {
				t.Fatalf("outcomes = %v, want %v", m.outcomes, want)
			}
			if o.Snapshot() == nil || o.Snapshot().DataMode != "open" {
				t.Fatal("snapshot replaced by a failed fetch")
			}
		})
	}
}

func TestOrchestrator_FailureBeforeAnySuccess(t *testing.T) {
	src := &scriptedSource{}
	src.push(nil, &httpx.HTTPError{Status: 500})
	o, _, _, _ := newTestOrchestrator(src)
	o.Start(context.Background())

	st := o.Status()
	if st.Freshness != models.FreshnessNoData || st.LastUpdate != "stale" {
		t.Fatalf("status = %+v", st)
	}
}

func TestOrchestrator_RecoversAfterFailure(t *testing.T) {
	src := &scriptedSource{}
	src.push(nil, &httpx.TransportError{Err: errors.New("down")})
	src.push(&models.Snapshot{DataMode: "wind"}, nil)
	o, sched, disp, m := newTestOrchestrator(src)
	o.Start(context.Background())
	sched.Advance(30 * time.Second)

	if o.Connection() != models.Connected {
		t.Fatalf("connection = %s, want connected", o.Connection())
	}
	if len(disp.renders) != 1 {
		t.Fatalf("renders = %d, want 1", len(disp.renders))
	}
	if want := []bool{false, true}; !reflect.DeepEqual(m.conn, want) {
		t.Fatalf("connection metric = %v, want %v", m.conn, want)
	}
}

func TestOrchestrator_DiscardsOutOfOrderResults(t *testing.T) {
	o, _, disp, _ := newTestOrchestrator(&scriptedSource{})

	older := o.begin()
	newer := o.begin()

	o.complete(newer, &models.Snapshot{DataMode: "new"}, nil, 0)
	o.complete(older, &models.Snapshot{DataMode: "old"}, nil, 0)

	if got := o.Snapshot().DataMode; got != "new" {
		t.Fatalf("applied snapshot = %q, want new", got)
	}
	if len(disp.renders) != 1 {
		t.Fatalf("renders = %d, want 1", len(disp.renders))
	}

	// an older failure must not flip the connection either
	o.complete(older, nil, &httpx.HTTPError{Status: 502}, 0)
	if o.Connection() != models.Connected {
		t.Fatal("stale failure changed the connection state")
	}
}

func TestOrchestrator_NewerFailureWinsOverOlderSuccess(t *testing.T) {
	o, _, disp, _ := newTestOrchestrator(&scriptedSource{})

	older := o.begin()
	newer := o.begin()
	o.complete(newer, nil, &httpx.TransportError{Err: errors.New("timeout")}, 0)
	o.complete(older, &models.Snapshot{}, nil, 0)

	if o.Connection() != models.Disconnected {
		t.Fatal("older success overrode a newer failure")
	}
	if len(disp.renders) != 0 {
		t.Fatalf("renders = %d, want 0", len(disp.renders))
	}
}

func TestOrchestrator_StopIsIdempotentAndIgnoresLateResults(t *testing.T) {
	src := &scriptedSource{}
	o, sched, disp, _ := newTestOrchestrator(src)
	o.Start(context.Background())

	pending := o.begin()
	o.Stop()
	o.Stop()

	if n := sched.Active(); n != 0 {
		t.Fatalf("%d timers left after Stop", n)
	}
	renders := len(disp.renders)
	statuses := len(disp.statuses)

	o.complete(pending, &models.Snapshot{DataMode: "late"}, nil, 0)
	sched.Advance(time.Minute)
	o.Fetch()

	if len(disp.renders) != renders || len(disp.statuses) != statuses {
		t.Fatal("display changed after Stop")
	}
	if src.callCount() != 1 {
		t.Fatalf("fetches = %d, want 1", src.callCount())
	}

	o.Start(context.Background())
	if sched.Active() != 0 {
		t.Fatal("Start after Stop registered timers")
	}
}

func TestOrchestrator_EmptyResultIsFailure(t *testing.T) {
	src := &scriptedSource{}
	src.push(nil, nil)
	o, _, _, m := newTestOrchestrator(src)
	o.Start(context.Background())

	if o.Connection() != models.Disconnected {
		t.Fatal("nil snapshot treated as success")
	}
	if want := []string{"other"}; !reflect.DeepEqual(m.outcomes, want) {
		t.Fatalf("outcomes = %v, want %v", m.outcomes, want)
	}
}

func TestOrchestrator_RotationIndependentOfFetches(t *testing.T) {
	src := &scriptedSource{}
	src.push(nil, &httpx.TransportError{Err: errors.New("down")})
	o, sched, disp, _ := newTestOrchestrator(src)
	r := NewSceneRotator(sched, disp, nil, nil, 25*time.Second)

	o.Start(context.Background())
	r.Start()
	sched.Advance(75 * time.Second)

	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(disp.sceneIndexes(), want) {
		t.Fatalf("scenes = %v, want %v", disp.sceneIndexes(), want)
	}
}

func TestOrchestrator_NaiveTimestampInHostZoneIsFresh(t *testing.T) {
	loc := config.Default().TimeLocation()
	src := &scriptedSource{}
	src.push(&models.Snapshot{Timestamp: epoch.In(time.Local).Format("2006-01-02T15:04:05.000000")}, nil)

	sched := scheduler.NewManual(epoch)
	disp := &recordingDisplay{}
	o := NewRefreshOrchestrator(src, sched, disp, nil, NewFreshnessTracker(0, 0), nil, OrchestratorConfig{
		Interval:      30 * time.Second,
		ClockInterval: time.Second,
		Location:      loc,
	})
	o.Start(context.Background())

	st := disp.lastStatus()
	if st.Freshness != models.FreshnessFresh {
		t.Fatalf("freshness = %s, want fresh", st.Freshness)
	}
	if !st.LastSuccess.Equal(epoch) {
		t.Fatalf("last success = %s, want %s", st.LastSuccess, epoch)
	}
}

func TestOrchestrator_FreshnessAdvancesWithoutFetches(t *testing.T) {
	src := &scriptedSource{}
	src.push(&models.Snapshot{Timestamp: "2024-01-02T09:30:00"}, nil)
	o, sched, disp, _ := newTestOrchestrator(src)
	// only the immediate fetch before the clock moves the tier
	o.cfg.Interval = time.Hour
	o.Start(context.Background())

	tests := []struct {
		advance time.Duration
		want    models.FreshnessState
	}{
		{29 * time.Second, models.FreshnessFresh},
		{2 * time.Second, models.FreshnessAging},
		{30 * time.Second, models.FreshnessStale},
	}
	for _, tt := range tests {
		sched.Advance(tt.advance)
		if got := disp.lastStatus().Freshness; got != tt.want {
			t.Fatalf("pushed freshness at %s = %s, want %s", sched.Now().Sub(epoch), got, tt.want)
		}
		if got := o.Status().Freshness; got != tt.want {
			t.Fatalf("Status() freshness at %s = %s, want %s", sched.Now().Sub(epoch), got, tt.want)
		}
	}
	if src.callCount() != 1 {
		t.Fatalf("fetches = %d, want 1", src.callCount())
	}
}

func TestOrchestrator_StatusDerivesFreshnessAfterStop(t *testing.T) {
	src := &scriptedSource{}
	src.push(&models.Snapshot{Timestamp: "2024-01-02T09:30:00"}, nil)
	o, sched, _, _ := newTestOrchestrator(src)
	o.Start(context.Background())
	o.Stop()

	sched.Advance(129 * time.Second)

	st := o.Status()
	if st.Freshness != models.FreshnessStale || st.FreshnessText != models.FreshnessStale.Text() {
		t.Fatalf("status freshness = %s (%q), want stale", st.Freshness, st.FreshnessText)
	}
}
