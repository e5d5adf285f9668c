package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"Wallboard/internal/domain/models"
	drepo "Wallboard/internal/domain/repository"
	"Wallboard/internal/service/format"
	httpx "Wallboard/pkg/http"
	"Wallboard/pkg/logger"
	"Wallboard/pkg/scheduler"
	"Wallboard/pkg/util"
)

const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultClockInterval   = time.Second

	defaultDataMode = "mock"
	colorUp         = "#4caf50"
	colorDown       = "#f44336"
)

var errEmptySnapshot = errors.New("empty snapshot")

// OrchestratorConfig holds the timing knobs of a RefreshOrchestrator.
type OrchestratorConfig struct {
	Interval      time.Duration
	ClockInterval time.Duration
	Location      *time.Location
}

// RefreshOrchestrator polls the snapshot source, tracks connection and
// freshness, and pushes rendered payloads and status to the display.
//
// All state except the status copy is owned by the scheduler thread: Start,
// Stop and Fetch must be called there (Post them from other goroutines).
type RefreshOrchestrator struct {
	id      string
	source  drepo.SnapshotSource
	sched   scheduler.Scheduler
	display drepo.Display
	metrics drepo.Metrics
	fresh   *FreshnessTracker
	log     *logger.Logger
	cfg     OrchestratorConfig

	ctx      context.Context
	cancels  []scheduler.CancelFunc
	started  bool
	stopped  bool
	issued   uint64
	applied  uint64
	snapshot *models.Snapshot
	conn     models.ConnectionState
	mode     string

	mu     sync.RWMutex
	status models.StatusReadout
}

// NewRefreshOrchestrator wires an orchestrator. metrics and log may be nil.
func NewRefreshOrchestrator(
	source drepo.SnapshotSource,
	sched scheduler.Scheduler,
	display drepo.Display,
	metrics drepo.Metrics,
	fresh *FreshnessTracker,
	log *logger.Logger,
	cfg OrchestratorConfig,
) *RefreshOrchestrator {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultRefreshInterval
	}
	if cfg.ClockInterval <= 0 {
		cfg.ClockInterval = DefaultClockInterval
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if fresh == nil {
		fresh = NewFreshnessTracker(0, 0)
	}
	if log == nil {
		log = logger.Nop()
	}
	id := uuid.NewString()
	o := &RefreshOrchestrator{
		id:      id,
		source:  source,
		sched:   sched,
		display: display,
		metrics: metrics,
		fresh:   fresh,
		log:     log.With(logger.String("instance", id)),
		cfg:     cfg,
		conn:    models.Disconnected,
	}
	o.status = o.initialStatus()
	return o
}

// ID identifies this controller instance in logs.
func (o *RefreshOrchestrator) ID() string { return o.id }

// Start fetches once immediately, then on every Interval, and starts the
// clock. ctx is handed to each fetch. Start after Stop does nothing.
func (o *RefreshOrchestrator) Start(ctx context.Context) {
	if o.started || o.stopped {
		return
	}
	o.started = true
	o.ctx = ctx

	o.log.Info("refresh started",
		logger.Duration("interval", o.cfg.Interval),
		logger.Duration("clock_interval", o.cfg.ClockInterval),
	)

	o.display.ShowStatus(o.Status())
	o.tickClock()
	o.Fetch()
	o.cancels = append(o.cancels,
		o.sched.Every(o.cfg.Interval, o.Fetch),
		o.sched.Every(o.cfg.ClockInterval, o.tickClock),
	)
}

// Stop cancels every timer. Fetches already in flight are left to finish but
// their results are ignored. Safe to call more than once.
func (o *RefreshOrchestrator) Stop() {
	if o.stopped {
		return
	}
	o.stopped = true
	for _, cancel := range o.cancels {
		cancel()
	}
	o.cancels = nil
	o.log.Info("refresh stopped")
}

// Fetch issues one snapshot request off the scheduler thread.
func (o *RefreshOrchestrator) Fetch() {
	if o.stopped {
		return
	}
	seq := o.begin()
	ctx := o.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	o.sched.Go(func() {
		started := time.Now()
		snap, err := o.source.Fetch(ctx)
		elapsed := time.Since(started)
		o.sched.Post(func() { o.complete(seq, snap, err, elapsed) })
	})
}

// Snapshot returns the last applied snapshot, or nil.
func (o *RefreshOrchestrator) Snapshot() *models.Snapshot { return o.snapshot }

// Connection returns the state set by the most recently applied fetch.
func (o *RefreshOrchestrator) Connection() models.ConnectionState { return o.conn }

// Status returns a copy of the status readout with freshness derived at
// call time. Safe from any goroutine.
func (o *RefreshOrchestrator) Status() models.StatusReadout {
	st := o.storedStatus()
	o.applyFreshness(&st, o.sched.Now())
	return st
}

func (o *RefreshOrchestrator) storedStatus() models.StatusReadout {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

func (o *RefreshOrchestrator) applyFreshness(st *models.StatusReadout, now time.Time) {
	f := o.fresh.Classify(now)
	st.Freshness, st.FreshnessText, st.FreshnessColor = f, f.Text(), f.Color()
	st.LastSuccess = o.fresh.LastSuccess()
}

func (o *RefreshOrchestrator) begin() uint64 {
	o.issued++
	return o.issued
}

// complete applies a fetch result unless a newer one was applied already or
// the orchestrator is stopped.
func (o *RefreshOrchestrator) complete(seq uint64, snap *models.Snapshot, err error, elapsed time.Duration) {
	if err == nil && snap == nil {
		err = errEmptySnapshot
	}
	if o.metrics != nil {
		o.metrics.RecordFetch(httpx.ErrorKind(err), elapsed.Seconds())
	}
	if o.stopped {
		return
	}
	if seq <= o.applied {
		o.log.Debug("discarding out-of-order fetch result",
			logger.Int64("seq", int64(seq)),
			logger.Int64("applied", int64(o.applied)),
		)
		return
	}
	o.applied = seq

	if err != nil {
		o.fail(err)
		return
	}
	o.succeed(snap)
}

func (o *RefreshOrchestrator) succeed(snap *models.Snapshot) {
	now := o.sched.Now()
	last := util.ParseTimeDefault(snap.Timestamp, o.cfg.Location, now)

	o.snapshot = snap
	o.fresh.Mark(last)
	o.conn = models.Connected
	o.mode = snap.Mode()
	if o.mode == "" {
		o.mode = defaultDataMode
	}

	o.display.Render(BuildPayloads(snap, now, o.cfg.Location))

	clock := format.FormatClock(last, o.cfg.Location)
	st := o.baseStatus(now)
	st.LastUpdate = clock
	st.HeaderLastUpdate = "更新：" + clock
	o.publish(st, now)

	o.log.Debug("snapshot applied",
		logger.String("data_mode", o.mode),
		logger.String("timestamp", snap.Timestamp),
	)
}

func (o *RefreshOrchestrator) fail(err error) {
	now := o.sched.Now()
	o.conn = models.Disconnected

	st := o.baseStatus(now)
	st.LastUpdate = "stale"
	st.HeaderLastUpdate = "更新：暂停"
	o.publish(st, now)

	o.log.Warn("snapshot fetch failed",
		logger.String("kind", httpx.ErrorKind(err)),
		logger.Error(err),
	)
}

// baseStatus fills the connection, mode and freshness fields.
func (o *RefreshOrchestrator) baseStatus(now time.Time) models.StatusReadout {
	st := o.storedStatus()
	if o.mode != "" {
		st.DataMode = o.mode
		st.HeaderDataMode = "模式：" + strings.ToUpper(o.mode)
	}
	st.Connection = o.conn
	if o.conn == models.Connected {
		st.ConnectionText, st.ConnectionColor, st.Indicator = "已连接", colorUp, "Live"
	} else {
		st.ConnectionText, st.ConnectionColor, st.Indicator = "连接中断", colorDown, "Offline"
	}
	o.applyFreshness(&st, now)
	return st
}

func (o *RefreshOrchestrator) publish(st models.StatusReadout, now time.Time) {
	o.mu.Lock()
	o.status = st
	o.mu.Unlock()

	o.display.ShowStatus(st)
	if o.metrics != nil {
		o.metrics.RecordConnection(st.Connection == models.Connected)
		o.recordAge(now)
	}
}

func (o *RefreshOrchestrator) recordAge(now time.Time) {
	if age, ok := o.fresh.Age(now); ok {
		o.metrics.RecordDataAge(age.Seconds())
	}
}

func (o *RefreshOrchestrator) tickClock() {
	if o.stopped {
		return
	}
	now := o.sched.Now()
	o.display.ShowClock(format.FormatClock(now, o.cfg.Location))

	// the tier can change between fetches
	st := o.storedStatus()
	if f := o.fresh.Classify(now); f != st.Freshness {
		o.applyFreshness(&st, now)
		o.publish(st, now)
		return
	}
	if o.metrics != nil {
		o.recordAge(now)
	}
}

func (o *RefreshOrchestrator) initialStatus() models.StatusReadout {
	f := models.FreshnessNoData
	return models.StatusReadout{
		DataMode:         format.Placeholder,
		HeaderDataMode:   "模式：" + format.Placeholder,
		LastUpdate:       format.Placeholder,
		HeaderLastUpdate: "更新：" + format.Placeholder,
		Connection:       models.Disconnected,
		ConnectionText:   "连接中断",
		ConnectionColor:  colorDown,
		Indicator:        "Offline",
		Freshness:        f,
		FreshnessText:    f.Text(),
		FreshnessColor:   f.Color(),
	}
}
