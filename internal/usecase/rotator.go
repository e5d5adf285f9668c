package usecase

import (
	"sync"
	"time"

	"Wallboard/internal/domain/models"
	drepo "Wallboard/internal/domain/repository"
	"Wallboard/pkg/logger"
	"Wallboard/pkg/scheduler"
)

const DefaultRotateInterval = 25 * time.Second

// SceneRotator cycles the active scene on a fixed interval. It is independent
// of fetch outcomes: a failing data source never stalls rotation.
type SceneRotator struct {
	sched    scheduler.Scheduler
	display  drepo.Display
	metrics  drepo.Metrics
	log      *logger.Logger
	interval time.Duration

	mu      sync.Mutex
	index   int
	cancel  scheduler.CancelFunc
	running bool
}

// NewSceneRotator creates a rotator. metrics may be nil.
func NewSceneRotator(sched scheduler.Scheduler, display drepo.Display, metrics drepo.Metrics, log *logger.Logger, interval time.Duration) *SceneRotator {
	if interval <= 0 {
		interval = DefaultRotateInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SceneRotator{sched: sched, display: display, metrics: metrics, log: log, interval: interval}
}

// Start activates the first scene and schedules Tick. Calling Start on a
// running rotator does nothing.
func (r *SceneRotator) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.index = 0
	r.mu.Unlock()

	r.activate(0)
	cancel := r.sched.Every(r.interval, r.Tick)

	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
}

// Tick advances to the next scene, wrapping after the last one.
func (r *SceneRotator) Tick() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	next, _ := models.SceneAt(r.index + 1)
	r.index = next
	r.mu.Unlock()

	r.activate(next)
}

// Select jumps to scene i (wrapped into range) without touching the timer.
// Must run on the scheduler thread; use RequestSelect from elsewhere.
func (r *SceneRotator) Select(i int) models.SceneView {
	idx, _ := models.SceneAt(i)
	r.mu.Lock()
	r.index = idx
	r.mu.Unlock()

	return r.activate(idx)
}

// RequestSelect schedules Select on the scheduler thread and returns the
// view that will become active.
func (r *SceneRotator) RequestSelect(i int) models.SceneView {
	view := models.NewSceneView(i)
	r.sched.Post(func() { r.Select(i) })
	return view
}

// Stop cancels the rotation timer. It is safe to call repeatedly.
func (r *SceneRotator) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.running = false
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Active returns the view of the currently active scene.
func (r *SceneRotator) Active() models.SceneView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return models.NewSceneView(r.index)
}

func (r *SceneRotator) activate(idx int) models.SceneView {
	view := models.NewSceneView(idx)
	r.display.ShowScene(view)
	if r.metrics != nil {
		r.metrics.RecordActiveScene(view.Index)
	}
	r.log.Debug("scene activated",
		logger.Int("index", view.Index),
		logger.String("scene", string(view.Scene)),
	)
	return view
}
