package usecase

import (
	"context"
	"sync"

	"Wallboard/internal/domain/models"
)

type recordingDisplay struct {
	mu       sync.Mutex
	renders  []models.ScenePayloads
	scenes   []models.SceneView
	statuses []models.StatusReadout
	clocks   []string
}

func (d *recordingDisplay) Render(p models.ScenePayloads) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.renders = append(d.renders, p)
}

func (d *recordingDisplay) ShowScene(v models.SceneView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scenes = append(d.scenes, v)
}

func (d *recordingDisplay) ShowStatus(s models.StatusReadout) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statuses = append(d.statuses, s)
}

func (d *recordingDisplay) ShowClock(now string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clocks = append(d.clocks, now)
}

func (d *recordingDisplay) lastStatus() models.StatusReadout {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.statuses) == 0 {
		return models.StatusReadout{}
	}
	return d.statuses[len(d.statuses)-1]
}

func (d *recordingDisplay) sceneIndexes() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]int, len(d.scenes))
	for i, v := range d.scenes {
		out[i] = v.Index
	}
	return out
}

type fetchResult struct {
	snap *models.Snapshot
	err  error
}

// scriptedSource returns queued results in order, repeating the last one.
type scriptedSource struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

func (s *scriptedSource) Fetch(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.results) == 0 {
		return &models.Snapshot{}, nil
	}
	r := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return r.snap, r.err
}

func (s *scriptedSource) push(snap *models.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, fetchResult{snap: snap, err: err})
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
	conn     []bool
	ages     []float64
	scenes   []int
}

func (m *recordingMetrics) RecordFetch(outcome string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) RecordConnection(connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conn = append(m.conn, connected)
}

func (m *recordingMetrics) RecordDataAge(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ages = append(m.ages, seconds)
}

func (m *recordingMetrics) RecordActiveScene(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenes = append(m.scenes, index)
}
