package usecase

import (
	"reflect"
	"testing"
	"time"

	"Wallboard/internal/domain/models"
	"Wallboard/pkg/scheduler"
)

var epoch = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

func TestSceneRotator_StartActivatesFirstSceneSynchronously(t *testing.T) {
	sched := scheduler.NewManual(epoch)
	disp := &recordingDisplay{}
	r := NewSceneRotator(sched, disp, nil, nil, 0)

	r.Start()

	if got := disp.sceneIndexes(); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("scenes after Start = %v, want [0]", got)
	}
	if v := r.Active(); v.Scene != models.SceneGlobalOverview || v.Label != "Global Overview" {
		t.Fatalf("Active() = %+v", v)
	}
}

func TestSceneRotator_WrapsAfterFiveTicks(t *testing.T) {
	sched := scheduler.NewManual(epoch)
	disp := &recordingDisplay{}
	r := NewSceneRotator(sched, disp, nil, nil, 25*time.Second)
	r.Start()

	sched.Advance(6 * 25 * time.Second)

	want := []int{0, 1, 2, 3, 4, 0, 1}
	if got := disp.sceneIndexes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("scene sequence = %v, want %v", got, want)
	}
}

func TestSceneRotator_SelectKeepsTimer(t *testing.T) {
	sched := scheduler.NewManual(epoch)
	disp := &recordingDisplay{}
	r := NewSceneRotator(sched, disp, nil, nil, 25*time.Second)
	r.Start()

	sched.Advance(10 * time.Second)
	r.Select(3)
	// the next tick is still due 25s after Start, not 25s after Select
	sched.Advance(15 * time.Second)

	want := []int{0, 3, 4}
	if got := disp.sceneIndexes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("scene sequence = %v, want %v", got, want)
	}
}

func TestSceneRotator_SelectNormalisesIndex(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{4, 4},
		{5, 0},
		{7, 2},
		{-1, 4},
		{-6, 4},
	}
	for _, tt := range tests {
		sched := scheduler.NewManual(epoch)
		r := NewSceneRotator(sched, &recordingDisplay{}, nil, nil, 0)
		r.Start()
		if got := r.Select(tt.in); got.Index != tt.want {
			t.Errorf("Select(%d).Index = %d, want %d", tt.in, got.Index, tt.want)
		}
		if got := r.Active().Index; got != tt.want {
			t.Errorf("Active after Select(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSceneRotator_StopIsIdempotent(t *testing.T) {
	sched := scheduler.NewManual(epoch)
	disp := &recordingDisplay{}
	r := NewSceneRotator(sched, disp, nil, nil, 25*time.Second)
	r.Start()

	r.Stop()
	r.Stop()
	if n := sched.Active(); n != 0 {
		t.Fatalf("%d timers still registered after Stop", n)
	}

	sched.Advance(time.Minute)
	r.Tick()
	if got := disp.sceneIndexes(); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("scenes changed after Stop: %v", got)
	}
}

func TestSceneRotator_RecordsActiveSceneMetric(t *testing.T) {
	sched := scheduler.NewManual(epoch)
	m := &recordingMetrics{}
	r := NewSceneRotator(sched, &recordingDisplay{}, m, nil, 25*time.Second)
	r.Start()
	sched.Advance(25 * time.Second)
	r.RequestSelect(4)

	if want := []int{0, 1, 4}; !reflect.DeepEqual(m.scenes, want) {
		t.Fatalf("active scene metric = %v, want %v", m.scenes, want)
	}
}
