package repository

import (
	"context"

	"Wallboard/internal/domain/models"
)

// SnapshotSource retrieves the latest market snapshot in one round trip.
type SnapshotSource interface {
	Fetch(ctx context.Context) (*models.Snapshot, error)
}

// Display is a render target. Implementations only write what they are
// given; all formatting happens before these calls.
type Display interface {
	Render(p models.ScenePayloads)
	ShowScene(v models.SceneView)
	ShowStatus(s models.StatusReadout)
	ShowClock(now string)
}

type Metrics interface {
	RecordFetch(outcome string, seconds float64)
	RecordConnection(connected bool)
	RecordDataAge(seconds float64)
	RecordActiveScene(index int)
}
