package repository

import (
	"Wallboard/internal/domain/models"
	drepo "Wallboard/internal/domain/repository"
)

// MultiDisplay fans every update out to several displays in order.
type MultiDisplay []drepo.Display

// NewMultiDisplay drops nil entries.
func NewMultiDisplay(displays ...drepo.Display) MultiDisplay {
	out := make(MultiDisplay, 0, len(displays))
	for _, d := range displays {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (m MultiDisplay) Render(p models.ScenePayloads) {
	for _, d := range m {
		d.Render(p)
	}
}

func (m MultiDisplay) ShowScene(v models.SceneView) {
	for _, d := range m {
		d.ShowScene(v)
	}
}

func (m MultiDisplay) ShowStatus(s models.StatusReadout) {
	for _, d := range m {
		d.ShowStatus(s)
	}
}

func (m MultiDisplay) ShowClock(now string) {
	for _, d := range m {
		d.ShowClock(now)
	}
}
