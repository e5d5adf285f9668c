package repository

import (
	"Wallboard/internal/domain/models"
	"Wallboard/pkg/logger"
)

// LogDisplay writes display updates as structured log lines, for headless
// runs where no terminal is attached.
type LogDisplay struct {
	log *logger.Logger
}

func NewLogDisplay(log *logger.Logger) *LogDisplay {
	if log == nil {
		log = logger.Nop()
	}
	return &LogDisplay{log: log.With(logger.String("component", "display"))}
}

func (d *LogDisplay) Render(p models.ScenePayloads) {
	d.log.Info("payloads rendered",
		logger.Int("indices", len(p.IndicesDetailed.Items)),
		logger.Int("fx", len(p.FXMini.Items)),
		logger.Int("us_stocks", len(p.USStocks.Items)),
		logger.Int("rates", len(p.Rates.Items)),
		logger.Int("commodities", len(p.Commodities.Items)),
		logger.Int("heatmap", len(p.Heatmap.Items)),
		logger.Int("calendar", len(p.Calendar.Items)),
		logger.String("advancing", p.Stats.Advancing),
		logger.String("declining", p.Stats.Declining),
	)
}

func (d *LogDisplay) ShowScene(v models.SceneView) {
	d.log.Info("scene",
		logger.Int("index", v.Index),
		logger.String("scene", string(v.Scene)),
		logger.String("label", v.Label),
	)
}

func (d *LogDisplay) ShowStatus(s models.StatusReadout) {
	d.log.Info("status",
		logger.String("data_mode", s.DataMode),
		logger.String("last_update", s.LastUpdate),
		logger.String("connection", string(s.Connection)),
		logger.String("freshness", string(s.Freshness)),
	)
}

// ShowClock only logs at debug level; one line per second is noise.
func (d *LogDisplay) ShowClock(now string) {
	d.log.Debug("clock", logger.String("now", now))
}
