package usecase

import (
	"fmt"
	"strings"
	"time"

	"Wallboard/internal/domain/models"
	"Wallboard/internal/service/format"
	"Wallboard/internal/service/lookup"
	"Wallboard/pkg/util"
)

const (
	miniLimit      = 4
	commodityLimit = 8
	newsLimit      = 3
	calendarLimit  = 5

	// MarqueeSeparator is a pair of ideographic spaces around a bar.
	MarqueeSeparator = "　　|　　"
)

const (
	emptyIndices     = "No indices data"
	emptyFX          = "No FX data"
	emptyDetailed    = "No detailed indices"
	emptyUSStocks    = "No US stocks data"
	emptyRates       = "No rates data"
	emptyCommodities = "No commodities data"
	emptyHeatmap     = "No heatmap data"
	emptyCalendar    = "No upcoming events"
)

// BuildPayloads renders every scene from one snapshot. It is pure: the same
// snapshot, time and location always give the same payloads.
func BuildPayloads(s *models.Snapshot, now time.Time, loc *time.Location) models.ScenePayloads {
	if s == nil {
		s = &models.Snapshot{}
	}
	indices := s.EquityIndices()
	return models.ScenePayloads{
		IndicesMini:     buildIndicesMini(indices),
		FXMini:          buildFXMini(s.FX),
		IndicesDetailed: buildIndicesDetailed(indices),
		Stats:           buildStats(s.Summary),
		Heatmap:         buildHeatmap(s.Heatmap),
		Rates:           buildRates(s.Rates),
		Commodities:     buildCommodities(s.Commodities),
		USStocks:        buildUSStocks(s.USStocks),
		News:            buildNews(s, now, loc),
		Calendar:        buildCalendar(s.Calendar.Events, loc),
		Marquee:         buildMarquee(indices),
	}
}

func indexLabel(i models.Instrument) string {
	if i.DisplayName != "" || i.Name != "" {
		return i.Label()
	}
	return lookup.IndexName(i.Code)
}

func top(g models.InstrumentGroup, n int) models.InstrumentGroup {
	if len(g) > n {
		return g[:n]
	}
	return g
}

func buildIndicesMini(g models.InstrumentGroup) models.List[models.MiniItem] {
	if len(g) == 0 {
		return models.List[models.MiniItem]{Empty: emptyIndices}
	}
	items := make([]models.MiniItem, 0, miniLimit)
	for _, i := range top(g, miniLimit) {
		items = append(items, models.MiniItem{
			Code:      i.Code,
			Name:      indexLabel(i),
			Value:     format.FormatMagnitude(i.Last, 2),
			Change:    format.FormatPercent(i.ChangePct, 2),
			Direction: format.ClassifyChange(i.ChangePct),
		})
	}
	return models.List[models.MiniItem]{Items: items}
}

func buildFXMini(g models.InstrumentGroup) models.List[models.MiniItem] {
	if len(g) == 0 {
		return models.List[models.MiniItem]{Empty: emptyFX}
	}
	items := make([]models.MiniItem, 0, miniLimit)
	for _, i := range top(g, miniLimit) {
		items = append(items, models.MiniItem{
			Code:      i.Code,
			Name:      lookup.FXName(i.Code),
			Value:     format.FormatMagnitude(i.Last, 4),
			Change:    format.FormatPercent(i.ChangePct, 2),
			Direction: format.ClassifyChange(i.ChangePct),
		})
	}
	return models.List[models.MiniItem]{Items: items}
}

func buildIndicesDetailed(g models.InstrumentGroup) models.List[models.DetailedIndex] {
	if len(g) == 0 {
		return models.List[models.DetailedIndex]{Empty: emptyDetailed}
	}
	items := make([]models.DetailedIndex, 0, len(g))
	for _, i := range g {
		items = append(items, models.DetailedIndex{
			Code:      i.Code,
			Name:      indexLabel(i),
			Price:     format.FormatMagnitude(i.Last, 2),
			Change:    format.FormatSignedChange(i.Change, 2),
			ChangePct: format.FormatPercent(i.ChangePct, 2),
			Volume:    format.FormatMagnitude(i.Volume, 0) + "B",
			Direction: format.ClassifyChange(i.ChangePct),
		})
	}
	return models.List[models.DetailedIndex]{Items: items}
}

func buildStats(s models.MarketSummary) models.MarketStats {
	return models.MarketStats{
		Advancing: format.FormatCount(s.Advancing),
		Declining: format.FormatCount(s.Declining),
		Unchanged: format.FormatCount(s.Unchanged),
	}
}

func buildHeatmap(cells []models.HeatmapCell) models.List[models.HeatItem] {
	if len(cells) == 0 {
		return models.List[models.HeatItem]{Empty: emptyHeatmap}
	}
	items := make([]models.HeatItem, 0, len(cells))
	for _, c := range cells {
		items = append(items, models.HeatItem{
			Code:      c.Code,
			Name:      c.Name,
			Change:    format.FormatPercent(c.PctChange, 2),
			Direction: format.ClassifyChange(c.PctChange),
		})
	}
	return models.List[models.HeatItem]{Items: items}
}

func buildUSStocks(g models.InstrumentGroup) models.List[models.StockItem] {
	if len(g) == 0 {
		return models.List[models.StockItem]{Empty: emptyUSStocks}
	}
	items := make([]models.StockItem, 0, len(g))
	for _, i := range g {
		items = append(items, models.StockItem{
			Code:      i.Code,
			Name:      lookup.USStockName(i.Code),
			Price:     "$" + format.FormatMagnitude(i.Last, 2),
			Change:    format.FormatPercent(i.ChangePct, 2),
			Direction: format.ClassifyChange(i.ChangePct),
		})
	}
	return models.List[models.StockItem]{Items: items}
}

// Rates are colored by the absolute change, not the percentage.
func buildRates(g models.InstrumentGroup) models.List[models.RateItem] {
	if len(g) == 0 {
		return models.List[models.RateItem]{Empty: emptyRates}
	}
	items := make([]models.RateItem, 0, len(g))
	for _, i := range g {
		items = append(items, models.RateItem{
			Code:      i.Code,
			Name:      lookup.RateName(i.Code),
			Value:     format.FormatMagnitude(i.Last, 3) + "%",
			Change:    format.FormatSignedChange(i.Change, 3),
			Direction: format.ClassifyChange(i.Change),
		})
	}
	return models.List[models.RateItem]{Items: items}
}

func buildCommodities(g models.InstrumentGroup) models.List[models.CommodityItem] {
	if len(g) == 0 {
		return models.List[models.CommodityItem]{Empty: emptyCommodities}
	}
	items := make([]models.CommodityItem, 0, commodityLimit)
	for _, i := range top(g, commodityLimit) {
		items = append(items, models.CommodityItem{
			Code:      i.Code,
			Name:      lookup.CommodityName(i.Code),
			Sector:    lookup.CommoditySector(i.Code),
			Price:     format.FormatMagnitude(i.Last, 0),
			Change:    format.FormatPercent(i.ChangePct, 2),
			Direction: format.ClassifyChange(i.ChangePct),
		})
	}
	return models.List[models.CommodityItem]{Items: items}
}

// buildNews shows the next calendar events, or a short data summary when the
// calendar is empty so the banner is never blank.
func buildNews(s *models.Snapshot, now time.Time, loc *time.Location) []models.NewsItem {
	events := s.Calendar.Events
	if len(events) > 0 {
		if len(events) > newsLimit {
			events = events[:newsLimit]
		}
		items := make([]models.NewsItem, 0, len(events))
		for _, e := range events {
			items = append(items, models.NewsItem{
				Time:    eventTime(e.Datetime, loc, format.FormatClock, "N/A"),
				Content: e.Headline(),
			})
		}
		return items
	}

	mode := s.Mode()
	if mode == "" {
		mode = "未知"
	}
	clock := format.FormatClock(now, loc)
	return []models.NewsItem{
		{Time: clock, Content: "数据源: " + mode},
		{Time: clock, Content: fmt.Sprintf("A股指数: %d 条", len(s.EquityIndices()))},
		{Time: clock, Content: fmt.Sprintf("商品: %d 条", len(s.Commodities))},
	}
}

func buildCalendar(events []models.CalendarEvent, loc *time.Location) models.List[models.NewsItem] {
	if len(events) == 0 {
		return models.List[models.NewsItem]{Empty: emptyCalendar}
	}
	if len(events) > calendarLimit {
		events = events[:calendarLimit]
	}
	items := make([]models.NewsItem, 0, len(events))
	for _, e := range events {
		items = append(items, models.NewsItem{
			Time:    eventTime(e.Datetime, loc, format.FormatDateTime, ""),
			Content: e.Headline(),
		})
	}
	return models.List[models.NewsItem]{Items: items}
}

// eventTime formats an event timestamp. Unparseable values are shown raw.
func eventTime(raw string, loc *time.Location, layout func(time.Time, *time.Location) string, missing string) string {
	if raw == "" {
		return missing
	}
	t, ok := util.ParseTime(raw, loc)
	if !ok {
		return raw
	}
	return layout(t, loc)
}

func buildMarquee(g models.InstrumentGroup) string {
	parts := make([]string, 0, len(g))
	for _, i := range g {
		parts = append(parts, fmt.Sprintf("%s: %s (%s)",
			indexLabel(i),
			format.FormatMagnitude(i.Last, 2),
			format.FormatPercent(i.ChangePct, 2),
		))
	}
	return strings.Join(parts, MarqueeSeparator)
}
