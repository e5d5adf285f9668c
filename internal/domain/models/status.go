package models

import "time"

// Direction classifies the sign of a change.
type Direction string

const (
	DirectionUp        Direction = "up"
	DirectionDown      Direction = "down"
	DirectionUnchanged Direction = "unchanged"
)

// ConnectionState is the last observed fetch outcome.
type ConnectionState string

const (
	Connected    ConnectionState = "connected"
	Disconnected ConnectionState = "disconnected"
)

// FreshnessState is the staleness tier derived from time since the last success.
type FreshnessState string

const (
	FreshnessNoData FreshnessState = "no-data"
	FreshnessFresh  FreshnessState = "fresh"
	FreshnessAging  FreshnessState = "aging"
	FreshnessStale  FreshnessState = "stale"
)

var freshnessText = map[FreshnessState][2]string{
	FreshnessNoData: {"等待数据", "#666"},
	FreshnessFresh:  {"数据实时", "#4caf50"},
	FreshnessAging:  {"数据较新", "#ff9800"},
	FreshnessStale:  {"数据较旧", "#f44336"},
}

// Text returns the indicator text shown on the status bar.
func (f FreshnessState) Text() string { return freshnessText[f][0] }

// Color returns the indicator color.
func (f FreshnessState) Color() string { return freshnessText[f][1] }

// StatusReadout is the always-visible status area.
type StatusReadout struct {
	DataMode         string          `json:"data_mode"`
	HeaderDataMode   string          `json:"header_data_mode"`
	LastUpdate       string          `json:"last_update"`
	HeaderLastUpdate string          `json:"header_last_update"`
	Connection       ConnectionState `json:"connection"`
	ConnectionText   string          `json:"connection_text"`
	ConnectionColor  string          `json:"connection_color"`
	Indicator        string          `json:"indicator"`
	Freshness        FreshnessState  `json:"freshness"`
	FreshnessText    string          `json:"freshness_text"`
	FreshnessColor   string          `json:"freshness_color"`
	LastSuccess      time.Time       `json:"last_success"`
}
