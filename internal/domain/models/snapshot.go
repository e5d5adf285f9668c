package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Snapshot is one complete payload of market data at a point in time.
// A new Snapshot fully replaces the previous one; it is never merged.
type Snapshot struct {
	Timestamp   string          `json:"timestamp"`
	DataMode    string          `json:"data_mode"`
	Metadata    *Metadata       `json:"metadata,omitempty"`
	AShares     InstrumentGroup `json:"a_shares"`
	Indices     InstrumentGroup `json:"indices"`
	FX          InstrumentGroup `json:"fx"`
	USStocks    InstrumentGroup `json:"us_stocks"`
	Rates       InstrumentGroup `json:"rates"`
	Commodities InstrumentGroup `json:"commodities"`
	Crypto      InstrumentGroup `json:"crypto"`
	Calendar    Calendar        `json:"calendar"`
	Heatmap     []HeatmapCell   `json:"heatmap"`
	Summary     MarketSummary   `json:"summary"`
}

// Metadata is the envelope used by the simpler /data/snapshot variant.
type Metadata struct {
	DataMode string `json:"data_mode"`
}

// Mode returns the data-mode tag, falling back to metadata and then to "".
func (s *Snapshot) Mode() string {
	if s == nil {
		return ""
	}
	if s.DataMode != "" {
		return s.DataMode
	}
	if s.Metadata != nil {
		return s.Metadata.DataMode
	}
	return ""
}

// EquityIndices returns the equity index group. Older payloads only carry "indices".
func (s *Snapshot) EquityIndices() InstrumentGroup {
	if s == nil {
		return nil
	}
	if len(s.AShares) > 0 {
		return s.AShares
	}
	return s.Indices
}

// Instrument is a single priced entity identified by a stable code.
// Numeric fields are nil when absent or not numeric on the wire.
type Instrument struct {
	Code        string
	Name        string
	DisplayName string
	Last        *float64
	Change      *float64
	ChangePct   *float64
	Volume      *float64
}

// Label returns display_name, then name, then the code.
func (i Instrument) Label() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	if i.Name != "" {
		return i.Name
	}
	return i.Code
}

type instrumentWire struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Last        json.RawMessage `json:"last"`
	Change      json.RawMessage `json:"change"`
	ChangePct   json.RawMessage `json:"change_pct"`
	Volume      json.RawMessage `json:"volume"`
}

// UnmarshalJSON decodes an instrument, degrading malformed numbers to nil.
func (i *Instrument) UnmarshalJSON(b []byte) error {
	var w instrumentWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	i.Name = w.Name
	i.DisplayName = w.DisplayName
	i.Last = ParseNumber(w.Last)
	i.Change = ParseNumber(w.Change)
	i.ChangePct = ParseNumber(w.ChangePct)
	i.Volume = ParseNumber(w.Volume)
	return nil
}

// InstrumentGroup keeps the instruments of one asset class in wire order.
type InstrumentGroup []Instrument

// UnmarshalJSON decodes a code-keyed JSON object. Entries that are not
// objects are skipped, and null decodes to an empty group.
func (g *InstrumentGroup) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*g = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("instrument group: expected object, got %v", tok)
	}

	var out InstrumentGroup
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := tok.(string)
		if !ok {
			return fmt.Errorf("instrument group: unexpected key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("instrument %s: %w", code, err)
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}
		var inst Instrument
		if err := json.Unmarshal(raw, &inst); err != nil {
			return fmt.Errorf("instrument %s: %w", code, err)
		}
		inst.Code = code
		out = append(out, inst)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*g = out
	return nil
}

// Calendar wraps the list of upcoming economic events.
type Calendar struct {
	Events []CalendarEvent `json:"events"`
}

// CalendarEvent is an entry of the economic calendar.
type CalendarEvent struct {
	EventID    string `json:"event_id"`
	Title      string `json:"title"`
	Country    string `json:"country"`
	Datetime   string `json:"datetime"`
	Importance string `json:"importance"`
	Consensus  string `json:"consensus"`
	Previous   string `json:"previous"`
}

type calendarEventWire struct {
	EventID    json.RawMessage `json:"event_id"`
	Title      json.RawMessage `json:"title"`
	Country    json.RawMessage `json:"country"`
	Datetime   json.RawMessage `json:"datetime"`
	Importance json.RawMessage `json:"importance"`
	Consensus  json.RawMessage `json:"consensus"`
	Previous   json.RawMessage `json:"previous"`
}

// UnmarshalJSON decodes an event, keeping numbers and booleans as their
// JSON text so {"importance": 3} reads as "3".
func (e *CalendarEvent) UnmarshalJSON(b []byte) error {
	var w calendarEventWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	e.EventID = scalarText(w.EventID)
	e.Title = scalarText(w.Title)
	e.Country = scalarText(w.Country)
	e.Datetime = scalarText(w.Datetime)
	e.Importance = scalarText(w.Importance)
	e.Consensus = scalarText(w.Consensus)
	e.Previous = scalarText(w.Previous)
	return nil
}

// scalarText renders a JSON string, number or boolean as text. Null, objects
// and arrays read as "".
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return ""
		}
		return strconv.FormatBool(v)
	case 'n', '{', '[':
		return ""
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	}
}

// Headline renders "title (country)" with event_id as a fallback title.
func (e CalendarEvent) Headline() string {
	title := e.Title
	if title == "" {
		title = e.EventID
	}
	return fmt.Sprintf("%s (%s)", title, e.Country)
}

// HeatmapCell is one tile of the equity heatmap.
type HeatmapCell struct {
	Code      string
	Name      string
	PctChange *float64
}

// UnmarshalJSON decodes a heatmap tile, degrading a malformed change to nil.
func (c *HeatmapCell) UnmarshalJSON(b []byte) error {
	var w struct {
		Code      string          `json:"code"`
		Name      string          `json:"name"`
		PctChange json.RawMessage `json:"pct_change"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	c.Code = w.Code
	c.Name = w.Name
	c.PctChange = ParseNumber(w.PctChange)
	return nil
}

// MarketSummary carries advancing/declining/unchanged counts.
type MarketSummary struct {
	MarketStatus string `json:"market_status"`
	TotalIndices int    `json:"total_indices"`
	Advancing    int    `json:"advancing"`
	Declining    int    `json:"declining"`
	Unchanged    int    `json:"unchanged"`
}

// ParseNumber reads a JSON number or numeric string. Anything else is nil.
func ParseNumber(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Float returns a pointer to v, for building snapshots in code.
func Float(v float64) *float64 { return &v }
