package models

// List is a rendered collection. Empty holds the placeholder message shown
// when the source group had no data.
type List[T any] struct {
	Items []T    `json:"items"`
	Empty string `json:"empty,omitempty"`
}

// MiniItem is a compact tile on the overview scene.
type MiniItem struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Change    string    `json:"change"`
	Direction Direction `json:"direction"`
}

// DetailedIndex is a full index card on the heatmap scene.
type DetailedIndex struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Change    string    `json:"change"`
	ChangePct string    `json:"change_pct"`
	Volume    string    `json:"volume"`
	Direction Direction `json:"direction"`
}

// StockItem is a US market tile.
type StockItem struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Change    string    `json:"change"`
	Direction Direction `json:"direction"`
}

// RateItem is a government bond or policy rate tile.
type RateItem struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	Change    string    `json:"change"`
	Direction Direction `json:"direction"`
}

// CommodityItem is a commodity tile with its sector label.
type CommodityItem struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	Price     string    `json:"price"`
	Change    string    `json:"change"`
	Direction Direction `json:"direction"`
}

// HeatItem is one heatmap cell.
type HeatItem struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Change    string    `json:"change"`
	Direction Direction `json:"direction"`
}

// NewsItem is a timed line on the news banner or calendar.
type NewsItem struct {
	Time    string `json:"time"`
	Content string `json:"content"`
}

// MarketStats are the advancing/declining/unchanged counters.
type MarketStats struct {
	Advancing string `json:"advancing"`
	Declining string `json:"declining"`
	Unchanged string `json:"unchanged"`
}

// ScenePayloads is everything rendered from a single Snapshot.
type ScenePayloads struct {
	IndicesMini     List[MiniItem]      `json:"indices_mini"`
	FXMini          List[MiniItem]      `json:"fx_mini"`
	IndicesDetailed List[DetailedIndex] `json:"indices_detailed"`
	Stats           MarketStats         `json:"stats"`
	Heatmap         List[HeatItem]      `json:"heatmap"`
	Rates           List[RateItem]      `json:"rates"`
	Commodities     List[CommodityItem] `json:"commodities"`
	USStocks        List[StockItem]     `json:"us_stocks"`
	News            []NewsItem          `json:"news"`
	Calendar        List[NewsItem]      `json:"calendar"`
	// Marquee is empty when there was nothing to scroll; displays keep the
	// previous text in that case.
	Marquee string `json:"marquee,omitempty"`
}
