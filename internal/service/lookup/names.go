// Package lookup holds the static code-to-label tables for the five asset
// classes shown on the wallboard. Tables are read-only; a miss returns the
// raw code.
package lookup

var indexNames = map[string]string{
	"000001.SH": "上证综指",
	"399001.SZ": "深证成指",
	"399006.SZ": "创业板指",
	"000300.SH": "沪深300",
	"000905.SH": "中证500",
	"000852.SH": "中证1000",
	"000016.SH": "上证50",
}

var fxNames = map[string]string{
	"USDCNY.EX": "USD/CNY",
	"EURCNY.EX": "EUR/CNY",
	"HKDCNY.EX": "HKD/CNY",
	"JPYCNY.EX": "JPY/CNY",
	"USDCNH.FX": "USD/CNH",
	"EURUSD.FX": "EUR/USD",
	"USDJPY.FX": "USD/JPY",
	"USDX.FX":   "DXY",
}

var usStockNames = map[string]string{
	"DJI.GI":  "道琼斯",
	"SPX.GI":  "标普500",
	"IXIC.GI": "纳斯达克",
	"AAPL.O":  "苹果",
	"MSFT.O":  "微软",
	"GOOGL.O": "谷歌",
	"TSLA.O":  "特斯拉",
	"AMZN.O":  "亚马逊",
}

var rateNames = map[string]string{
	"M0000017.SH": "10年期国债",
	"M0000025.SH": "5年期国债",
	"M0000007.SH": "3年期国债",
	"M0000001.SH": "1年期国债",
	"UST10Y.GBM":  "美10Y",
	"UST5Y.GBM":   "美5Y",
	"UST2Y.GBM":   "美2Y",
	"UST3M.GBM":   "美3M",
	"TB10Y.WI":    "中10Y",
	"TB5Y.WI":     "中5Y",
	"TB3Y.WI":     "中3Y",
	"TB1Y.WI":     "中1Y",
	"LPR1Y.IR":    "LPR 1Y",
	"LPR5Y.IR":    "LPR 5Y",
}

var commodityNames = map[string]string{
	"GC.CMX":   "COMEX 黄金",
	"SI.CMX":   "COMEX 白银",
	"HG.CMX":   "COMEX 铜",
	"PL.NYM":   "NYMEX 铂金",
	"PA.NYM":   "NYMEX 钯金",
	"CL.NYM":   "WTI 原油",
	"COIL.BR":  "布伦特原油",
	"NG.NYM":   "NYMEX 天然气",
	"ZC.CBT":   "CBOT 玉米",
	"ZS.CBT":   "CBOT 大豆",
	"KC.NYB":   "ICE 咖啡",
	"RB.SHF":   "螺纹钢",
	"RB00.SHF": "螺纹钢",
	"I00.DCE":  "铁矿石",
	"CU00.SHF": "沪铜",
	"AL00.SHF": "沪铝",
	"ZN00.SHF": "沪锌",
	"AU00.SHF": "沪金",
	"AG00.SHF": "沪银",
	"TA.CZC":   "PTA",
}

var commoditySectors = map[string]string{
	"GC.CMX":   "贵金属",
	"SI.CMX":   "贵金属",
	"PL.NYM":   "贵金属",
	"PA.NYM":   "贵金属",
	"HG.CMX":   "基本金属",
	"ALI.CMX":  "基本金属",
	"RB.SHF":   "钢材",
	"RB00.SHF": "钢材",
	"J.DCE":    "钢煤",
	"CL.NYM":   "能源",
	"COIL.BR":  "能源",
	"NG.NYM":   "能源",
	"ZC.CBT":   "农产品",
	"ZS.CBT":   "农产品",
	"KC.NYB":   "软商品",
	"TA.CZC":   "化工",
	"SA.CZC":   "化工",
	"S.CBT":    "农产品",
	"C.CBT":    "农产品",
	"W.CBT":    "农产品",
	"LH.DCE":   "畜牧",
}

func lookup(table map[string]string, code string) string {
	if name, ok := table[code]; ok {
		return name
	}
	return code
}

// IndexName returns the display name of an equity index.
func IndexName(code string) string { return lookup(indexNames, code) }

// FXName returns the pair label of an FX code.
func FXName(code string) string { return lookup(fxNames, code) }

// USStockName returns the display name of a US index or stock.
func USStockName(code string) string { return lookup(usStockNames, code) }

// RateName returns the display name of a bond yield or policy rate.
func RateName(code string) string { return lookup(rateNames, code) }

// CommodityName returns the display name of a commodity contract.
func CommodityName(code string) string { return lookup(commodityNames, code) }

// CommoditySector returns the sector label, or "" when unknown.
func CommoditySector(code string) string { return commoditySectors[code] }
