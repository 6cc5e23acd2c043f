package models

// SpotQuote 现货行情数据
type SpotQuote struct {
	Name      string  // 品种名称
	Code      string  // 新浪行情代码
	Price     float64 // 最新价
	Change    float64 // 涨跌额
	ChangePct float64 // 涨跌幅
	High      float64 // 最高价
	Low       float64 // 最低价
}
