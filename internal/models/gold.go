package models

// GoldQuote is one instrument row as the feed delivers it. Every field is a
// pointer so a row missing any of them can be skipped on its own instead of
// failing the whole payload.
type GoldQuote struct {
	Title         *string `json:"title"`
	Price         *string `json:"price"`
	ChangePercent *string `json:"changepercent"`
	MaxPrice      *string `json:"maxprice"`
	MinPrice      *string `json:"minprice"`
}

// GoldEntry is a quote whose required fields were all present.
type GoldEntry struct {
	Title         string
	Price         string
	ChangePercent string
	MaxPrice      string
	MinPrice      string
}

// GoldReport is a validated feed ready for rendering.
type GoldReport struct {
	Entries   []GoldEntry
	Time      string
	APISource string
}
