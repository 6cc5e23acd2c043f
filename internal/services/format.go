package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/luckfunc/goldbot/internal/config"
	"github.com/luckfunc/goldbot/internal/models"
	"github.com/shopspring/decimal"
)

const (
	topQuoteCount = 5
	feedOKCode    = 200

	noDataMessage = "🕒 当前无黄金行情数据"
	unknownTime   = "未知时间"
	unknownSource = "未知来源"
)

// ParseGoldFeed validates the feed envelope and collects the rows that carry
// every required field. Rows missing a field are logged and dropped; they
// never fail the payload.
func ParseGoldFeed(raw json.RawMessage) (*models.GoldReport, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		slog.Error("gold feed is not a JSON object", "err", err)
		return nil, &FeedError{Kind: KindMalformedShape, Detail: "响应不是 JSON 对象", Err: err}
	}

	codeRaw, ok := payload["code"]
	if !ok {
		slog.Error("gold feed missing code field")
		return nil, &FeedError{Kind: KindMalformedShape, Detail: "缺少 code 字段"}
	}
	var code int
	if err := json.Unmarshal(codeRaw, &code); err != nil {
		slog.Error("gold feed code field has wrong type", "err", err)
		return nil, &FeedError{Kind: KindMalformedShape, Detail: "code 字段类型异常", Err: err}
	}
	// A well-formed envelope reporting failure wins over a missing data key,
	// so the upstream message reaches the user.
	if code != feedOKCode {
		msg := remoteMessage(payload)
		slog.Error("gold feed reported failure", "code", code, "msg", msg)
		return nil, &FeedError{Kind: KindRemote, Detail: msg}
	}

	dataRaw, ok := payload["data"]
	if !ok {
		slog.Error("gold feed missing data field")
		return nil, &FeedError{Kind: KindMalformedShape, Detail: "缺少 data 字段"}
	}
	// json turns a literal null into a nil slice; null is not a sequence.
	if string(bytes.TrimSpace(dataRaw)) == "null" {
		slog.Error("gold feed data is null")
		return nil, &FeedError{Kind: KindMalformedShape, Detail: "data 字段类型异常"}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(dataRaw, &items); err != nil {
		slog.Error("gold feed data is not a list", "err", err)
		return nil, &FeedError{Kind: KindMalformedShape, Detail: "data 字段类型异常", Err: err}
	}

	if len(items) > topQuoteCount {
		items = items[:topQuoteCount]
	}

	report := &models.GoldReport{
		Time:      stringField(payload, "time"),
		APISource: stringField(payload, "api_source"),
	}
	// Rows are decoded one by one so a single bad row cannot take down the
	// whole payload.
	for _, item := range items {
		var q models.GoldQuote
		if err := json.Unmarshal(item, &q); err != nil {
			slog.Warn("gold quote has wrong field types, skipped", "err", err)
			continue
		}
		entry, ok := completeQuote(q)
		if !ok {
			slog.Warn("gold quote missing fields, skipped", "title", orEmpty(q.Title))
			continue
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

// FormatGoldFeed renders the raw feed into the text reply.
func FormatGoldFeed(raw json.RawMessage, layout config.Layout) (string, error) {
	report, err := ParseGoldFeed(raw)
	if err != nil {
		return "", err
	}
	return RenderGoldReport(report, layout), nil
}

// RenderGoldReport assembles the reply text. Rendering reads no clock: the
// same report always yields the same text.
func RenderGoldReport(report *models.GoldReport, layout config.Layout) string {
	if len(report.Entries) == 0 {
		return noDataMessage
	}

	feedTime := trimTimeFraction(report.Time)

	parts := []string{"💰【实时黄金价格TOP5】💰\n"}
	for _, entry := range report.Entries {
		block := fmt.Sprintf("🔸 %s\n"+
			"  现价：%s元/克\n"+
			"  涨跌：%s\n"+
			"  最高：%s | 最低：%s\n",
			entry.Title,
			entry.Price,
			formatChange(entry.ChangePercent),
			entry.MaxPrice, entry.MinPrice)
		if layout == config.LayoutInline {
			block += "  时间：" + feedTime + "\n"
		}
		block += "🍞" + strings.Repeat("━", 20)
		parts = append(parts, block)
	}

	switch layout {
	case config.LayoutInline:
		source := report.APISource
		if source == "" {
			source = unknownSource
		}
		parts = append(parts, "\n📡 数据来源："+source)
	default:
		parts = append(parts, "\n⏰ 更新时间："+feedTime)
	}
	return strings.Join(parts, "\n")
}

// formatChange tags the percentage with a trend marker. Values the feed sends
// malformed are shown as-is rather than dropping the row.
func formatChange(change string) string {
	val, err := decimal.NewFromString(strings.TrimSpace(change))
	if err != nil {
		slog.Warn("unparseable changepercent", "value", change)
		return change
	}
	switch val.Sign() {
	case 1:
		return "📈 +" + change + "%"
	case -1:
		// 负值自带符号
		return "📉 " + change + "%"
	default:
		return "➖ " + change + "%"
	}
}

func remoteMessage(payload map[string]json.RawMessage) string {
	if msg := stringField(payload, "msg"); msg != "" {
		return msg
	}
	return "未知错误"
}

func stringField(payload map[string]json.RawMessage, key string) string {
	raw, ok := payload[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func completeQuote(q models.GoldQuote) (models.GoldEntry, bool) {
	if q.Title == nil || q.Price == nil || q.ChangePercent == nil || q.MaxPrice == nil || q.MinPrice == nil {
		return models.GoldEntry{}, false
	}
	return models.GoldEntry{
		Title:         *q.Title,
		Price:         *q.Price,
		ChangePercent: *q.ChangePercent,
		MaxPrice:      *q.MaxPrice,
		MinPrice:      *q.MinPrice,
	}, true
}

// trimTimeFraction drops the fractional seconds the feed sometimes appends.
func trimTimeFraction(t string) string {
	if t == "" {
		return unknownTime
	}
	return strings.SplitN(t, ".", 2)[0]
}

func orEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
