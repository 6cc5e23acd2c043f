package services

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/luckfunc/goldbot/internal/models"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const (
	spotBaseURL = "http://hq.sinajs.cn/list="
	spotTimeout = 10 * time.Second
)

// spotInstruments maps chat keywords to Sina hq codes.
var spotInstruments = map[string]string{
	"AUTD": "gds_AUTD",
	"AGTD": "gds_AGTD",
	"XAU":  "hf_XAU",
	"XAG":  "hf_XAG",
	"黄金":   "gds_AUTD",
	"白银":   "gds_AGTD",
}

// HandleSpotQuery 处理现货行情查询，格式：现货 AUTD
func HandleSpotQuery(msg Replier, arg string) {
	code, ok := resolveSpotCode(arg)
	if !ok {
		_, _ = msg.ReplyText("请输入正确的现货品种，例如：\n" +
			"现货 AUTD / 现货 XAU / 现货 黄金")
		return
	}

	quote, err := getSpotQuote(code)
	if err != nil {
		slog.Error("spot quote failed", "code", code, "err", err)
		_, _ = msg.ReplyText(fmt.Sprintf("获取现货数据失败: %v", err))
		return
	}
	_, _ = msg.ReplyText(formatSpotMessage(quote))
}

func resolveSpotCode(arg string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(arg))
	code, ok := spotInstruments[key]
	return code, ok
}

// 从新浪财经API获取现货行情
func getSpotQuote(code string) (*models.SpotQuote, error) {
	url := spotBaseURL + code

	client := &http.Client{Timeout: spotTimeout}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// 设置请求头，模拟浏览器访问
	req.Header.Set("Referer", "https://finance.sina.com.cn")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 将 GBK 编码转换为 UTF-8
	decoder := simplifiedchinese.GBK.NewDecoder()
	utf8Body, err := decoder.Bytes(body)
	if err != nil {
		return nil, err
	}

	return parseSpotQuote(string(utf8Body), code)
}

// parseSpotQuote reads the Sina hq comma payload. The quote layout matches
// the stock feed: name, open, previous close, latest, high, low, ...
func parseSpotQuote(data string, code string) (*models.SpotQuote, error) {
	parts := strings.Split(data, "\"")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid spot data")
	}

	values := strings.Split(parts[1], ",")
	if len(values) < 6 {
		return nil, fmt.Errorf("insufficient spot data")
	}

	price, _ := strconv.ParseFloat(values[3], 64)
	prevClose, _ := strconv.ParseFloat(values[2], 64)
	high, _ := strconv.ParseFloat(values[4], 64)
	low, _ := strconv.ParseFloat(values[5], 64)

	change := price - prevClose
	var changePct float64
	if prevClose != 0 {
		changePct = change / prevClose * 100
	}

	return &models.SpotQuote{
		Name:      strings.TrimSpace(values[0]),
		Code:      code,
		Price:     price,
		Change:    change,
		ChangePct: changePct,
		High:      high,
		Low:       low,
	}, nil
}

// 格式化现货消息
func formatSpotMessage(quote *models.SpotQuote) string {
	var trend string
	if quote.Change > 0 {
		trend = "📈"
	} else if quote.Change < 0 {
		trend = "📉"
	} else {
		trend = "➖"
	}

	return fmt.Sprintf("%s %s (%s)\n"+
		"现价：%.2f\n"+
		"涨跌额：%.2f\n"+
		"涨跌幅：%.2f%%\n"+
		"最高：%.2f\n"+
		"最低：%.2f",
		trend, quote.Name, quote.Code,
		quote.Price,
		quote.Change,
		quote.ChangePct,
		quote.High,
		quote.Low)
}
