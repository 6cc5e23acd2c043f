package services

import (
	"context"
	"encoding/base64"
	"html/template"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/luckfunc/goldbot/internal/models"
	"github.com/shopspring/decimal"
)

const goldImageWidth = 1080

type goldRowView struct {
	Title string
	Price string
	Pct   string
	High  string
	Low   string
	Class string
}

type goldView struct {
	Title     string
	Timestamp string
	Source    string
	Rows      []goldRowView
}

func renderGoldImage(report *models.GoldReport) ([]byte, error) {
	view := buildGoldView(report)
	html, err := renderGoldHTML(view)
	if err != nil {
		return nil, err
	}
	height := estimateGoldHeight(len(view.Rows))
	return renderHTMLToPNG(html, goldImageWidth, height)
}

func buildGoldView(report *models.GoldReport) goldView {
	view := goldView{
		Title:     "实时黄金价格 TOP5",
		Timestamp: trimTimeFraction(report.Time),
		Source:    report.APISource,
		Rows:      make([]goldRowView, 0, len(report.Entries)),
	}
	for _, entry := range report.Entries {
		view.Rows = append(view.Rows, goldRowView{
			Title: entry.Title,
			Price: entry.Price,
			Pct:   entry.ChangePercent + "%",
			High:  entry.MaxPrice,
			Low:   entry.MinPrice,
			Class: trendClass(entry.ChangePercent),
		})
	}
	return view
}

func renderGoldHTML(view goldView) (string, error) {
	tpl, err := template.New("gold").Parse(goldHTMLTemplate)
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	if err := tpl.Execute(&builder, view); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// trendClass mirrors formatChange's sign classification for CSS.
func trendClass(change string) string {
	val, err := decimal.NewFromString(strings.TrimSpace(change))
	if err != nil {
		return "flat"
	}
	switch val.Sign() {
	case 1:
		return "up"
	case -1:
		return "down"
	default:
		return "flat"
	}
}

func estimateGoldHeight(rows int) int64 {
	const (
		basePadding    = 80
		titleHeight    = 42
		headerHeight   = 44
		rowHeight      = 48
		footerHeight   = 28
		sectionSpacing = 18
	)
	if rows < 1 {
		rows = 1
	}
	height := basePadding + titleHeight + headerHeight + footerHeight + sectionSpacing*2
	height += rows * rowHeight
	return int64(height)
}

func renderHTMLToPNG(html string, width int, height int64) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.EmulateViewport(int64(width), height),
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(200*time.Millisecond),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

const goldHTMLTemplate = `<!DOCTYPE html>
<html lang="zh">
<head>
  <meta charset="UTF-8" />
  <style>
    :root {
      --bg: #ffffff;
      --text: #1f1f1f;
      --muted: #6f6f6f;
      --line: #f0f0f0;
      --header: #f7f7f7;
      --up: #d83a3a;
      --down: #1ca05c;
      --flat: #8f8f8f;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      background: var(--bg);
      font-family: "PingFang SC", "PingFang TC", "Microsoft Yahei", sans-serif;
      color: var(--text);
    }
    .container {
      width: 1000px;
      padding: 32px 40px 36px 40px;
    }
    .title {
      font-size: 30px;
      font-weight: 600;
      margin-bottom: 18px;
    }
    .table {
      width: 100%;
      border-collapse: collapse;
      font-size: 18px;
    }
    .table thead th {
      background: var(--header);
      color: var(--muted);
      font-weight: 500;
      padding: 12px 12px;
      text-align: left;
      border-bottom: 1px solid var(--line);
    }
    .table tbody td {
      padding: 14px 12px;
      border-bottom: 1px solid var(--line);
    }
    .table tbody tr:nth-child(even) td {
      background: #fbfbfb;
    }
    .num { text-align: left; font-variant-numeric: tabular-nums; }
    .up { color: var(--up); }
    .down { color: var(--down); }
    .flat { color: var(--flat); }
    .footer {
      margin-top: 12px;
      font-size: 14px;
      color: var(--muted);
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="title">{{.Title}}</div>
    <table class="table">
      <thead>
        <tr>
          <th>品种</th>
          <th>现价（元/克）</th>
          <th>涨跌幅</th>
          <th>最高</th>
          <th>最低</th>
        </tr>
      </thead>
      <tbody>
        {{range .Rows}}
        <tr>
          <td>{{.Title}}</td>
          <td class="num">{{.Price}}</td>
          <td class="num {{.Class}}">{{.Pct}}</td>
          <td class="num">{{.High}}</td>
          <td class="num">{{.Low}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="footer">更新时间：{{.Timestamp}}{{if .Source}} · 数据来源：{{.Source}}{{end}}</div>
  </div>
</body>
</html>`
