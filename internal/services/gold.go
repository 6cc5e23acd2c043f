package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/eatmoreapple/openwechat"
	"github.com/luckfunc/goldbot/internal/config"
)

// Replier is the slice of the host runtime a command needs: deliver text back
// to the chat that triggered it.
type Replier interface {
	ReplyText(content string) (*openwechat.SentMessage, error)
}

// ImageReplier additionally delivers a picture.
type ImageReplier interface {
	Replier
	ReplyImage(file io.Reader) (*openwechat.SentMessage, error)
}

// GoldService wires the fetch/validate/render pipeline behind chat commands.
// It holds no per-invocation state; concurrent commands are independent.
type GoldService struct {
	client *GoldClient
	layout config.Layout
}

func NewGoldService(cfg *config.Config) *GoldService {
	return &GoldService{
		client: NewGoldClient(cfg),
		layout: cfg.Layout,
	}
}

const waitingNotice = "⏳ 正在获取黄金行情..."

// HandleQuery serves the gold command: waiting notice, one fetch, one reply.
func (s *GoldService) HandleQuery(msg Replier) {
	_, _ = msg.ReplyText(waitingNotice)

	raw, err := s.client.Fetch(context.Background())
	if err != nil {
		_, _ = msg.ReplyText(UserMessage(err))
		return
	}
	text, err := FormatGoldFeed(raw, s.layout)
	if err != nil {
		_, _ = msg.ReplyText(UserMessage(err))
		return
	}
	_, _ = msg.ReplyText(text)
}

// HandleImageQuery serves 金价图: the same pipeline rendered as a PNG table.
// Falls back to the text reply when headless Chrome is unavailable.
func (s *GoldService) HandleImageQuery(msg ImageReplier) {
	_, _ = msg.ReplyText(waitingNotice)

	raw, err := s.client.Fetch(context.Background())
	if err != nil {
		_, _ = msg.ReplyText(UserMessage(err))
		return
	}
	report, err := ParseGoldFeed(raw)
	if err != nil {
		_, _ = msg.ReplyText(UserMessage(err))
		return
	}
	if len(report.Entries) == 0 {
		_, _ = msg.ReplyText(noDataMessage)
		return
	}

	image, err := renderGoldImage(report)
	if err != nil {
		slog.Warn("gold image render failed, falling back to text", "err", err)
		_, _ = msg.ReplyText(RenderGoldReport(report, s.layout))
		return
	}
	_, _ = msg.ReplyImage(bytes.NewReader(image))
}

// HandleHelp replies the static usage text. No network call.
func (s *GoldService) HandleHelp(msg Replier) {
	_, _ = msg.ReplyText(goldHelpText)
}

var goldHelpText = strings.Join([]string{
	"📘 使用说明：",
	"金价 / gold          - 获取实时黄金价格",
	"金价图               - 获取黄金价格图片",
	"现货 AUTD            - 查询单个现货品种",
	"金价帮助 / gold_help - 显示本帮助信息",
	strings.Repeat("━", 20),
	"数据包含：",
	"• 黄金延期 • 迷你黄金延期",
	"• AU9999   • 沪金95",
	"• 沪铂95   • 更多...",
}, "\n")
