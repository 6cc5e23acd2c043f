package main

import (
	"log/slog"
	"os"

	"github.com/luckfunc/goldbot/internal/bot"
	"github.com/luckfunc/goldbot/internal/logger"
)

func main() {
	logger.Init()
	if err := bot.Run(); err != nil {
		slog.Error("bot exited", "err", err)
		os.Exit(1)
	}
}
