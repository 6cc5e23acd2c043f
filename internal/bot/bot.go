package bot

import (
	"fmt"

	"github.com/eatmoreapple/openwechat"
	"github.com/luckfunc/goldbot/internal/config"
	"github.com/luckfunc/goldbot/internal/handlers"
	"github.com/luckfunc/goldbot/internal/services"
)

// Run logs the bot in and blocks until the session ends.
func Run() error {
	cfg := config.Load()

	bot := openwechat.DefaultBot(openwechat.Desktop)

	// Register QR code callback
	bot.UUIDCallback = openwechat.PrintlnQrcodeUrl

	// 热登录，扫码一次后复用会话
	reloadStorage := openwechat.NewFileHotReloadStorage("storage.json")
	defer reloadStorage.Close()

	if err := bot.HotLogin(reloadStorage, openwechat.NewRetryLoginOption()); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	handler := handlers.New(services.NewGoldService(cfg))
	bot.MessageHandler = handler.HandleGroupMessage

	// Block until exit
	return bot.Block()
}
