package main

import (
	"werewolf-be/internal/api/http"
	"werewolf-be/internal/config"
	"werewolf-be/internal/logger"
	"werewolf-be/internal/state"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)
	defer zap.L().Sync()

	// 组装应用状态
	appState := state.NewAppState(cfg)
	defer appState.Close()

	// 启动服务器
	if err := http.RunServer(appState); err != nil {
		zap.L().Error("HTTP 服务异常退出", zap.Error(err))
	}
}
