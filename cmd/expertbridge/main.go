package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	httpServer "ExpertBridge/api/http"
	"ExpertBridge/internal/config"
	"ExpertBridge/internal/initial"
	"ExpertBridge/pkg/zlog"
)

func main() {
	conf := config.GetConfig()
	zlog.Init(conf.LogConfig.LogPath)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		zlog.Info(fmt.Sprintf("server starting, listening on %s", addr))
		if err := httpServer.GE.Run(addr); err != nil {
			zlog.Fatal("server failed to start: " + err.Error())
			return
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")
	initial.Close()
	zlog.Info("server stopped")
}
