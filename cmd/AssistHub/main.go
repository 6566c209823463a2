package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	https_server "AssistHub/api/http"
	"AssistHub/internal/config"
	"AssistHub/pkg/zlog"
)

func main() {
	conf := config.GetConfig()
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port

	if err := https_server.Scheduler.Start(); err != nil {
		zlog.Fatal("scheduler start failed: " + err.Error())
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		zlog.Info("server listening on " + addr)
		if err := https_server.GE.Run(addr); err != nil {
			zlog.Fatal("server start failed: " + err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	https_server.Scheduler.Stop()
	zlog.Info("server stopped")
}
