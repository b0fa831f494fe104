// Package main 上岸岗位站 API 入口
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shangan/internal/auth"
	"shangan/internal/config"
	"shangan/internal/server"
	"shangan/internal/storage"
	"shangan/pkg/logging"

	// 注册存储后端驱动
	_ "shangan/internal/storage/jsonstore"
	_ "shangan/internal/storage/repository"
)

func main() {
	// 加载配置（自动加载 .env，根据 APP_ENV 切换 YAML 配置）
	cfg := config.Load()

	log.Printf("Starting server... [env=%s]", cfg.Env)
	log.Printf("Config: %s", cfg.String())

	// 初始化存储（进程级单例：建表/建目录 + 管理员播种在此完成）
	store, err := storage.Get(cfg.StoreOptions())
	if err != nil {
		log.Fatalf("Failed to open data store: %v", err)
	}
	defer store.Close()
	log.Printf("Data store ready [driver=%s]", cfg.DataDriver)

	// 会话管理：cookie 值为 HS256 签名令牌，会话行存于数据存储
	sessions := auth.NewSessions(store, auth.CookieConfig{
		Secret: cfg.SessionSecret,
		Secure: cfg.IsProduction(),
	})

	logger := logging.New(logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Output:    "stdout",
		Component: "server",
	})
	h := server.NewHandler(store, sessions, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server stopped")
}
