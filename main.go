package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"

	_ "github.com/K1ssSh0t/url-shortener/config"
	_ "github.com/K1ssSh0t/url-shortener/docs"
	"github.com/K1ssSh0t/url-shortener/handlers"
	"github.com/K1ssSh0t/url-shortener/logger"
	"github.com/K1ssSh0t/url-shortener/middlewares"
	"github.com/K1ssSh0t/url-shortener/store"
)

//	@title			URL Shortener API
//	@version		1.0
//	@description	Shortens URLs, redirects visitors and counts clicks.
//	@BasePath		/api/v1
func main() {
	logg := logger.New(logger.Config{
		Level:  viper.GetString("LOG_LEVEL"),
		Format: viper.GetString("LOG_FORMAT"),
	})

	cfg := storeConfig()
	st, err := store.Open(cfg)
	if err != nil {
		logg.Error("Fail to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Ping(context.Background()); err != nil {
		logg.Error("Fail to reach store", "error", err)
		os.Exit(1)
	}

	r := gin.New()
	r.Use(middlewares.RequestID(), middlewares.RequestLogger(logg), gin.Recovery())

	r.GET("/", handlers.Greet)
	r.GET("/ui", handlers.DocsUI)
	r.GET("/ui/doc.json", handlers.DocJSON)

	handlers.NewShortenerHandler(&r.RouterGroup, st, logg)

	svr := http.Server{
		Addr:    viper.GetString("APP_PORT"),
		Handler: r,
	}

	go func() {
		if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("Fail to start server", "error", err)
			os.Exit(1)
		}
	}()

	logg.Info("server started", "addr", svr.Addr, "driver", cfg.Driver)

	quit := make(chan os.Signal, 1)
	// Relay incoming SIGTERM, SIGINT to quit
	signal.Notify(quit, syscall.SIGTERM, os.Interrupt)
	<-quit
	logg.Info("shutting down server")

	// The context is used to inform the application it has 30 seconds to finish
	// cleaning up remaining resources
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		logg.Error("Server forced to shutdown", "error", err)
	}
}

func storeConfig() store.Config {
	driver := viper.GetString("STORE_DRIVER")
	dsn := viper.GetString("DATABASE_URL")
	if driver == "sqlite3" {
		dsn = viper.GetString("SQLITE_PATH")
	}

	return store.Config{
		Driver:      driver,
		DSN:         dsn,
		RedisAddr:   viper.GetString("REDIS_ADDR"),
		AutoMigrate: viper.GetBool("AUTO_MIGRATE"),
	}
}
