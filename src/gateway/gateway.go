package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/learnloop/tutor-gateway/src/agents"
	"github.com/learnloop/tutor-gateway/src/decision"
	"github.com/learnloop/tutor-gateway/src/gateway/config"
	"github.com/learnloop/tutor-gateway/src/gateway/data"
	"github.com/learnloop/tutor-gateway/src/gateway/types"
	"github.com/learnloop/tutor-gateway/src/gateway/webserver"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&types.UserActivity{},
	&types.AgentOutcome{},
	&types.LearningInsight{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	rdb := data.MustRedis(cfg.RedisURL)

	agentClient := agents.New(cfg.AgentBaseURL, cfg.AgentTimeout, cfg.AgentMaxRetries)
	router := decision.NewRouter(agentClient)
	sink := data.NewStore(db, rdb)

	engine := webserver.New(router, sink)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Tutor Gateway listening on %s (agents at %s)", cfg.Port, cfg.AgentBaseURL)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
