package main

import (
	"context"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/scalexlabs/marketing-dashboard/internal/config"
	"github.com/scalexlabs/marketing-dashboard/internal/database"
	"github.com/scalexlabs/marketing-dashboard/internal/handler"
	"github.com/scalexlabs/marketing-dashboard/internal/kpi"
	"github.com/scalexlabs/marketing-dashboard/internal/middleware"
	"github.com/scalexlabs/marketing-dashboard/internal/repository"
	"github.com/scalexlabs/marketing-dashboard/internal/router"
	"github.com/scalexlabs/marketing-dashboard/internal/secrets"
	queue_publisher "github.com/scalexlabs/marketing-dashboard/internal/service"
	"github.com/scalexlabs/marketing-dashboard/internal/session"
	"github.com/scalexlabs/marketing-dashboard/internal/tenant"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	resolver := secrets.NewManagerResolver(awsCfg)
	directory := tenant.NewDynamoDirectory(awsCfg, cfg.TenantTable)
	connector := database.MySQLConnector{}

	users := &repository.MySQLUserStore{
		Secrets:    resolver,
		Conn:       connector,
		AuthSecret: cfg.AuthDBSecret,
	}
	engine := &kpi.Engine{Conn: connector}

	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		log.Printf("redis unavailable, falling back to in-memory session store")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	auth := &handler.AuthHandler{
		Cfg:      cfg,
		Users:    users,
		Tenants:  directory,
		Secrets:  resolver,
		Sessions: sessions,
		Events:   queue_publisher.NewPublisherFromEnv(),
	}
	dash := &handler.DashboardHandler{Sessions: sessions, KPI: engine}

	e := echo.New()
	e.Renderer = handler.NewRenderer()
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterDashboard(e, auth, dash, sessions, limiter, cfg.Env == "dev")

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
