package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/scalexlabs/marketing-dashboard/internal/chart"
	"github.com/scalexlabs/marketing-dashboard/internal/handler"
	"github.com/scalexlabs/marketing-dashboard/internal/router"
)

func main() {
	_ = godotenv.Load()

	table, err := chart.LoadTable()
	if err != nil {
		log.Fatalf("chart table: %v", err)
	}

	e := echo.New()
	router.RegisterMockAPI(e, &handler.ChartHandler{Table: table})

	port := os.Getenv("MOCKAPI_PORT")
	if port == "" {
		port = "8100"
	}
	addr := ":" + port
	log.Printf("mock chart api listening on %s (%d charts)", addr, len(table))
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
