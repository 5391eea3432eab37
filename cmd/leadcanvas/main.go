package main

import (
	"log"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/joho/godotenv"

	"github.com/leadcanvas/leadcanvas/internal/container"
	"github.com/leadcanvas/leadcanvas/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	c := container.New()

	handler := router.New(router.RouterConfig{
		UserHandler:           c.UserContainer.Handler,
		ThemeHandler:          c.ThemeContainer.Handler,
		HypothesisHandler:     c.HypothesisContainer.Handler,
		ProgressHandler:       c.ProgressContainer.Handler,
		SettingsHandler:       c.SettingsContainer.Handler,
		NudgeHandler:          c.NudgeContainer.Handler,
		NudgeScheduledHandler: c.NudgeContainer.ScheduledHandler,
		SummaryHandler:        c.SummaryContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := chiadapter.New(handler)
		lambda.Start(adapter.ProxyWithContext)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
