package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jwehrle/salescockpit/internal/container"
	"github.com/jwehrle/salescockpit/internal/router"
)

var chiLambda *chiadapter.ChiLambda

func buildRouter() *chi.Mux {
	c := container.New()

	return router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		EntryHandler:     c.EntryContainer.Handler,
		DashboardHandler: c.DashboardContainer.Handler,
	})
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return chiLambda.ProxyWithContext(ctx, req)
}

func main() {
	_ = godotenv.Load()

	r := buildRouter()

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		chiLambda = chiadapter.New(r)
		lambda.Start(handler)
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.WithField("port", port).Info("Starting HTTP server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.WithError(err).Fatal("HTTP server stopped")
	}
}
