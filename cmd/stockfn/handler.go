// cmd/stockfn/handler.go
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/handlers"
	"github.com/ammerola/picking-be/internal/pkg/logger"
)

var responseHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// stockFunction answers API Gateway proxy events with the same contract as GET /stock
type stockFunction struct {
	service ports.StockService
	logger  *slog.Logger
}

func (f *stockFunction) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: responseHeaders}, nil
	}

	barcode := req.QueryStringParameters["barcode"]
	ctx = context.WithValue(ctx, logger.ContextKeyBarcode, barcode)
	if id := req.RequestContext.RequestID; id != "" {
		ctx = context.WithValue(ctx, logger.ContextKeyRequestID, id)
	}

	status, body := handlers.StockResponse(f.service.Lookup(ctx, barcode))

	data, err := json.Marshal(body)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to encode stock response", slog.String("error", err.Error()))
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    responseHeaders,
			Body:       `{"error":"failed to encode response"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders,
		Body:       string(data),
	}, nil
}
