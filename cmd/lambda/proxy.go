package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

type proxyFunc func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// newProxy は API Gateway のプロキシイベントを h に流す。
// otelhttp で包んだハンドラーをそのまま渡せるよう echo ではなく http.Handler を受ける。
func newProxy(h http.Handler) proxyFunc {
	return httpadapter.New(h).ProxyWithContext
}
