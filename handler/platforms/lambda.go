package platforms

import (
	"context"
	"encoding/base64"
	"net/http"

	"recontracker/handler"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// LambdaAdapter adapts the handler to API Gateway proxy events.
type LambdaAdapter struct {
	handler *handler.Handler
}

// NewLambdaAdapter creates a new Lambda adapter
func NewLambdaAdapter(h *handler.Handler) *LambdaAdapter {
	return &LambdaAdapter{handler: h}
}

// Start hands control to the Lambda runtime. It does not return.
func (a *LambdaAdapter) Start() {
	lambda.Start(a.HandleEvent)
}

// HandleEvent serves one API Gateway proxy event.
func (a *LambdaAdapter) HandleEvent(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if event.HTTPMethod == http.MethodOptions {
		return a.response(http.StatusNoContent, nil, ""), nil
	}

	if event.Path == healthPath {
		status, body := checkHealth(ctx, a.handler)
		return a.response(status, map[string]string{"Content-Type": "application/json"}, string(body)), nil
	}

	req, err := a.buildRequest(event)
	if err != nil {
		status, headers, body := encodeResponse(handler.NewErrorResponse(req.ID,
			http.StatusBadRequest, handler.CodeValidation, "Failed to read request body", err.Error()), nil)
		return a.response(status, headers, string(body)), nil
	}

	if limit := a.handler.Config().MaxRequestSize; limit > 0 && int64(len(req.Payload)) > limit {
		status, headers, body := encodeResponse(handler.NewErrorResponse(req.ID,
			http.StatusBadRequest, handler.CodeValidation, "Failed to read request body", "request body too large"), nil)
		return a.response(status, headers, string(body)), nil
	}

	resp, err := a.handler.Handle(ctx, req)
	status, headers, body := encodeResponse(resp, err)
	return a.response(status, headers, string(body)), nil
}

// buildRequest converts a proxy event into a handler.Request.
func (a *LambdaAdapter) buildRequest(event events.APIGatewayProxyRequest) (handler.Request, error) {
	req := handler.NewRequest("lambda", event.HTTPMethod, event.Path, nil)

	headers := make(map[string]string, len(event.Headers))
	for key, value := range event.Headers {
		headers[http.CanonicalHeaderKey(key)] = value
	}

	if id := headers[http.CanonicalHeaderKey(requestIDHeader)]; id != "" {
		req.ID = id
	} else if event.RequestContext.RequestID != "" {
		req.ID = event.RequestContext.RequestID
	}

	for key, value := range event.QueryStringParameters {
		req.Query[key] = value
	}

	for _, name := range traceHeaders {
		if value := headers[http.CanonicalHeaderKey(name)]; value != "" {
			req.SetMetadata(headerKey(name), value)
		}
	}
	req.SetMetadata("remote_addr", event.RequestContext.Identity.SourceIP)

	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return req, err
		}
		req.Payload = decoded
		return req, nil
	}
	if event.Body != "" {
		req.Payload = []byte(event.Body)
	}

	return req, nil
}

func (a *LambdaAdapter) response(status int, headers map[string]string, body string) events.APIGatewayProxyResponse {
	all := make(map[string]string, len(corsHeaders)+len(headers))
	for key, value := range corsHeaders {
		all[key] = value
	}
	for key, value := range headers {
		all[key] = value
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    all,
		Body:       body,
	}
}
