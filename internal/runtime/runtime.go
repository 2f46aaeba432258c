// Package runtime adapts the voucher handler to the Lambda payload types and to net/http.
package runtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/fallsafe/voucher-email/internal/handler"
	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/fallsafe/voucher-email/internal/models"
)

// Lambda payload types.
const (
	PayloadTypeAPIGatewayV1 = "api-gateway-v1"
	PayloadTypeAPIGatewayV2 = "api-gateway-v2"
	PayloadTypeLambdaURL    = "lambda-url"
)

// maxBodyBytes bounds request bodies read in service mode.
const maxBodyBytes = 1 << 20

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithPayloadType sets the response shape returned by HandleEvent.
func WithPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.payloadType = payloadType
	}
}

// WithFlush registers a function called after every Lambda invocation, such as a Sentry flush.
func WithFlush(flush func()) Option {
	return func(r *Runtime) {
		r.flush = flush
	}
}

type Runtime struct {
	*handler.Handler
	logger      *slog.Logger
	payloadType string
	flush       func()
}

// NewRuntime creates a new runtime instance
func NewRuntime(handler *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{
		Handler:     handler,
		payloadType: PayloadTypeAPIGatewayV1,
		flush:       func() {},
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// HandleEvent is the Lambda handler for the runtime. The returned error is always nil:
// failures are reported through the response status code.
func (r *Runtime) HandleEvent(ctx context.Context, raw json.RawMessage) (any, error) {
	defer r.flush()

	logger := r.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With(slog.String("requestId", lc.AwsRequestID))
	}
	logger.Info("received lambda invocation", slog.String("payloadType", r.payloadType))

	response := r.Handler.Handle(ctx, raw)
	logger.Info("handled invocation", slog.Int("statusCode", response.StatusCode))
	return r.shape(logger, response), nil
}

func (r *Runtime) shape(logger *slog.Logger, response models.Response) any {
	switch r.payloadType {
	case PayloadTypeAPIGatewayV1:
		return events.APIGatewayProxyResponse{
			Body:       response.Body,
			Headers:    response.Headers,
			StatusCode: response.StatusCode,
		}
	case PayloadTypeAPIGatewayV2:
		return events.APIGatewayV2HTTPResponse{
			Body:       response.Body,
			Headers:    response.Headers,
			StatusCode: response.StatusCode,
		}
	case PayloadTypeLambdaURL:
		return events.LambdaFunctionURLResponse{
			Body:       response.Body,
			Headers:    response.Headers,
			StatusCode: response.StatusCode,
		}
	default:
		logger.Error("unsupported lambda payload type", slog.String("payloadType", r.payloadType))
		return events.APIGatewayProxyResponse{
			Body:       `{"error":"Unexpected error: unsupported lambda payload type"}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
			StatusCode: http.StatusInternalServerError,
		}
	}
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		resp.Header().Set("Allow", http.MethodPost)
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, resp)
		return
	}

	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))
	body, err := io.ReadAll(http.MaxBytesReader(resp, req.Body, maxBodyBytes))
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{
			Body:       `{"error":"Invalid input format"}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
			StatusCode: http.StatusBadRequest,
		}, resp)
		return
	}

	helpers.RespondHTTP(r.Handler.Handle(req.Context(), body), resp)
}
