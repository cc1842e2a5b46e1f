package common_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/recipe-resolver/internal/application/common"
)

type pingQuery struct{ Value string }

type pingHandler struct{ err error }

func (h *pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if h.err != nil {
		return nil, h.err
	}
	return "pong:" + request.(*pingQuery).Value, nil
}

// memoryLogger keeps every entry it receives
type memoryLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *memoryLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+" "+message+" "+metadata["request"].(string))
}

func TestMediator_SendDispatchesByRequestType(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))

	// Act
	response, err := m.Send(context.Background(), &pingQuery{Value: "x"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong:x", response)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))

	assert.Error(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))
	_, err := m.Send(context.Background(), &struct{}{})
	assert.Error(t, err)
	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_FirstMiddlewareIsOutermost(t *testing.T) {
	// Arrange
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](m, &pingHandler{}))

	var order []string
	trace := func(name string) common.Middleware {
		return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
			order = append(order, name+":before")
			response, err := next(ctx, request)
			order = append(order, name+":after")
			return response, err
		}
	}
	m.RegisterMiddleware(trace("outer"))
	m.RegisterMiddleware(trace("inner"))

	// Act
	_, err := m.Send(context.Background(), &pingQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, order)
}

func TestLoggingMiddleware_LogsOutcome(t *testing.T) {
	// Arrange
	logger := &memoryLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	ok := common.NewMediator()
	ok.RegisterMiddleware(common.LoggingMiddleware())
	require.NoError(t, common.RegisterHandler[*pingQuery](ok, &pingHandler{}))

	failing := common.NewMediator()
	failing.RegisterMiddleware(common.LoggingMiddleware())
	require.NoError(t, common.RegisterHandler[*pingQuery](failing, &pingHandler{err: errors.New("boom")}))

	// Act
	_, okErr := ok.Send(ctx, &pingQuery{})
	_, failErr := failing.Send(ctx, &pingQuery{})

	// Assert
	require.NoError(t, okErr)
	require.Error(t, failErr)
	assert.Equal(t, []string{
		"DEBUG Request handled pingQuery",
		"ERROR Request failed pingQuery",
	}, logger.entries)
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingQuery", common.RequestName(&pingQuery{}))
	assert.Equal(t, "pingQuery", common.RequestName(pingQuery{}))
	assert.Equal(t, "UnknownRequest", common.RequestName(nil))
}

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())

	assert.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Log("INFO", "ignored", nil) })
}
