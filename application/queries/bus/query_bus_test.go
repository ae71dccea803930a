package bus

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingQuery struct {
	Name string
}

func (q pingQuery) Validate() error {
	if q.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type recordingMetrics struct {
	operations []string
	errs       []error
}

func (m *recordingMetrics) ObserveOperation(operation string, _ time.Duration, err error) {
	m.operations = append(m.operations, operation)
	m.errs = append(m.errs, err)
}

func TestQueryBus_Ask(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return "pong " + q.(pingQuery).Name, nil
	})))

	result, err := b.Ask(context.Background(), pingQuery{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "pong a", result)
}

func TestQueryBus_ValidationRunsFirst(t *testing.T) {
	called := false
	b := NewQueryBus(Guard(func(context.Context) error {
		called = true
		return nil
	}))
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		called = true
		return nil, nil
	})))

	_, err := b.Ask(context.Background(), pingQuery{})
	assert.ErrorContains(t, err, "name is required")
	assert.False(t, called)
}

func TestQueryBus_GuardStopsHandler(t *testing.T) {
	errClosed := errors.New("closed")
	handled := false
	b := NewQueryBus(Guard(func(context.Context) error { return errClosed }))
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		handled = true
		return nil, nil
	})))

	_, err := b.Ask(context.Background(), pingQuery{Name: "a"})
	assert.ErrorIs(t, err, errClosed)
	assert.False(t, handled)
}

func TestQueryBus_MetricsMiddleware(t *testing.T) {
	metrics := &recordingMetrics{}
	b := NewQueryBus(MetricsMiddleware(metrics))
	boom := errors.New("boom")
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return nil, boom
	})))

	_, err := b.Ask(context.Background(), pingQuery{Name: "a"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"pingQuery"}, metrics.operations)
	assert.Equal(t, []error{boom}, metrics.errs)
}

func TestQueryBus_RegisterTwice(t *testing.T) {
	b := NewQueryBus()
	h := QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) { return nil, nil })

	require.NoError(t, b.Register(pingQuery{}, h))
	assert.Error(t, b.Register(pingQuery{}, h))
}

func TestQueryBus_Unregistered(t *testing.T) {
	_, err := NewQueryBus().Ask(context.Background(), pingQuery{Name: "a"})
	assert.Error(t, err)
}

type spanRecorder struct {
	names []string
}

func (s *spanRecorder) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	s.names = append(s.names, name)
	return fn(ctx)
}

func TestQueryBus_TracingMiddleware(t *testing.T) {
	spans := &spanRecorder{}
	b := NewQueryBus(TracingMiddleware(spans))
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return 42, nil
	})))

	result, err := b.Ask(context.Background(), pingQuery{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, []string{"pingQuery"}, spans.names)
}

type memoryLogger struct {
	entries []string
}

func (l *memoryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entries = append(l.entries, msg)
}

func (l *memoryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entries = append(l.entries, fmt.Sprintf("error: %s", msg))
}

func TestQueryBus_LoggingMiddleware(t *testing.T) {
	logger := &memoryLogger{}
	b := NewQueryBus(LoggingMiddleware(logger))
	require.NoError(t, b.Register(pingQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		if q.(pingQuery).Name == "down" {
			return nil, errors.New("upstream down")
		}
		return "pong", nil
	})))

	_, err := b.Ask(context.Background(), pingQuery{Name: "a"})
	require.NoError(t, err)
	_, err = b.Ask(context.Background(), pingQuery{Name: "down"})
	require.Error(t, err)

	assert.Equal(t, []string{"Executing query", "Executing query", "error: Query failed"}, logger.entries)
}
