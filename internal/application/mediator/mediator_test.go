package mediator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingCommand struct{ value string }

type pingHandler struct{}

func (pingHandler) Handle(_ context.Context, request Request) (Response, error) {
	cmd := request.(*pingCommand)
	if cmd.value == "" {
		return nil, errors.New("empty ping")
	}
	return "pong:" + cmd.value, nil
}

func TestMediator_DispatchesToRegisteredHandler(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingCommand](m, pingHandler{}))

	resp, err := m.Send(context.Background(), &pingCommand{value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingCommand](m, pingHandler{}))

	assert.Error(t, RegisterHandler[*pingCommand](m, pingHandler{}))
	_, err := m.Send(context.Background(), &struct{}{})
	assert.Error(t, err)
	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	m := NewMediator()
	require.NoError(t, RegisterHandler[*pingCommand](m, pingHandler{}))
	var trace []string
	record := func(name string) Middleware {
		return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
			trace = append(trace, name+":before")
			resp, err := next(ctx, request)
			trace = append(trace, name+":after")
			return resp, err
		}
	}
	m.RegisterMiddleware(record("outer"))
	m.RegisterMiddleware(record("inner"))

	_, err := m.Send(context.Background(), &pingCommand{value: "x"})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, trace)
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingCommand", RequestName(&pingCommand{}))
	assert.Equal(t, "UnknownRequest", RequestName(nil))
}
