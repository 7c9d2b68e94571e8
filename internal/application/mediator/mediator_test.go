package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/takeoff-go/internal/application/mediator"
)

type pingQuery struct{ Name string }

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	err := mediator.RegisterHandler[*pingQuery](m, mediator.HandlerFunc(func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return "pong " + r.(*pingQuery).Name, nil
	}))
	require.NoError(t, err)

	// Act
	resp, err := m.Send(context.Background(), &pingQuery{Name: "site"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong site", resp)
}

func TestMediator_RejectsUnknownAndDuplicate(t *testing.T) {
	m := mediator.NewMediator()
	h := mediator.HandlerFunc(func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return nil, nil })

	_, err := m.Send(context.Background(), &pingQuery{})
	assert.Error(t, err)

	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, h))
	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, h))

	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareRunsInRegistrationOrder(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	var order []string
	trace := func(name string) mediator.Middleware {
		return func(ctx context.Context, r mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
			order = append(order, name)
			return next(ctx, r)
		}
	}
	m.Use(trace("outer"))
	m.Use(trace("inner"))
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, mediator.HandlerFunc(func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		order = append(order, "handler")
		return nil, nil
	})))

	// Act
	_, err := m.Send(context.Background(), &pingQuery{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
