package mocks

import (
	"context"

	"github.com/Behyna/banking-portal/internal/endpoint"
	"github.com/stretchr/testify/mock"
)

type EndpointSource struct {
	mock.Mock
}

func (s *EndpointSource) Name() string {
	return "mock"
}

func (s *EndpointSource) Load(ctx context.Context) (endpoint.Config, error) {
	args := s.Called(ctx)
	return args.Get(0).(endpoint.Config), args.Error(1)
}
