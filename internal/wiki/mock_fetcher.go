package wiki

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock summary fetcher using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, key string) (Result, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(Result), args.Error(1)
}
