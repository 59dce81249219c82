package ratelimit

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

var _ bucketRepo = &bucketRepoMock{}

type bucketRepoMock struct {
	GetFunc func(ctx context.Context, ownerID uuid.UUID, actionKey string) (*domain.RateLimitBucket, error)
	PutFunc func(ctx context.Context, b *domain.RateLimitBucket) error

	calls struct {
		Get []struct {
			OwnerID   uuid.UUID
			ActionKey string
		}
		Put []struct {
			Bucket *domain.RateLimitBucket
		}
	}
	lock sync.RWMutex
}

func (mock *bucketRepoMock) Get(ctx context.Context, ownerID uuid.UUID, actionKey string) (*domain.RateLimitBucket, error) {
	if mock.GetFunc == nil {
		panic("bucketRepoMock.GetFunc: method is nil but bucketRepo.Get was just called")
	}
	mock.lock.Lock()
	mock.calls.Get = append(mock.calls.Get, struct {
		OwnerID   uuid.UUID
		ActionKey string
	}{ownerID, actionKey})
	mock.lock.Unlock()
	return mock.GetFunc(ctx, ownerID, actionKey)
}

func (mock *bucketRepoMock) Put(ctx context.Context, b *domain.RateLimitBucket) error {
	if mock.PutFunc == nil {
		panic("bucketRepoMock.PutFunc: method is nil but bucketRepo.Put was just called")
	}
	mock.lock.Lock()
	mock.calls.Put = append(mock.calls.Put, struct {
		Bucket *domain.RateLimitBucket
	}{b})
	mock.lock.Unlock()
	return mock.PutFunc(ctx, b)
}

func (mock *bucketRepoMock) PutCalls() []struct {
	Bucket *domain.RateLimitBucket
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Put
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}
