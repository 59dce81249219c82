package entry

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	ListRecentFunc func(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Event, error)

	calls struct {
		ListRecent []struct {
			OwnerID uuid.UUID
			Limit   int
		}
	}
	lock sync.RWMutex
}

func (mock *eventRepoMock) ListRecent(ctx context.Context, ownerID uuid.UUID, limit int) ([]domain.Event, error) {
	if mock.ListRecentFunc == nil {
		panic("eventRepoMock.ListRecentFunc: method is nil but eventRepo.ListRecent was just called")
	}
	mock.lock.Lock()
	mock.calls.ListRecent = append(mock.calls.ListRecent, struct {
		OwnerID uuid.UUID
		Limit   int
	}{ownerID, limit})
	mock.lock.Unlock()
	return mock.ListRecentFunc(ctx, ownerID, limit)
}

func (mock *eventRepoMock) ListRecentCalls() []struct {
	OwnerID uuid.UUID
	Limit   int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.ListRecent
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	EnsureExistsFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		EnsureExists []struct {
			ID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *userRepoMock) EnsureExists(ctx context.Context, id uuid.UUID) error {
	if mock.EnsureExistsFunc == nil {
		panic("userRepoMock.EnsureExistsFunc: method is nil but userRepo.EnsureExists was just called")
	}
	mock.lock.Lock()
	mock.calls.EnsureExists = append(mock.calls.EnsureExists, struct {
		ID uuid.UUID
	}{id})
	mock.lock.Unlock()
	return mock.EnsureExistsFunc(ctx, id)
}

func (mock *userRepoMock) EnsureExistsCalls() []struct {
	ID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.EnsureExists
}

var _ applier = &applierMock{}

type applierMock struct {
	ApplyFunc func(ctx context.Context, ev *domain.Event) (bool, error)

	calls struct {
		Apply []struct {
			Event *domain.Event
		}
	}
	lock sync.RWMutex
}

func (mock *applierMock) Apply(ctx context.Context, ev *domain.Event) (bool, error) {
	if mock.ApplyFunc == nil {
		panic("applierMock.ApplyFunc: method is nil but applier.Apply was just called")
	}
	mock.lock.Lock()
	mock.calls.Apply = append(mock.calls.Apply, struct {
		Event *domain.Event
	}{ev})
	mock.lock.Unlock()
	return mock.ApplyFunc(ctx, ev)
}

func (mock *applierMock) ApplyCalls() []struct {
	Event *domain.Event
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Apply
}

var _ limiter = &limiterMock{}

type limiterMock struct {
	AllowFunc func(ctx context.Context, ownerID uuid.UUID, actionKey string) error

	calls struct {
		Allow []struct {
			OwnerID   uuid.UUID
			ActionKey string
		}
	}
	lock sync.RWMutex
}

func (mock *limiterMock) Allow(ctx context.Context, ownerID uuid.UUID, actionKey string) error {
	if mock.AllowFunc == nil {
		panic("limiterMock.AllowFunc: method is nil but limiter.Allow was just called")
	}
	mock.lock.Lock()
	mock.calls.Allow = append(mock.calls.Allow, struct {
		OwnerID   uuid.UUID
		ActionKey string
	}{ownerID, actionKey})
	mock.lock.Unlock()
	return mock.AllowFunc(ctx, ownerID, actionKey)
}

func (mock *limiterMock) AllowCalls() []struct {
	OwnerID   uuid.UUID
	ActionKey string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Allow
}
