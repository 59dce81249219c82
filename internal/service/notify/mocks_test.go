package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/push"
	"github.com/resilientme/backend/internal/domain"
)

var _ taskRepo = &taskRepoMock{}

type taskRepoMock struct {
	CreateFunc   func(ctx context.Context, task *domain.NotificationTask) error
	ClaimDueFunc func(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.NotificationTask, error)
	FinishFunc   func(ctx context.Context, id uuid.UUID, status domain.TaskStatus, errMsg *string) error

	calls struct {
		Create []struct {
			Task *domain.NotificationTask
		}
		Finish []struct {
			ID     uuid.UUID
			Status domain.TaskStatus
			ErrMsg *string
		}
	}
	lock sync.RWMutex
}

func (mock *taskRepoMock) Create(ctx context.Context, task *domain.NotificationTask) error {
	if mock.CreateFunc == nil {
		panic("taskRepoMock.CreateFunc: method is nil but taskRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Task *domain.NotificationTask
	}{task})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, task)
}

func (mock *taskRepoMock) CreateCalls() []struct {
	Task *domain.NotificationTask
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *taskRepoMock) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.NotificationTask, error) {
	if mock.ClaimDueFunc == nil {
		panic("taskRepoMock.ClaimDueFunc: method is nil but taskRepo.ClaimDue was just called")
	}
	return mock.ClaimDueFunc(ctx, now, limit, lease)
}

func (mock *taskRepoMock) Finish(ctx context.Context, id uuid.UUID, status domain.TaskStatus, errMsg *string) error {
	if mock.FinishFunc == nil {
		panic("taskRepoMock.FinishFunc: method is nil but taskRepo.Finish was just called")
	}
	mock.lock.Lock()
	mock.calls.Finish = append(mock.calls.Finish, struct {
		ID     uuid.UUID
		Status domain.TaskStatus
		ErrMsg *string
	}{id, status, errMsg})
	mock.lock.Unlock()
	return mock.FinishFunc(ctx, id, status, errMsg)
}

func (mock *taskRepoMock) FinishCalls() []struct {
	ID     uuid.UUID
	Status domain.TaskStatus
	ErrMsg *string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Finish
}

var _ tokenRepo = &tokenRepoMock{}

type tokenRepoMock struct {
	ListByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]domain.DeviceToken, error)
}

func (mock *tokenRepoMock) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.DeviceToken, error) {
	if mock.ListByOwnerFunc == nil {
		panic("tokenRepoMock.ListByOwnerFunc: method is nil but tokenRepo.ListByOwner was just called")
	}
	return mock.ListByOwnerFunc(ctx, ownerID)
}

var _ push.Sender = &senderMock{}

type senderMock struct {
	SendFunc func(ctx context.Context, token string, payload domain.PushPayload) error

	calls struct {
		Send []struct {
			Token   string
			Payload domain.PushPayload
		}
	}
	lock sync.RWMutex
}

func (mock *senderMock) Send(ctx context.Context, token string, payload domain.PushPayload) error {
	if mock.SendFunc == nil {
		panic("senderMock.SendFunc: method is nil but push.Sender.Send was just called")
	}
	mock.lock.Lock()
	mock.calls.Send = append(mock.calls.Send, struct {
		Token   string
		Payload domain.PushPayload
	}{token, payload})
	mock.lock.Unlock()
	return mock.SendFunc(ctx, token, payload)
}

func (mock *senderMock) SendCalls() []struct {
	Token   string
	Payload domain.PushPayload
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Send
}
