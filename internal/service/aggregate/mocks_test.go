package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

var _ eventRepo = &eventRepoMock{}

type eventRepoMock struct {
	UpsertFunc      func(ctx context.Context, ev *domain.Event) (bool, error)
	ListSinceFunc   func(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error)
	WindowStatsFunc func(ctx context.Context, ownerID uuid.UUID, since time.Time) (float64, int, error)

	calls struct {
		Upsert []struct {
			Event *domain.Event
		}
		ListSince []struct {
			OwnerID uuid.UUID
			Since   time.Time
		}
		WindowStats []struct {
			OwnerID uuid.UUID
			Since   time.Time
		}
	}
	lock sync.RWMutex
}

func (mock *eventRepoMock) Upsert(ctx context.Context, ev *domain.Event) (bool, error) {
	if mock.UpsertFunc == nil {
		panic("eventRepoMock.UpsertFunc: method is nil but eventRepo.Upsert was just called")
	}
	mock.lock.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, struct {
		Event *domain.Event
	}{ev})
	mock.lock.Unlock()
	return mock.UpsertFunc(ctx, ev)
}

func (mock *eventRepoMock) UpsertCalls() []struct {
	Event *domain.Event
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Upsert
}

func (mock *eventRepoMock) ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error) {
	if mock.ListSinceFunc == nil {
		panic("eventRepoMock.ListSinceFunc: method is nil but eventRepo.ListSince was just called")
	}
	mock.lock.Lock()
	mock.calls.ListSince = append(mock.calls.ListSince, struct {
		OwnerID uuid.UUID
		Since   time.Time
	}{ownerID, since})
	mock.lock.Unlock()
	return mock.ListSinceFunc(ctx, ownerID, since)
}

func (mock *eventRepoMock) WindowStats(ctx context.Context, ownerID uuid.UUID, since time.Time) (float64, int, error) {
	if mock.WindowStatsFunc == nil {
		panic("eventRepoMock.WindowStatsFunc: method is nil but eventRepo.WindowStats was just called")
	}
	mock.lock.Lock()
	mock.calls.WindowStats = append(mock.calls.WindowStats, struct {
		OwnerID uuid.UUID
		Since   time.Time
	}{ownerID, since})
	mock.lock.Unlock()
	return mock.WindowStatsFunc(ctx, ownerID, since)
}

var _ bucketRepo = &bucketRepoMock{}

type bucketRepoMock struct {
	FoldFunc        func(ctx context.Context, ownerID uuid.UUID, day time.Time, impact int) error
	GetScoreFunc    func(ctx context.Context, ownerID uuid.UUID) (*domain.DerivedScore, error)
	UpsertScoreFunc func(ctx context.Context, score *domain.DerivedScore) error

	calls struct {
		Fold []struct {
			OwnerID uuid.UUID
			Day     time.Time
			Impact  int
		}
		UpsertScore []struct {
			Score *domain.DerivedScore
		}
	}
	lock sync.RWMutex
}

func (mock *bucketRepoMock) Fold(ctx context.Context, ownerID uuid.UUID, day time.Time, impact int) error {
	if mock.FoldFunc == nil {
		panic("bucketRepoMock.FoldFunc: method is nil but bucketRepo.Fold was just called")
	}
	mock.lock.Lock()
	mock.calls.Fold = append(mock.calls.Fold, struct {
		OwnerID uuid.UUID
		Day     time.Time
		Impact  int
	}{ownerID, day, impact})
	mock.lock.Unlock()
	return mock.FoldFunc(ctx, ownerID, day, impact)
}

func (mock *bucketRepoMock) FoldCalls() []struct {
	OwnerID uuid.UUID
	Day     time.Time
	Impact  int
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Fold
}

func (mock *bucketRepoMock) GetScore(ctx context.Context, ownerID uuid.UUID) (*domain.DerivedScore, error) {
	if mock.GetScoreFunc == nil {
		panic("bucketRepoMock.GetScoreFunc: method is nil but bucketRepo.GetScore was just called")
	}
	return mock.GetScoreFunc(ctx, ownerID)
}

func (mock *bucketRepoMock) UpsertScore(ctx context.Context, score *domain.DerivedScore) error {
	if mock.UpsertScoreFunc == nil {
		panic("bucketRepoMock.UpsertScoreFunc: method is nil but bucketRepo.UpsertScore was just called")
	}
	mock.lock.Lock()
	mock.calls.UpsertScore = append(mock.calls.UpsertScore, struct {
		Score *domain.DerivedScore
	}{score})
	mock.lock.Unlock()
	return mock.UpsertScoreFunc(ctx, score)
}

func (mock *bucketRepoMock) UpsertScoreCalls() []struct {
	Score *domain.DerivedScore
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.UpsertScore
}

var _ insightRepo = &insightRepoMock{}

type insightRepoMock struct {
	ReplaceFunc func(ctx context.Context, set *domain.InsightSet) error
	GetFunc     func(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error)

	calls struct {
		Replace []struct {
			Set *domain.InsightSet
		}
	}
	lock sync.RWMutex
}

func (mock *insightRepoMock) Replace(ctx context.Context, set *domain.InsightSet) error {
	if mock.ReplaceFunc == nil {
		panic("insightRepoMock.ReplaceFunc: method is nil but insightRepo.Replace was just called")
	}
	mock.lock.Lock()
	mock.calls.Replace = append(mock.calls.Replace, struct {
		Set *domain.InsightSet
	}{set})
	mock.lock.Unlock()
	return mock.ReplaceFunc(ctx, set)
}

func (mock *insightRepoMock) ReplaceCalls() []struct {
	Set *domain.InsightSet
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Replace
}

func (mock *insightRepoMock) Get(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error) {
	if mock.GetFunc == nil {
		panic("insightRepoMock.GetFunc: method is nil but insightRepo.Get was just called")
	}
	return mock.GetFunc(ctx, ownerID)
}

var _ followUpProducer = &followUpProducerMock{}

type followUpProducerMock struct {
	EnqueueRecoveryFollowUpFunc func(ctx context.Context, ownerID uuid.UUID) error

	calls struct {
		Enqueue []struct {
			OwnerID uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *followUpProducerMock) EnqueueRecoveryFollowUp(ctx context.Context, ownerID uuid.UUID) error {
	if mock.EnqueueRecoveryFollowUpFunc == nil {
		panic("followUpProducerMock.EnqueueRecoveryFollowUpFunc: method is nil but followUpProducer.EnqueueRecoveryFollowUp was just called")
	}
	mock.lock.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, struct {
		OwnerID uuid.UUID
	}{ownerID})
	mock.lock.Unlock()
	return mock.EnqueueRecoveryFollowUpFunc(ctx, ownerID)
}

func (mock *followUpProducerMock) EnqueueCalls() []struct {
	OwnerID uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Enqueue
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
