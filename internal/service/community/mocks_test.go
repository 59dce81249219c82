package community

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
)

var _ postRepo = &postRepoMock{}

type postRepoMock struct {
	CreateFunc            func(ctx context.Context, p *domain.Post) error
	GetFunc               func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListVisibleFunc       func(ctx context.Context, limit, offset int) ([]domain.Post, error)
	InsertMarkerFunc      func(ctx context.Context, m *domain.ReactionMarker) (bool, error)
	IncrementReactionFunc func(ctx context.Context, postID uuid.UUID, reaction string) error
	IncrementReportFunc   func(ctx context.Context, postID uuid.UUID, hideThreshold int) (int, bool, error)
	InsertReportFunc      func(ctx context.Context, rep *domain.PostReport) error
	BackfillStatusFunc    func(ctx context.Context, limit int) (int, error)

	calls struct {
		Create []struct {
			Post *domain.Post
		}
		InsertMarker []struct {
			Marker *domain.ReactionMarker
		}
		IncrementReaction []struct {
			PostID   uuid.UUID
			Reaction string
		}
		IncrementReport []struct {
			PostID        uuid.UUID
			HideThreshold int
		}
		InsertReport []struct {
			Report *domain.PostReport
		}
	}
	lock sync.RWMutex
}

func (mock *postRepoMock) Create(ctx context.Context, p *domain.Post) error {
	if mock.CreateFunc == nil {
		panic("postRepoMock.CreateFunc: method is nil but postRepo.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Post *domain.Post
	}{p})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *postRepoMock) CreateCalls() []struct {
	Post *domain.Post
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *postRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if mock.GetFunc == nil {
		panic("postRepoMock.GetFunc: method is nil but postRepo.Get was just called")
	}
	return mock.GetFunc(ctx, id)
}

func (mock *postRepoMock) ListVisible(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if mock.ListVisibleFunc == nil {
		panic("postRepoMock.ListVisibleFunc: method is nil but postRepo.ListVisible was just called")
	}
	return mock.ListVisibleFunc(ctx, limit, offset)
}

func (mock *postRepoMock) InsertMarker(ctx context.Context, m *domain.ReactionMarker) (bool, error) {
	if mock.InsertMarkerFunc == nil {
		panic("postRepoMock.InsertMarkerFunc: method is nil but postRepo.InsertMarker was just called")
	}
	mock.lock.Lock()
	mock.calls.InsertMarker = append(mock.calls.InsertMarker, struct {
		Marker *domain.ReactionMarker
	}{m})
	mock.lock.Unlock()
	return mock.InsertMarkerFunc(ctx, m)
}

func (mock *postRepoMock) InsertMarkerCalls() []struct {
	Marker *domain.ReactionMarker
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.InsertMarker
}

func (mock *postRepoMock) IncrementReaction(ctx context.Context, postID uuid.UUID, reaction string) error {
	if mock.IncrementReactionFunc == nil {
		panic("postRepoMock.IncrementReactionFunc: method is nil but postRepo.IncrementReaction was just called")
	}
	mock.lock.Lock()
	mock.calls.IncrementReaction = append(mock.calls.IncrementReaction, struct {
		PostID   uuid.UUID
		Reaction string
	}{postID, reaction})
	mock.lock.Unlock()
	return mock.IncrementReactionFunc(ctx, postID, reaction)
}

func (mock *postRepoMock) IncrementReactionCalls() []struct {
	PostID   uuid.UUID
	Reaction string
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.IncrementReaction
}

func (mock *postRepoMock) IncrementReport(ctx context.Context, postID uuid.UUID, hideThreshold int) (int, bool, error) {
	if mock.IncrementReportFunc == nil {
		panic("postRepoMock.IncrementReportFunc: method is nil but postRepo.IncrementReport was just called")
	}
	mock.lock.Lock()
	mock.calls.IncrementReport = append(mock.calls.IncrementReport, struct {
		PostID        uuid.UUID
		HideThreshold int
	}{postID, hideThreshold})
	mock.lock.Unlock()
	return mock.IncrementReportFunc(ctx, postID, hideThreshold)
}

func (mock *postRepoMock) InsertReport(ctx context.Context, rep *domain.PostReport) error {
	if mock.InsertReportFunc == nil {
		panic("postRepoMock.InsertReportFunc: method is nil but postRepo.InsertReport was just called")
	}
	mock.lock.Lock()
	mock.calls.InsertReport = append(mock.calls.InsertReport, struct {
		Report *domain.PostReport
	}{rep})
	mock.lock.Unlock()
	return mock.InsertReportFunc(ctx, rep)
}

func (mock *postRepoMock) InsertReportCalls() []struct {
	Report *domain.PostReport
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.InsertReport
}

func (mock *postRepoMock) BackfillStatus(ctx context.Context, limit int) (int, error) {
	if mock.BackfillStatusFunc == nil {
		panic("postRepoMock.BackfillStatusFunc: method is nil but postRepo.BackfillStatus was just called")
	}
	return mock.BackfillStatusFunc(ctx, limit)
}

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	EnsureExistsFunc func(ctx context.Context, id uuid.UUID) error
}

func (mock *userRepoMock) EnsureExists(ctx context.Context, id uuid.UUID) error {
	if mock.EnsureExistsFunc == nil {
		panic("userRepoMock.EnsureExistsFunc: method is nil but userRepo.EnsureExists was just called")
	}
	return mock.EnsureExistsFunc(ctx, id)
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
