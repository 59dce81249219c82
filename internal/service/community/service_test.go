package community

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(posts *postRepoMock) (*Service, *limiterMock) {
	lim := &limiterMock{
		AllowFunc: func(ctx context.Context, ownerID uuid.UUID, actionKey string) error { return nil },
	}
	users := &userRepoMock{
		EnsureExistsFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	return NewService(testLogger(), posts, users, lim, &txManagerMock{}), lim
}

func visiblePost() *domain.Post {
	return &domain.Post{
		ID:        uuid.New(),
		AuthorID:  uuid.New(),
		Category:  domain.CategorySocial,
		Content:   "Got left on read for a week",
		Status:    domain.PostStatusVisible,
		Reactions: map[string]int{},
	}
}

func TestService_CreatePost_Success(t *testing.T) {
	t.Parallel()

	posts := &postRepoMock{
		CreateFunc: func(ctx context.Context, p *domain.Post) error { return nil },
	}
	svc, lim := newTestService(posts)

	authorID := uuid.New()
	ctx := ctxutil.WithUserID(context.Background(), authorID)

	post, err := svc.CreatePost(ctx, CreatePostInput{
		Category: "SOCIAL",
		Content:  "  <i>Got rejected</i> from the group chat  ",
	})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}

	if post.Status != domain.PostStatusVisible {
		t.Errorf("status = %s, want VISIBLE", post.Status)
	}
	if post.AuthorID != authorID {
		t.Errorf("author = %v, want %v", post.AuthorID, authorID)
	}
	if strings.ContainsAny(post.Content, "<>") || strings.HasPrefix(post.Content, " ") {
		t.Errorf("content not sanitized: %q", post.Content)
	}

	if got := lim.AllowCalls(); len(got) != 1 || got[0].ActionKey != domain.ActionCreatePost {
		t.Errorf("limiter calls = %+v", got)
	}
}

func TestService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{name: "too short", input: CreatePostInput{Category: "SOCIAL", Content: "ok"}},
		{name: "only markup", input: CreatePostInput{Category: "SOCIAL", Content: "<><>"}},
		{name: "bad category", input: CreatePostInput{Category: "VENTING", Content: "long enough"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestService(&postRepoMock{})
			ctx := ctxutil.WithUserID(context.Background(), uuid.New())

			if _, err := svc.CreatePost(ctx, tt.input); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("CreatePost() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestService_React_FirstReaction(t *testing.T) {
	t.Parallel()

	post := visiblePost()
	posts := &postRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*domain.Post, error) { return post, nil },
		InsertMarkerFunc: func(ctx context.Context, m *domain.ReactionMarker) (bool, error) {
			return true, nil
		},
		IncrementReactionFunc: func(ctx context.Context, postID uuid.UUID, reaction string) error {
			return nil
		},
	}
	svc, _ := newTestService(posts)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	if err := svc.React(ctx, post.ID, "💪"); err != nil {
		t.Fatalf("React() error = %v", err)
	}

	if got := len(posts.IncrementReactionCalls()); got != 1 {
		t.Errorf("IncrementReaction calls = %d, want 1", got)
	}
}

func TestService_React_DuplicateIsNoOp(t *testing.T) {
	t.Parallel()

	post := visiblePost()
	posts := &postRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*domain.Post, error) { return post, nil },
		InsertMarkerFunc: func(ctx context.Context, m *domain.ReactionMarker) (bool, error) {
			return false, nil
		},
	}
	svc, _ := newTestService(posts)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	if err := svc.React(ctx, post.ID, "🫂"); err != nil {
		t.Fatalf("React() duplicate error = %v, want nil", err)
	}

	if got := len(posts.IncrementReactionCalls()); got != 0 {
		t.Errorf("IncrementReaction calls = %d, want 0 for duplicate", got)
	}
}

func TestService_React_UnknownEmoji(t *testing.T) {
	t.Parallel()

	posts := &postRepoMock{}
	svc, lim := newTestService(posts)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	if err := svc.React(ctx, uuid.New(), "🔥"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("React() error = %v, want ErrValidation", err)
	}
	// Rejected before consuming a rate limit slot.
	if got := len(lim.AllowCalls()); got != 0 {
		t.Errorf("limiter calls = %d, want 0", got)
	}
}

func TestService_React_MissingPost(t *testing.T) {
	t.Parallel()

	posts := &postRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc, _ := newTestService(posts)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	if err := svc.React(ctx, uuid.New(), "🎉"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("React() error = %v, want ErrNotFound", err)
	}
}

func TestService_Report_HidesAtThreshold(t *testing.T) {
	t.Parallel()

	post := visiblePost()
	posts := &postRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*domain.Post, error) { return post, nil },
		InsertReportFunc: func(ctx context.Context, rep *domain.PostReport) error { return nil },
		IncrementReportFunc: func(ctx context.Context, postID uuid.UUID, hideThreshold int) (int, bool, error) {
			if hideThreshold != domain.HideReportThreshold {
				t.Errorf("threshold = %d, want %d", hideThreshold, domain.HideReportThreshold)
			}
			return 3, true, nil
		},
	}
	svc, _ := newTestService(posts)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	if err := svc.Report(ctx, post.ID); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if got := len(posts.InsertReportCalls()); got != 1 {
		t.Errorf("InsertReport calls = %d, want 1", got)
	}
}

func TestService_ListPosts_ClampsLimit(t *testing.T) {
	t.Parallel()

	var gotLimit int
	posts := &postRepoMock{
		ListVisibleFunc: func(ctx context.Context, limit, offset int) ([]domain.Post, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc, _ := newTestService(posts)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	if _, err := svc.ListPosts(ctx, 10_000, 0); err != nil {
		t.Fatalf("ListPosts() error = %v", err)
	}
	if gotLimit != DefaultListLimit {
		t.Errorf("limit = %d, want %d", gotLimit, DefaultListLimit)
	}
}

func TestService_BackfillStatus_AdminOnly(t *testing.T) {
	t.Parallel()

	posts := &postRepoMock{
		BackfillStatusFunc: func(ctx context.Context, limit int) (int, error) { return 7, nil },
	}
	svc, _ := newTestService(posts)

	userCtx := ctxutil.WithUserID(context.Background(), uuid.New())
	if _, err := svc.BackfillStatus(userCtx, 100); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("BackfillStatus() error = %v, want ErrForbidden", err)
	}

	adminCtx := ctxutil.WithAdmin(userCtx, true)
	n, err := svc.BackfillStatus(adminCtx, 100)
	if err != nil {
		t.Fatalf("BackfillStatus() error = %v", err)
	}
	if n != 7 {
		t.Errorf("updated = %d, want 7", n)
	}
}
