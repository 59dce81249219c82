package domain

// Category classifies a logged rejection event or a community post.
type Category string

const (
	CategoryDating Category = "DATING"
	CategoryJob    Category = "JOB"
	CategorySocial Category = "SOCIAL"
	CategoryOther  Category = "OTHER"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryDating, CategoryJob, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// PostStatus is the moderation state of a community post.
type PostStatus string

const (
	PostStatusVisible PostStatus = "VISIBLE"
	PostStatusHidden  PostStatus = "HIDDEN"
)

func (s PostStatus) String() string { return string(s) }

func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusVisible, PostStatusHidden:
		return true
	}
	return false
}

// TaskStatus is the lifecycle state of a notification task.
// PENDING and PROCESSING are transient; the rest are terminal and a task
// never transitions out of a terminal state.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusSent       TaskStatus = "SENT"
	TaskStatusNoTokens   TaskStatus = "NO_TOKENS"
	TaskStatusError      TaskStatus = "ERROR"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusSent, TaskStatusNoTokens, TaskStatusError:
		return true
	}
	return false
}

// IsTerminal reports whether no further automatic transition may occur.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusSent, TaskStatusNoTokens, TaskStatusError:
		return true
	}
	return false
}

// TaskKind identifies what a notification task is for.
type TaskKind string

const TaskKindRecoveryFollowUp TaskKind = "RECOVERY_FOLLOWUP"

func (k TaskKind) String() string { return string(k) }

func (k TaskKind) IsValid() bool {
	return k == TaskKindRecoveryFollowUp
}

// AllowedReactions is the fixed emoji set a post may be reacted with.
var AllowedReactions = map[string]struct{}{
	"💪": {},
	"😔": {},
	"🎉": {},
	"🫂": {},
}

// IsAllowedReaction reports whether r belongs to the fixed reaction set.
func IsAllowedReaction(r string) bool {
	_, ok := AllowedReactions[r]
	return ok
}
