package usecase

import (
	"context"
	"errors"

	authdomain "edufeed-backend/internal/auth/domain"
	feeddomain "edufeed-backend/internal/feed/domain"
	feeddto "edufeed-backend/internal/feed/dto"
	"edufeed-backend/internal/notification"
)

// ErrForbidden is returned when a user edits or deletes content they do not own
var ErrForbidden = errors.New("not allowed to modify this content")

// Notifier is the dispatch entry point for committed content events. The
// notification service implements it.
type Notifier interface {
	NotifyContentCreated(ctx context.Context, ev notification.ContentEvent) notification.BatchResult
}

// FeedUsecase covers posts, polls, comments and reactions, and hands
// committed content events to the notifier.
type FeedUsecase interface {
	CreatePost(ctx context.Context, author *authdomain.User, req *feeddto.CreatePostRequest) (*feeddomain.Post, error)
	GetPost(ctx context.Context, id string) (*feeddomain.Post, error)
	ListPosts(ctx context.Context, page, pageSize int, authorID string) ([]feeddomain.Post, int64, error)
	UpdatePost(ctx context.Context, actor *authdomain.User, id string, req *feeddto.UpdatePostRequest) (*feeddomain.Post, error)
	DeletePost(ctx context.Context, actor *authdomain.User, id string) error

	AddComment(ctx context.Context, author *authdomain.User, postID string, req *feeddto.CreateCommentRequest) (*feeddomain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]feeddomain.Comment, error)

	React(ctx context.Context, userID, postID, reactionType string) (*feeddomain.PostReaction, error)
	RemoveReaction(ctx context.Context, userID, postID string) error

	CreatePoll(ctx context.Context, author *authdomain.User, req *feeddto.CreatePollRequest) (*feeddomain.Poll, error)
	GetPoll(ctx context.Context, id string) (*feeddomain.Poll, error)
	ListPolls(ctx context.Context, page, pageSize int) ([]feeddomain.Poll, int64, error)
	Vote(ctx context.Context, userID, pollID, optionID string) error
}
