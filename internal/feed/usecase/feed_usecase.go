package usecase

import (
	"context"
	"errors"

	authdomain "edufeed-backend/internal/auth/domain"
	feeddomain "edufeed-backend/internal/feed/domain"
	feeddto "edufeed-backend/internal/feed/dto"
	"edufeed-backend/internal/feed/repository"
	"edufeed-backend/internal/notification"
)

// feedUsecase implements FeedUsecase interface
type feedUsecase struct {
	postRepo repository.PostRepository
	pollRepo repository.PollRepository
	notifier Notifier
}

// NewFeedUsecase creates a new instance of feedUsecase. notifier may be nil
// in tests that do not exercise the push path.
func NewFeedUsecase(postRepo repository.PostRepository, pollRepo repository.PollRepository, notifier Notifier) FeedUsecase {
	return &feedUsecase{
		postRepo: postRepo,
		pollRepo: pollRepo,
		notifier: notifier,
	}
}

func (u *feedUsecase) CreatePost(ctx context.Context, author *authdomain.User, req *feeddto.CreatePostRequest) (*feeddomain.Post, error) {
	post := &feeddomain.Post{
		AuthorID: author.ID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := u.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// The insert has committed at this point; the fan-out runs detached so a
	// slow or failing gateway never delays or fails the request
	u.afterCommit(notification.ContentEvent{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		ContentID:  post.ID,
		Kind:       notification.KindPost,
	})

	return post, nil
}

func (u *feedUsecase) GetPost(ctx context.Context, id string) (*feeddomain.Post, error) {
	return u.postRepo.FindByID(ctx, id)
}

func (u *feedUsecase) ListPosts(ctx context.Context, page, pageSize int, authorID string) ([]feeddomain.Post, int64, error) {
	return u.postRepo.List(ctx, page, pageSize, authorID)
}

func (u *feedUsecase) UpdatePost(ctx context.Context, actor *authdomain.User, id string, req *feeddto.UpdatePostRequest) (*feeddomain.Post, error) {
	post, err := u.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actor.ID {
		return nil, ErrForbidden
	}

	post.Content = req.Content
	if err := u.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (u *feedUsecase) DeletePost(ctx context.Context, actor *authdomain.User, id string) error {
	post, err := u.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != actor.ID && actor.Role != authdomain.RoleAdmin {
		return ErrForbidden
	}

	return u.postRepo.SoftDelete(ctx, id)
}

func (u *feedUsecase) AddComment(ctx context.Context, author *authdomain.User, postID string, req *feeddto.CreateCommentRequest) (*feeddomain.Comment, error) {
	if _, err := u.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &feeddomain.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}

	if err := u.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (u *feedUsecase) ListComments(ctx context.Context, postID string) ([]feeddomain.Comment, error) {
	return u.postRepo.ListComments(ctx, postID)
}

func (u *feedUsecase) React(ctx context.Context, userID, postID, reactionType string) (*feeddomain.PostReaction, error) {
	if !feeddomain.ValidReaction(reactionType) {
		return nil, errors.New("invalid reaction type")
	}

	if _, err := u.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	reaction := &feeddomain.PostReaction{
		PostID:       postID,
		UserID:       userID,
		ReactionType: reactionType,
	}
	if err := u.postRepo.SetReaction(ctx, reaction); err != nil {
		return nil, err
	}
	return reaction, nil
}

func (u *feedUsecase) RemoveReaction(ctx context.Context, userID, postID string) error {
	return u.postRepo.RemoveReaction(ctx, postID, userID)
}

func (u *feedUsecase) CreatePoll(ctx context.Context, author *authdomain.User, req *feeddto.CreatePollRequest) (*feeddomain.Poll, error) {
	poll := &feeddomain.Poll{
		AuthorID: author.ID,
		Question: req.Question,
	}
	for _, text := range req.Options {
		poll.Options = append(poll.Options, feeddomain.PollOption{Text: text})
	}

	if err := u.pollRepo.Create(ctx, poll); err != nil {
		return nil, err
	}

	u.afterCommit(notification.ContentEvent{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		ContentID:  poll.ID,
		Kind:       notification.KindPoll,
	})

	return poll, nil
}

func (u *feedUsecase) GetPoll(ctx context.Context, id string) (*feeddomain.Poll, error) {
	return u.pollRepo.FindByID(ctx, id)
}

func (u *feedUsecase) ListPolls(ctx context.Context, page, pageSize int) ([]feeddomain.Poll, int64, error) {
	return u.pollRepo.List(ctx, page, pageSize)
}

func (u *feedUsecase) Vote(ctx context.Context, userID, pollID, optionID string) error {
	if _, err := u.pollRepo.FindByID(ctx, pollID); err != nil {
		return err
	}
	return u.pollRepo.Vote(ctx, pollID, userID, optionID)
}

// afterCommit hands a committed content event to the notifier. Runs on its
// own goroutine with a fresh context: the fan-out must not be cancelled when
// the originating HTTP request finishes.
func (u *feedUsecase) afterCommit(ev notification.ContentEvent) {
	if u.notifier == nil {
		return
	}
	go u.notifier.NotifyContentCreated(context.Background(), ev)
}
