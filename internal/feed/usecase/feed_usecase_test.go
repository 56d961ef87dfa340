package usecase

import (
	"context"
	"testing"
	"time"

	authdomain "edufeed-backend/internal/auth/domain"
	feeddomain "edufeed-backend/internal/feed/domain"
	feeddto "edufeed-backend/internal/feed/dto"
	"edufeed-backend/internal/feed/repository"
	"edufeed-backend/internal/notification"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// capturingNotifier records fan-out events on a channel so tests can wait
// for the detached goroutine
type capturingNotifier struct {
	events chan notification.ContentEvent
}

func newCapturingNotifier() *capturingNotifier {
	return &capturingNotifier{events: make(chan notification.ContentEvent, 8)}
}

func (n *capturingNotifier) NotifyContentCreated(_ context.Context, ev notification.ContentEvent) notification.BatchResult {
	n.events <- ev
	return notification.BatchResult{}
}

func (n *capturingNotifier) waitForEvent(t *testing.T) notification.ContentEvent {
	t.Helper()

	select {
	case ev := <-n.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification event")
		return notification.ContentEvent{}
	}
}

func (n *capturingNotifier) assertNoEvent(t *testing.T) {
	t.Helper()

	select {
	case ev := <-n.events:
		t.Fatalf("unexpected notification event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func setupFeed(t *testing.T) (FeedUsecase, *capturingNotifier, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&feeddomain.Post{},
		&feeddomain.Comment{},
		&feeddomain.PostReaction{},
		&feeddomain.Poll{},
		&feeddomain.PollOption{},
		&feeddomain.PollVote{},
	))

	notifier := newCapturingNotifier()
	uc := NewFeedUsecase(repository.NewPostRepository(db), repository.NewPollRepository(db), notifier)
	return uc, notifier, db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *authdomain.User {
	t.Helper()

	user := &authdomain.User{Email: email, Name: email, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCreatePostNotifiesAfterCommit(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)

	post, err := uc.CreatePost(context.Background(), author, &feeddto.CreatePostRequest{Content: "hello class"})
	require.NoError(t, err)
	require.NotEmpty(t, post.ID)

	ev := notifier.waitForEvent(t)
	assert.Equal(t, notification.KindPost, ev.Kind)
	assert.Equal(t, post.ID, ev.ContentID)
	assert.Equal(t, author.ID, ev.AuthorID)
	assert.Equal(t, author.Name, ev.AuthorName)
}

func TestCreatePollNotifiesAfterCommit(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)

	poll, err := uc.CreatePoll(context.Background(), author, &feeddto.CreatePollRequest{
		Question: "Lecture time?",
		Options:  []string{"Morning", "Afternoon"},
	})
	require.NoError(t, err)
	require.Len(t, poll.Options, 2)

	ev := notifier.waitForEvent(t)
	assert.Equal(t, notification.KindPoll, ev.Kind)
	assert.Equal(t, poll.ID, ev.ContentID)
}

func TestFailedCreateDoesNotNotify(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)

	// A failed insert must never reach the notifier
	require.NoError(t, db.Migrator().DropTable(&feeddomain.Poll{}))
	_, err := uc.CreatePoll(context.Background(), author, &feeddto.CreatePollRequest{
		Question: "Doomed",
		Options:  []string{"A", "B"},
	})
	require.Error(t, err)
	notifier.assertNoEvent(t)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)
	other := seedUser(t, db, "other@example.com", authdomain.RoleStandard)

	post, err := uc.CreatePost(context.Background(), author, &feeddto.CreatePostRequest{Content: "v1"})
	require.NoError(t, err)
	notifier.waitForEvent(t)

	_, err = uc.UpdatePost(context.Background(), other, post.ID, &feeddto.UpdatePostRequest{Content: "hijack"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := uc.UpdatePost(context.Background(), author, post.ID, &feeddto.UpdatePostRequest{Content: "v2"})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	// Edits never fan out, only creation does
	notifier.assertNoEvent(t)
}

func TestDeletePostAuthorOrAdmin(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)
	other := seedUser(t, db, "other@example.com", authdomain.RoleStandard)
	admin := seedUser(t, db, "admin@example.com", authdomain.RoleAdmin)

	post, err := uc.CreatePost(context.Background(), author, &feeddto.CreatePostRequest{Content: "to delete"})
	require.NoError(t, err)
	notifier.waitForEvent(t)

	assert.ErrorIs(t, uc.DeletePost(context.Background(), other, post.ID), ErrForbidden)
	require.NoError(t, uc.DeletePost(context.Background(), admin, post.ID))

	_, err = uc.GetPost(context.Background(), post.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReactionLifecycle(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)
	reader := seedUser(t, db, "reader@example.com", authdomain.RoleStandard)

	post, err := uc.CreatePost(context.Background(), author, &feeddto.CreatePostRequest{Content: "react to me"})
	require.NoError(t, err)
	notifier.waitForEvent(t)

	_, err = uc.React(context.Background(), reader.ID, post.ID, "thumbs_up")
	assert.Error(t, err, "unknown reaction types are rejected")

	_, err = uc.React(context.Background(), reader.ID, post.ID, feeddomain.ReactionLove)
	require.NoError(t, err)

	// Switching the reaction keeps the count at one
	_, err = uc.React(context.Background(), reader.ID, post.ID, feeddomain.ReactionHaha)
	require.NoError(t, err)

	got, err := uc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReactionsCount)

	require.NoError(t, uc.RemoveReaction(context.Background(), reader.ID, post.ID))
	got, err = uc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ReactionsCount)
}

func TestCommentsBumpCounter(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)

	post, err := uc.CreatePost(context.Background(), author, &feeddto.CreatePostRequest{Content: "discuss"})
	require.NoError(t, err)
	notifier.waitForEvent(t)

	_, err = uc.AddComment(context.Background(), author, post.ID, &feeddto.CreateCommentRequest{Content: "first"})
	require.NoError(t, err)
	_, err = uc.AddComment(context.Background(), author, post.ID, &feeddto.CreateCommentRequest{Content: "second"})
	require.NoError(t, err)

	got, err := uc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)

	comments, err := uc.ListComments(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestVoteSwitchesOption(t *testing.T) {
	uc, notifier, db := setupFeed(t)
	author := seedUser(t, db, "prof@example.com", authdomain.RoleInstructor)
	voter := seedUser(t, db, "voter@example.com", authdomain.RoleStandard)

	poll, err := uc.CreatePoll(context.Background(), author, &feeddto.CreatePollRequest{
		Question: "Best day?",
		Options:  []string{"Mon", "Tue"},
	})
	require.NoError(t, err)
	notifier.waitForEvent(t)

	first, second := poll.Options[0].ID, poll.Options[1].ID

	require.NoError(t, uc.Vote(context.Background(), voter.ID, poll.ID, first))
	require.NoError(t, uc.Vote(context.Background(), voter.ID, poll.ID, second))

	got, err := uc.GetPoll(context.Background(), poll.ID)
	require.NoError(t, err)
	counts := map[string]int{}
	for _, opt := range got.Options {
		counts[opt.ID] = opt.VotesCount
	}
	assert.Equal(t, 0, counts[first])
	assert.Equal(t, 1, counts[second])

	assert.ErrorIs(t, uc.Vote(context.Background(), voter.ID, poll.ID, "bogus-option"), repository.ErrInvalidOption)
}
