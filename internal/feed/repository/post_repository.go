package repository

import (
	"context"
	"errors"
	"time"

	feeddomain "edufeed-backend/internal/feed/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist or is inactive
	ErrNotFound = errors.New("record not found")
)

// PostRepository defines persistence operations for posts, comments and reactions
type PostRepository interface {
	Create(ctx context.Context, post *feeddomain.Post) error
	FindByID(ctx context.Context, id string) (*feeddomain.Post, error)
	List(ctx context.Context, page, pageSize int, authorID string) ([]feeddomain.Post, int64, error)
	Update(ctx context.Context, post *feeddomain.Post) error
	SoftDelete(ctx context.Context, id string) error

	AddComment(ctx context.Context, comment *feeddomain.Comment) error
	ListComments(ctx context.Context, postID string) ([]feeddomain.Comment, error)

	SetReaction(ctx context.Context, reaction *feeddomain.PostReaction) error
	RemoveReaction(ctx context.Context, postID, userID string) error
}

// postRepository implements PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of postRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db: db,
	}
}

func (r *postRepository) Create(ctx context.Context, post *feeddomain.Post) error {
	post.ID = uuid.New().String()
	post.IsActive = true
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*feeddomain.Post, error) {
	var post feeddomain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND is_active = ?", id, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, page, pageSize int, authorID string) ([]feeddomain.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&feeddomain.Post{}).Where("is_active = ?", true)
	if authorID != "" {
		query = query.Where("author_id = ?", authorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []feeddomain.Post
	err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *feeddomain.Post) error {
	post.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&feeddomain.Post{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddComment inserts the comment and bumps the denormalized counters in one
// transaction.
func (r *postRepository) AddComment(ctx context.Context, comment *feeddomain.Comment) error {
	comment.ID = uuid.New().String()
	comment.IsActive = true
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&feeddomain.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error; err != nil {
			return err
		}
		if comment.ParentID != nil {
			return tx.Model(&feeddomain.Comment{}).
				Where("id = ?", *comment.ParentID).
				UpdateColumn("replies_count", gorm.Expr("replies_count + 1")).Error
		}
		return nil
	})
}

func (r *postRepository) ListComments(ctx context.Context, postID string) ([]feeddomain.Comment, error) {
	var comments []feeddomain.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND is_active = ?", postID, true).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// SetReaction creates or replaces the user's reaction on a post. The
// reactions counter only moves when a new reaction is created.
func (r *postRepository) SetReaction(ctx context.Context, reaction *feeddomain.PostReaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing feeddomain.PostReaction
		err := tx.Where("post_id = ? AND user_id = ?", reaction.PostID, reaction.UserID).
			First(&existing).Error

		if err == nil {
			existing.ReactionType = reaction.ReactionType
			*reaction = existing
			return tx.Save(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		reaction.ID = uuid.New().String()
		reaction.CreatedAt = time.Now()
		if err := tx.Create(reaction).Error; err != nil {
			return err
		}
		return tx.Model(&feeddomain.Post{}).
			Where("id = ?", reaction.PostID).
			UpdateColumn("reactions_count", gorm.Expr("reactions_count + 1")).Error
	})
}

func (r *postRepository) RemoveReaction(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&feeddomain.PostReaction{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&feeddomain.Post{}).
			Where("id = ?", postID).
			UpdateColumn("reactions_count", gorm.Expr("reactions_count - 1")).Error
	})
}
