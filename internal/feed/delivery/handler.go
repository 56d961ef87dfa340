package delivery

import (
	"errors"
	"net/http"

	authdomain "edufeed-backend/internal/auth/domain"
	feeddto "edufeed-backend/internal/feed/dto"
	"edufeed-backend/internal/feed/repository"
	"edufeed-backend/internal/feed/usecase"

	"github.com/gin-gonic/gin"
)

// FeedHandler exposes the post, poll, comment and reaction endpoints
type FeedHandler struct {
	feedUsecase usecase.FeedUsecase
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedUsecase usecase.FeedUsecase) *FeedHandler {
	return &FeedHandler{
		feedUsecase: feedUsecase,
	}
}

func currentUser(c *gin.Context) *authdomain.User {
	if v, exists := c.Get("user"); exists {
		if user, ok := v.(*authdomain.User); ok {
			return user
		}
	}
	return nil
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrInvalidOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *FeedHandler) CreatePost(c *gin.Context) {
	var req feeddto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.feedUsecase.CreatePost(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *FeedHandler) GetPost(c *gin.Context) {
	post, err := h.feedUsecase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) ListPosts(c *gin.Context) {
	var page feeddto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, total, err := h.feedUsecase.ListPosts(c.Request.Context(), page.Page, page.PageSize, c.Query("author_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":     posts,
		"total":     total,
		"page":      page.Page,
		"page_size": page.PageSize,
	})
}

func (h *FeedHandler) UpdatePost(c *gin.Context) {
	var req feeddto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.feedUsecase.UpdatePost(c.Request.Context(), currentUser(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) DeletePost(c *gin.Context) {
	if err := h.feedUsecase.DeletePost(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedHandler) AddComment(c *gin.Context) {
	var req feeddto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.feedUsecase.AddComment(c.Request.Context(), currentUser(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *FeedHandler) ListComments(c *gin.Context) {
	comments, err := h.feedUsecase.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *FeedHandler) React(c *gin.Context) {
	var req feeddto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reaction, err := h.feedUsecase.React(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.ReactionType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reaction)
}

func (h *FeedHandler) RemoveReaction(c *gin.Context) {
	if err := h.feedUsecase.RemoveReaction(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedHandler) CreatePoll(c *gin.Context) {
	var req feeddto.CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.feedUsecase.CreatePoll(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, poll)
}

func (h *FeedHandler) GetPoll(c *gin.Context) {
	poll, err := h.feedUsecase.GetPoll(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, poll)
}

func (h *FeedHandler) ListPolls(c *gin.Context) {
	var page feeddto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	polls, total, err := h.feedUsecase.ListPolls(c.Request.Context(), page.Page, page.PageSize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"polls":     polls,
		"total":     total,
		"page":      page.Page,
		"page_size": page.PageSize,
	})
}

func (h *FeedHandler) Vote(c *gin.Context) {
	var req feeddto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feedUsecase.Vote(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.OptionID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vote recorded"})
}
