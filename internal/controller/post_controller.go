package controller

import (
	"circlenet_backend/internal/service"
	"circlenet_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	FeedService *service.FeedService
}

func NewPostController(feedService *service.FeedService) *PostController {
	return &PostController{FeedService: feedService}
}

type CreatePostRequest struct {
	Text      string   `json:"text"`
	ImageURL  string   `json:"image_url"`
	CircleIDs []string `json:"circle_ids"`
}

// CreatePost godoc
// @Summary Create a post
// @Description Needs text or an image; when circles are given the post is published into them immediately
// @Tags posts
// @Accept json
// @Produce json
// @Param body body CreatePostRequest true "post"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 400 {object} util.Response "empty post or foreign circle"
// @Router /api/posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.FeedService.CreatePost(claims.UserID, service.CreatePostInput{
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		CircleIDs: req.CircleIDs,
	})
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// ListOwnPosts godoc
// @Summary Own posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Post}
// @Router /api/posts [get]
func (c *PostController) ListOwnPosts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	posts, err := c.FeedService.ListOwn(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// GetPost godoc
// @Summary One of the caller's posts
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	post, err := c.FeedService.Get(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.FeedService.DeletePost(claims.UserID, ctx.Param("id")); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type PublishRequest struct {
	CircleIDs []string `json:"circle_ids" binding:"required"`
}

// PublishPost godoc
// @Summary Publish a post into more circles
// @Description Visibility is recorded per current member at publish time and never revisited
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param body body PublishRequest true "target circles"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "empty or foreign circle set"
// @Router /api/posts/{id}/publish [post]
func (c *PostController) PublishPost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.FeedService.Publish(claims.UserID, ctx.Param("id"), req.CircleIDs); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UnpublishPost godoc
// @Summary Pull a post out of one circle
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Param circleId path string true "circle id"
// @Success 200 {object} util.Response
// @Router /api/posts/{id}/circles/{circleId} [delete]
func (c *PostController) UnpublishPost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.FeedService.Unpublish(claims.UserID, ctx.Param("id"), ctx.Param("circleId")); err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PostCircles godoc
// @Summary Circles a post is published in
// @Tags posts
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} util.Response{data=[]model.Circle}
// @Router /api/posts/{id}/circles [get]
func (c *PostController) PostCircles(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	circles, err := c.FeedService.Circles(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, circles)
}

// Feed godoc
// @Summary Everything visible to the caller, newest first
// @Tags feed
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Post}
// @Router /api/feed [get]
func (c *PostController) Feed(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	posts, err := c.FeedService.Feed(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// FeedFor godoc
// @Summary Visible posts authored by one account
// @Tags feed
// @Produce json
// @Param userId path string true "poster id"
// @Success 200 {object} util.Response{data=[]model.Post}
// @Router /api/feed/{userId} [get]
func (c *PostController) FeedFor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	// Mounted both as /feed/:userId and /users/:id/posts.
	posterID := ctx.Param("userId")
	if posterID == "" {
		posterID = ctx.Param("id")
	}

	posts, err := c.FeedService.FeedFor(claims.UserID, posterID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}
