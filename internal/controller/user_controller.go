package controller

import (
	"circlenet_backend/internal/config"
	"circlenet_backend/internal/imagecrop"
	"circlenet_backend/internal/service"
	"circlenet_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	FeedService *service.FeedService
	Config      *config.Config
}

func NewUserController(userService *service.UserService, feedService *service.FeedService, cfg *config.Config) *UserController {
	return &UserController{UserService: userService, FeedService: feedService, Config: cfg}
}

// GetProfile godoc
// @Summary Own profile
// @Tags user
// @Produce json
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.Get(claims.UserID)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags user
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, req.Name)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type SettingsRequest struct {
	Timezone        string `json:"timezone" binding:"max=64"`
	AllowJS         bool   `json:"allowJs"`
	ForegroundColor string `json:"foregroundColor"`
	BackgroundColor string `json:"backgroundColor"`
	ErrorColor      string `json:"errorColor"`
}

// UpdateSettings godoc
// @Summary Update display settings
// @Description Colors accept #rgb, #rrggbb or a CSS color keyword
// @Tags user
// @Accept json
// @Produce json
// @Param body body SettingsRequest true "settings"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "invalid color"
// @Router /api/settings [put]
func (c *UserController) UpdateSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateSettings(claims.UserID, service.SettingsInput{
		Timezone:        req.Timezone,
		AllowJS:         req.AllowJS,
		ForegroundColor: req.ForegroundColor,
		BackgroundColor: req.BackgroundColor,
		ErrorColor:      req.ErrorColor,
	})
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// PublicSettings godoc
// @Summary Server-side limits visible to clients
// @Tags user
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Router /api/settings/public [get]
func (c *UserController) PublicSettings(ctx *gin.Context) {
	util.Success(ctx, c.Config.PublicSettings())
}

// UploadAvatar godoc
// @Summary Upload an avatar image
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "image file"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "not an image"
// @Router /api/profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	user, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{
		"user": user,
		"crop": imagecrop.CenteredSquare(user.AvatarWidth, user.AvatarHeight),
	})
}

// AvatarCrop godoc
// @Summary Centered-square crop geometry for the avatar
// @Tags user
// @Produce json
// @Success 200 {object} util.Response{data=imagecrop.Crop}
// @Router /api/profile/avatar/crop [get]
func (c *UserController) AvatarCrop(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	crop, err := c.UserService.AvatarCrop(claims.UserID)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}
	util.Success(ctx, crop)
}

// SearchUsers godoc
// @Summary Search accounts by name or username
// @Tags user
// @Produce json
// @Param q query string true "search term"
// @Param limit query int false "max results"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /api/users [get]
func (c *UserController) SearchUsers(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		util.BadRequest(ctx, "q is required")
		return
	}

	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	users, err := c.UserService.Search(query, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// ViewUser godoc
// @Summary Another account's public profile
// @Description Includes whether a connection exists and the posts visible to the caller
// @Tags user
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [get]
func (c *UserController) ViewUser(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	targetID := ctx.Param("id")
	profile, err := c.UserService.View(claims.UserID, targetID)
	if err != nil {
		util.FromServiceError(ctx, err)
		return
	}

	posts, err := c.FeedService.FeedFor(claims.UserID, targetID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"user":      profile.User,
		"connected": profile.Connected,
		"posts":     posts,
	})
}
