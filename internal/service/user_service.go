package service

import (
	"bytes"
	"circlenet_backend/internal/imagecrop"
	"circlenet_backend/internal/model"
	"circlenet_backend/internal/repository"
	"circlenet_backend/internal/util"
	"context"
	"fmt"
	"image"
	"io"
	"path"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

type UserService struct {
	UserRepo *repository.UserRepository
	ConnRepo *repository.ConnectionRepository
	Storage  StorageProvider
}

func NewUserService(userRepo *repository.UserRepository, connRepo *repository.ConnectionRepository, storage StorageProvider) *UserService {
	return &UserService{UserRepo: userRepo, ConnRepo: connRepo, Storage: storage}
}

func (s *UserService) Get(userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(userID, name string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err)
	}
	user.Name = name
	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

type SettingsInput struct {
	Timezone        string
	AllowJS         bool
	ForegroundColor string
	BackgroundColor string
	ErrorColor      string
}

// UpdateSettings validates each color before touching the record, so a bad
// value never leaves the settings half-written.
func (s *UserService) UpdateSettings(userID string, in SettingsInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err)
	}

	for _, color := range []string{in.ForegroundColor, in.BackgroundColor, in.ErrorColor} {
		if err := util.ValidateColor(color); err != nil {
			return nil, err
		}
	}

	user.Timezone = in.Timezone
	user.AllowJS = in.AllowJS
	user.ForegroundColor = in.ForegroundColor
	user.BackgroundColor = in.BackgroundColor
	user.ErrorColor = in.ErrorColor

	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the image and records its pixel dimensions, which the
// crop geometry needs. The decode only reads the header, not the pixels.
func (s *UserService) UploadAvatar(ctx context.Context, userID, filename string, reader io.Reader, size int64, contentType string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	ext := strings.ToLower(path.Ext(filename))
	objectName := fmt.Sprintf("avatars/%s/%d%s", userID, time.Now().UnixNano(), ext)
	url, err := s.Storage.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = url
	user.AvatarWidth = cfg.Width
	user.AvatarHeight = cfg.Height
	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// AvatarCrop returns the centered-square crop geometry for the stored
// avatar dimensions.
func (s *UserService) AvatarCrop(userID string) (imagecrop.Crop, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return imagecrop.Crop{}, notFound(err)
	}
	return imagecrop.CenteredSquare(user.AvatarWidth, user.AvatarHeight), nil
}

func (s *UserService) Search(query string, limit int) ([]model.User, error) {
	return s.UserRepo.Search(query, limit)
}

// PublicProfile is what one account sees of another: the profile plus
// whether a connection exists from the viewer's side.
type PublicProfile struct {
	User      *model.User `json:"user"`
	Connected bool        `json:"connected"`
}

func (s *UserService) View(viewerID, targetID string) (*PublicProfile, error) {
	user, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return nil, notFound(err)
	}

	connected := false
	if viewerID != targetID {
		connected, err = s.ConnRepo.IsConnected(viewerID, targetID)
		if err != nil {
			return nil, err
		}
	}
	return &PublicProfile{User: user, Connected: connected}, nil
}
