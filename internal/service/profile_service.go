package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/divyeshvadher/silai-sahayak/internal/config"
	"github.com/divyeshvadher/silai-sahayak/internal/entity"
	"github.com/divyeshvadher/silai-sahayak/internal/repository"
)

type ProfileService struct {
	users   *repository.UserRepository
	storage *minio.Client
	cfg     config.MinIOConfig
	logger  *zap.Logger
}

func NewProfileService(users *repository.UserRepository, storage *minio.Client, cfg config.MinIOConfig, logger *zap.Logger) *ProfileService {
	return &ProfileService{users: users, storage: storage, cfg: cfg, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.GetByID(ctx, userID)
}

type UpdateProfileRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

func (s *ProfileService) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// UploadAvatar stores the image in object storage under avatars/<user-id>
// and records the public URL on the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, size int64, body io.Reader) (*entity.User, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("object storage is not configured")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("avatars/%s%s", userID, path.Ext(filename))
	_, err = s.storage.PutObject(ctx, s.cfg.Bucket, objectName, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload avatar: %w", err)
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	user.AvatarURL = fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectName)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("save avatar url: %w", err)
	}

	s.logger.Info("avatar uploaded",
		zap.String("user_id", userID),
		zap.String("object", objectName))
	return user, nil
}
