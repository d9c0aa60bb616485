package user

import (
	"Recipe-Marketplace/domain"
	"Recipe-Marketplace/entities"
	"Recipe-Marketplace/internal/utils/storage"
	"Recipe-Marketplace/pkg/jwt"
	"Recipe-Marketplace/pkg/session"
	"context"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"strings"
)

const ProfileImageFolder = "user-profile"

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserInfo, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		LoadSession(ctx context.Context, userID string) (*session.Session, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, sess *session.Session) (domain.UserInfo, error)
		Logout(sess *session.Session)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserInfo, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return domain.UserInfo{}, err
	}
	if exists {
		return domain.UserInfo{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserInfo{}, domain.ErrHashPassword
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserInfo{}, err
	}

	return toUserInfo(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtService.TokenLifetime().Seconds()),
		User:      toUserInfo(user),
	}, nil
}

// LoadSession builds the per-request session for an authenticated user.
func (s *userService) LoadSession(ctx context.Context, userID string) (*session.Session, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	sess.Init(user.ID.String(), toUserInfo(user))
	return sess, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, sess *session.Session) (domain.UserInfo, error) {
	if sess == nil || !sess.Authenticated {
		return domain.UserInfo{}, domain.ErrNotAuthenticated
	}

	user, err := s.getUser(ctx, sess.UID)
	if err != nil {
		return domain.UserInfo{}, err
	}

	var partial domain.UserInfo
	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
		partial.Name = name
	}

	if req.Image != nil {
		var objectKey string
		if oldKey := s.s3.GetObjectKeyFromLink(user.ImageURL); oldKey != "" {
			objectKey, err = s.s3.UpdateFile(oldKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, err = s.s3.UploadFile(fmt.Sprintf("profile-%s", user.ID.String()), req.Image, ProfileImageFolder, storage.AllowImage...)
		}
		if err != nil {
			return domain.UserInfo{}, err
		}
		user.ImageURL = s.s3.GetPublicLinkKey(objectKey)
		partial.ImageURL = user.ImageURL
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		log.Errorf("failed to update profile of user %s: %v", user.ID, err)
		return domain.UserInfo{}, err
	}

	sess.Update(partial)
	return sess.Info(), nil
}

// Logout resets sess. Issued tokens are not revoked.
func (s *userService) Logout(sess *session.Session) {
	if sess == nil {
		return
	}
	sess.Clear()
}

func (s *userService) getUser(ctx context.Context, userID string) (*entities.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func toUserInfo(user *entities.User) domain.UserInfo {
	return domain.UserInfo{
		ID:       user.ID.String(),
		Name:     user.Name,
		Email:    user.Email,
		ImageURL: user.ImageURL,
		Role:     user.Role,
	}
}
