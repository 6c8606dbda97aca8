package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	"anoa.com/kolabboard/internal/modules/user/dto"
	"anoa.com/kolabboard/internal/modules/user/repository"
	"anoa.com/kolabboard/pkg/apperror"
	commonDto "anoa.com/kolabboard/pkg/dto"
	"anoa.com/kolabboard/pkg/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email/username or password", apperror.ErrUnauthenticated)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest) (*dto.RegisteredUser, error)
	RegisterFaculty(ctx context.Context, input dto.RegisterFacultyRequest) (*dto.RegisteredUser, error)
	Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error)
	CheckUser(ctx context.Context, input string) error
}

type authService struct {
	repo     repository.UserRepository
	tokens   token.Service
	hashCost int
}

func NewAuthService(repo repository.UserRepository, tokens token.Service) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) (*dto.RegisteredUser, error) {
	user, err := s.newUser(input.Username, input.Email, input.Password, entity.RoleStudent)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user, nil); err != nil {
		return nil, registerErr(err)
	}

	return &dto.RegisteredUser{UserResponse: *commonDto.ToUserResponse(user)}, nil
}

func (s *authService) RegisterFaculty(ctx context.Context, input dto.RegisterFacultyRequest) (*dto.RegisteredUser, error) {
	user, err := s.newUser(input.Username, input.Email, input.Password, entity.RoleFaculty)
	if err != nil {
		return nil, err
	}

	profile := &entity.FacultyProfile{
		NIP:          strings.TrimSpace(input.NIP),
		Name:         strings.TrimSpace(input.Name),
		Faculty:      strings.TrimSpace(input.Faculty),
		StudyProgram: strings.TrimSpace(input.StudyProgram),
	}
	if err := s.repo.Create(ctx, user, profile); err != nil {
		return nil, registerErr(err)
	}

	return &dto.RegisteredUser{
		UserResponse:   *commonDto.ToUserResponse(user),
		FacultyProfile: user.FacultyProfile,
	}, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByIdentifier(ctx, input.Input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Issue(token.Principal{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        commonDto.ToUserResponse(user),
	}, nil
}

func (s *authService) CheckUser(ctx context.Context, input string) error {
	_, err := s.repo.FindByIdentifier(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user not found: %w", apperror.ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *authService) newUser(username, email, password string, role entity.Role) (*entity.User, error) {
	// Identifiers containing "@" are resolved as emails on login.
	if strings.Contains(username, "@") {
		return nil, fmt.Errorf("username must not contain '@': %w", apperror.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &entity.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

func registerErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("email or username already used: %w", apperror.ErrConflict)
	}
	return err
}
