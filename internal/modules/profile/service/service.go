package profile

import (
	"context"
	"fmt"
	"strings"

	"anoa.com/kolabboard/internal/entity"
	profileDto "anoa.com/kolabboard/internal/modules/profile/dto"
	"anoa.com/kolabboard/internal/modules/profile/repository"
	"anoa.com/kolabboard/pkg/apperror"
	commonDto "anoa.com/kolabboard/pkg/dto"
	"github.com/google/uuid"
)

type ProfileService interface {
	GetStudentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.StudentProfileResponse, error)
	UpdateStudentProfile(ctx context.Context, userID uuid.UUID, role entity.Role, input profileDto.UpdateStudentProfileInput) (*profileDto.StudentProfileResponse, error)
	GetFacultyProfile(ctx context.Context, userID uuid.UUID) (*profileDto.FacultyProfileResponse, error)
	UpdateFacultyProfile(ctx context.Context, userID uuid.UUID, role entity.Role, input profileDto.UpdateFacultyProfileInput) (*profileDto.FacultyProfileResponse, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) GetStudentProfile(ctx context.Context, userID uuid.UUID) (*profileDto.StudentProfileResponse, error) {
	user, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if user.StudentProfile == nil {
		return nil, fmt.Errorf("student profile not found: %w", apperror.ErrNotFound)
	}

	return &profileDto.StudentProfileResponse{
		StudentProfile: user.StudentProfile,
		User:           commonDto.ToUserResponse(user),
	}, nil
}

func (s *profileService) UpdateStudentProfile(ctx context.Context, userID uuid.UUID, role entity.Role, input profileDto.UpdateStudentProfileInput) (*profileDto.StudentProfileResponse, error) {
	if !role.Is(entity.RoleStudent) {
		return nil, fmt.Errorf("only students have a student profile: %w", apperror.ErrForbidden)
	}

	user, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}

	profile := &entity.StudentProfile{
		UserID:       user.ID,
		NIM:          strings.TrimSpace(input.NIM),
		Name:         strings.TrimSpace(input.Name),
		Faculty:      strings.TrimSpace(input.Faculty),
		StudyProgram: strings.TrimSpace(input.StudyProgram),
	}
	if err := s.repo.SaveStudentProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.GetStudentProfile(ctx, userID)
}

func (s *profileService) GetFacultyProfile(ctx context.Context, userID uuid.UUID) (*profileDto.FacultyProfileResponse, error) {
	user, err := s.repo.FindUser(ctx, userID)
	if err != nil {
		return nil, apperror.FromDB(err)
	}
	if user.FacultyProfile == nil {
		return nil, fmt.Errorf("faculty profile not found: %w", apperror.ErrNotFound)
	}

	return &profileDto.FacultyProfileResponse{
		FacultyProfile: user.FacultyProfile,
		User:           commonDto.ToUserResponse(user),
	}, nil
}

func (s *profileService) UpdateFacultyProfile(ctx context.Context, userID uuid.UUID, role entity.Role, input profileDto.UpdateFacultyProfileInput) (*profileDto.FacultyProfileResponse, error) {
	if !role.Is(entity.RoleFaculty) {
		return nil, fmt.Errorf("only faculty members have a faculty profile: %w", apperror.ErrForbidden)
	}

	updates := map[string]interface{}{}
	if input.NIP != nil {
		updates["nip"] = strings.TrimSpace(*input.NIP)
	}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Faculty != nil {
		updates["faculty"] = strings.TrimSpace(*input.Faculty)
	}
	if input.StudyProgram != nil {
		updates["study_program"] = strings.TrimSpace(*input.StudyProgram)
	}

	if _, err := s.repo.UpdateFacultyProfile(ctx, userID, updates); err != nil {
		return nil, apperror.FromDB(err)
	}

	return s.GetFacultyProfile(ctx, userID)
}
