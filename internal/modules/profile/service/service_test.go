package profile

import (
	"context"
	"errors"
	"testing"

	"anoa.com/kolabboard/internal/entity"
	profileDto "anoa.com/kolabboard/internal/modules/profile/dto"
	"anoa.com/kolabboard/internal/modules/profile/repository"
	"anoa.com/kolabboard/internal/testutil"
	"anoa.com/kolabboard/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentProfileUpsert(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db))
	ctx := context.Background()
	student := testutil.CreateUser(t, db, entity.RoleStudent)

	_, err := svc.GetStudentProfile(ctx, student.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	input := profileDto.UpdateStudentProfileInput{NIM: "1301", Name: "Alice", Faculty: "FIF", StudyProgram: "IF"}
	got, err := svc.UpdateStudentProfile(ctx, student.ID, entity.Role("student"), input)
	require.NoError(t, err)
	assert.Equal(t, "1301", got.NIM)
	assert.Equal(t, student.Username, got.User.Username)

	input.Name = "Alice B"
	got, err = svc.UpdateStudentProfile(ctx, student.ID, entity.RoleStudent, input)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)

	var count int64
	db.Model(&entity.StudentProfile{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProfileRoleChecks(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db))
	ctx := context.Background()
	faculty := testutil.CreateUser(t, db, entity.RoleFaculty)

	_, err := svc.UpdateStudentProfile(ctx, faculty.ID, entity.RoleFaculty, profileDto.UpdateStudentProfileInput{NIM: "1", Name: "x", Faculty: "x", StudyProgram: "x"})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)

	_, err = svc.UpdateFacultyProfile(ctx, faculty.ID, entity.RoleStudent, profileDto.UpdateFacultyProfileInput{})
	assert.True(t, errors.Is(err, apperror.ErrForbidden), "got %v", err)
}

func TestFacultyProfilePartialUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db))
	ctx := context.Background()
	faculty := testutil.CreateUser(t, db, entity.RoleFaculty)

	_, err := svc.UpdateFacultyProfile(ctx, faculty.ID, entity.RoleFaculty, profileDto.UpdateFacultyProfileInput{Name: testutil.Ptr("x")})
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)

	require.NoError(t, db.Create(&entity.FacultyProfile{UserID: faculty.ID, NIP: "198", Name: "Dr. A", Faculty: "FIF"}).Error)

	got, err := svc.UpdateFacultyProfile(ctx, faculty.ID, entity.Role("faculty"), profileDto.UpdateFacultyProfileInput{Name: testutil.Ptr("Dr. B")})
	require.NoError(t, err)
	assert.Equal(t, "Dr. B", got.Name)
	assert.Equal(t, "198", got.NIP)
	assert.Equal(t, "FIF", got.Faculty)
}
