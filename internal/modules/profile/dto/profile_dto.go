package dto

import (
	"anoa.com/kolabboard/internal/entity"
	commonDto "anoa.com/kolabboard/pkg/dto"
)

// UpdateStudentProfileInput replaces every field; the profile is created
// when the student has none yet.
type UpdateStudentProfileInput struct {
	NIM          string `json:"nim" binding:"required,notblank,max=30"`
	Name         string `json:"name" binding:"required,notblank,max=100"`
	Faculty      string `json:"faculty" binding:"required,notblank,max=100"`
	StudyProgram string `json:"study_program" binding:"required,notblank,max=100"`
}

// UpdateFacultyProfileInput only writes supplied fields.
type UpdateFacultyProfileInput struct {
	NIP          *string `json:"nip" binding:"omitempty,notblank,max=30"`
	Name         *string `json:"name" binding:"omitempty,notblank,max=100"`
	Faculty      *string `json:"faculty" binding:"omitempty,max=100"`
	StudyProgram *string `json:"study_program" binding:"omitempty,max=100"`
}

type StudentProfileResponse struct {
	*entity.StudentProfile
	User *commonDto.UserResponse `json:"user"`
}

type FacultyProfileResponse struct {
	*entity.FacultyProfile
	User *commonDto.UserResponse `json:"user"`
}
