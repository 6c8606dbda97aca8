package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/entity"
	profileDto "anoa.com/kolabboard/internal/modules/profile/dto"
	profile "anoa.com/kolabboard/internal/modules/profile/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetStudentProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.profileService.GetStudentProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "student profile found", result)
}

func (h *ProfileHandler) UpdateStudentProfile(c *gin.Context) {
	principal, err := response.GetPrincipal(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input profileDto.UpdateStudentProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := h.profileService.UpdateStudentProfile(c.Request.Context(), principal.ID, entity.NormalizeRole(principal.Role), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "student profile updated", result)
}

func (h *ProfileHandler) GetFacultyProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.profileService.GetFacultyProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "faculty profile found", result)
}

func (h *ProfileHandler) UpdateFacultyProfile(c *gin.Context) {
	principal, err := response.GetPrincipal(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input profileDto.UpdateFacultyProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := h.profileService.UpdateFacultyProfile(c.Request.Context(), principal.ID, entity.NormalizeRole(principal.Role), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "faculty profile updated", result)
}
