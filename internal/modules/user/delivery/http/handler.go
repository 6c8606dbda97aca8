package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/modules/user/dto"
	user "anoa.com/kolabboard/internal/modules/user/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service user.AuthService
}

func NewAuthHandler(service user.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	created, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "user": created})
}

func (h *AuthHandler) RegisterFaculty(c *gin.Context) {
	var req dto.RegisterFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	created, err := h.service.RegisterFaculty(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "faculty registration successful", "user": created})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	auth, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "login successful",
		"token":      auth.AccessToken,
		"token_type": auth.TokenType,
		"expires_at": auth.ExpiresAt,
		"user":       auth.User,
	})
}

func (h *AuthHandler) CheckUser(c *gin.Context) {
	var req dto.CheckUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	if err := h.service.CheckUser(c.Request.Context(), req.Input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user found"})
}
