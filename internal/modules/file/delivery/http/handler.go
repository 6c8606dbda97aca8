package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/modules/file/dto"
	file "anoa.com/kolabboard/internal/modules/file/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileHandler struct {
	service file.Service
}

func NewFileHandler(service file.Service) *FileHandler {
	return &FileHandler{service: service}
}

func (h *FileHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	f, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "file created", f)
}

func (h *FileHandler) Upload(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, file.MaxUploadSize+1<<20)

	var form dto.UploadFileForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err)
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := h.service.Upload(c.Request.Context(), userID, uuid.MustParse(form.CardID), header)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "file uploaded", f)
}

func (h *FileHandler) ListByCard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	cardID, ok := response.ParamUUID(c, "cardId")
	if !ok {
		return
	}

	files, err := h.service.ListByCard(c.Request.Context(), userID, cardID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "files retrieved", files)
}

func (h *FileHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	fileID, ok := response.ParamUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, fileID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "file deleted", nil)
}
