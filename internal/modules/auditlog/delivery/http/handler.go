package handler

import (
	"net/http"

	"anoa.com/kolabboard/internal/modules/auditlog/dto"
	auditlog "anoa.com/kolabboard/internal/modules/auditlog/service"
	"anoa.com/kolabboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuditLogHandler struct {
	service auditlog.Service
}

func NewAuditLogHandler(service auditlog.Service) *AuditLogHandler {
	return &AuditLogHandler{service: service}
}

func (h *AuditLogHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.AuditLogFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, err)
		return
	}

	logs, err := h.service.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "audit logs retrieved", logs)
}

func (h *AuditLogHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateAuditLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	log, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "audit log recorded", log)
}
