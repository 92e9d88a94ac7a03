package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, key string) (string, error) {
	raw := strings.TrimSpace(c.Param(key))
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s", key)
	}
	return id.String(), nil
}

// respondServiceError 将服务层错误映射为 HTTP 状态码
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidRoadmapInput), errors.Is(err, service.ErrTagInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRoadmapItemNotFound),
		errors.Is(err, service.ErrDailyLogNotFound),
		errors.Is(err, service.ErrArtifactNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrCurriculumDayNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTagExists), errors.Is(err, service.ErrCurriculumDayLogged):
		respondError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("[handler] %s: %v", fallback, err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
