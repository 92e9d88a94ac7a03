package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
)

type tagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

// GetTags 获取标签列表
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.tags.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "failed to list tags")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag 创建新标签
func (a *API) CreateTag(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req, "tag name is required") {
		return
	}

	tag, err := a.tags.Create(c.Request.Context(), currentUserID(c), service.TagInput{Name: req.Name, Color: req.Color})
	if err != nil {
		respondServiceError(c, err, "failed to create tag")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// UpdateTag 更新标签
func (a *API) UpdateTag(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req tagRequest
	if !bindJSON(c, &req, "tag name is required") {
		return
	}

	tag, err := a.tags.Update(c.Request.Context(), id, service.TagInput{Name: req.Name, Color: req.Color})
	if err != nil {
		respondServiceError(c, err, "failed to update tag")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag 删除标签
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.tags.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}
