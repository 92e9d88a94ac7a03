package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
)

type roadmapItemPayload struct {
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Phase        string   `json:"phase"`
	Status       string   `json:"status"`
	PlannedHours *float64 `json:"planned_hours"`
	ActualHours  *float64 `json:"actual_hours"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	IsPublic     bool     `json:"is_public"`
	SortOrder    int      `json:"sort_order"`
}

func (p roadmapItemPayload) toInput() service.RoadmapItemInput {
	return service.RoadmapItemInput{
		Title:        p.Title,
		Summary:      p.Summary,
		Phase:        p.Phase,
		Status:       p.Status,
		PlannedHours: p.PlannedHours,
		ActualHours:  p.ActualHours,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		IsPublic:     p.IsPublic,
		SortOrder:    p.SortOrder,
	}
}

type dailyLogPayload struct {
	RoadmapItemID   string   `json:"roadmap_item_id"`
	LogDate         string   `json:"log_date"`
	Title           string   `json:"title"`
	Notes           string   `json:"notes"`
	Status          string   `json:"status"`
	PlannedHours    *float64 `json:"planned_hours"`
	ActualHours     *float64 `json:"actual_hours"`
	IsPublic        bool     `json:"is_public"`
	CurriculumDayID string   `json:"curriculum_day_id"`
}

func (p dailyLogPayload) toInput() service.DailyLogInput {
	return service.DailyLogInput{
		RoadmapItemID:   p.RoadmapItemID,
		LogDate:         p.LogDate,
		Title:           p.Title,
		Notes:           p.Notes,
		Status:          p.Status,
		PlannedHours:    p.PlannedHours,
		ActualHours:     p.ActualHours,
		IsPublic:        p.IsPublic,
		CurriculumDayID: p.CurriculumDayID,
	}
}

type artifactRequest struct {
	RoadmapItemID string `json:"roadmap_item_id"`
	DailyLogID    string `json:"daily_log_id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	IsPublic      bool   `json:"is_public"`
	SortOrder     int    `json:"sort_order"`
}

func (p artifactRequest) toInput() service.ArtifactInput {
	return service.ArtifactInput{
		RoadmapItemID: p.RoadmapItemID,
		DailyLogID:    p.DailyLogID,
		Type:          p.Type,
		Title:         p.Title,
		URL:           p.URL,
		IsPublic:      p.IsPublic,
		SortOrder:     p.SortOrder,
	}
}

func (a *API) ownerFilter(c *gin.Context) store.Filter {
	return store.Filter{UserID: currentUserID(c)}
}

// AdminRoadmap 返回包含非公开记录的路线图视图
func (a *API) AdminRoadmap(c *gin.Context) {
	a.respondRoadmap(c, a.ownerFilter(c))
}

// AdminRoadmapWeeks 返回包含非公开记录的按周视图
func (a *API) AdminRoadmapWeeks(c *gin.Context) {
	a.respondWeeks(c, a.ownerFilter(c))
}

// ListRoadmapItems 返回当前用户的全部条目（不含日志）
func (a *API) ListRoadmapItems(c *gin.Context) {
	items, err := a.roadmap.Items(c.Request.Context(), a.ownerFilter(c))
	if err != nil {
		respondServiceError(c, err, "failed to list roadmap items")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetRoadmapItem 获取单个条目
func (a *API) GetRoadmapItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := a.roadmap.GetRoadmapItem(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load roadmap item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateRoadmapItem 新建条目
func (a *API) CreateRoadmapItem(c *gin.Context) {
	var req roadmapItemPayload
	if !bindJSON(c, &req, "invalid roadmap item payload") {
		return
	}

	item, err := a.roadmap.CreateRoadmapItem(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to create roadmap item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateRoadmapItem 更新条目
func (a *API) UpdateRoadmapItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req roadmapItemPayload
	if !bindJSON(c, &req, "invalid roadmap item payload") {
		return
	}

	item, err := a.roadmap.UpdateRoadmapItem(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to update roadmap item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteRoadmapItem 删除条目及其下的日志与产出物
func (a *API) DeleteRoadmapItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.roadmap.DeleteRoadmapItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete roadmap item")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDailyLogs 返回日志，可用 roadmap_item_id 过滤
func (a *API) ListDailyLogs(c *gin.Context) {
	filter := store.DailyLogFilter{
		Filter:        a.ownerFilter(c),
		RoadmapItemID: strings.TrimSpace(c.Query("roadmap_item_id")),
	}

	logs, err := a.roadmap.ListDailyLogs(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "failed to list daily logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_logs": logs})
}

// CreateDailyLog 新建日志
func (a *API) CreateDailyLog(c *gin.Context) {
	var req dailyLogPayload
	if !bindJSON(c, &req, "invalid daily log payload") {
		return
	}

	entry, err := a.roadmap.CreateDailyLog(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to create daily log")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"daily_log": entry})
}

// UpdateDailyLog 更新日志
func (a *API) UpdateDailyLog(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req dailyLogPayload
	if !bindJSON(c, &req, "invalid daily log payload") {
		return
	}

	entry, err := a.roadmap.UpdateDailyLog(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to update daily log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_log": entry})
}

// DeleteDailyLog 删除日志
func (a *API) DeleteDailyLog(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.roadmap.DeleteDailyLog(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete daily log")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListArtifacts 返回产出物列表
func (a *API) ListArtifacts(c *gin.Context) {
	artifacts, err := a.roadmap.ListArtifacts(c.Request.Context(), a.ownerFilter(c))
	if err != nil {
		respondServiceError(c, err, "failed to list artifacts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": artifacts})
}

// CreateArtifact 新建产出物
func (a *API) CreateArtifact(c *gin.Context) {
	var req artifactRequest
	if !bindJSON(c, &req, "invalid artifact payload") {
		return
	}

	artifact, err := a.roadmap.CreateArtifact(c.Request.Context(), currentUserID(c), req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to create artifact")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"artifact": artifact})
}

// UpdateArtifact 更新产出物
func (a *API) UpdateArtifact(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req artifactRequest
	if !bindJSON(c, &req, "invalid artifact payload") {
		return
	}

	artifact, err := a.roadmap.UpdateArtifact(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "failed to update artifact")
		return
	}
	c.JSON(http.StatusOK, gin.H{"artifact": artifact})
}

// DeleteArtifact 删除产出物
func (a *API) DeleteArtifact(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.roadmap.DeleteArtifact(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete artifact")
		return
	}
	c.Status(http.StatusNoContent)
}
