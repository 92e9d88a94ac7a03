package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/locale"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
)

type logPayload struct {
	db.DailyLog
	NotesHTML   string `json:"notes_html"`
	StatusLabel string `json:"status_label"`
}

type artifactPayload struct {
	db.Artifact
	TypeLabel string `json:"type_label"`
}

type itemPayload struct {
	db.RoadmapItem
	StatusLabel     string            `json:"status_label"`
	ProgressPercent int               `json:"progress_percent"`
	DailyLogs       []logPayload      `json:"daily_logs"`
	Artifacts       []artifactPayload `json:"artifacts"`
}

type weekItemPayload struct {
	itemPayload
	WeekPlannedHours float64 `json:"week_planned_hours"`
	WeekActualHours  float64 `json:"week_actual_hours"`
}

type weekPayload struct {
	Key               string            `json:"key"`
	Label             string            `json:"label"`
	StartDate         string            `json:"start_date"`
	EndDate           string            `json:"end_date"`
	Items             []weekItemPayload `json:"items"`
	TotalPlannedHours float64           `json:"total_planned_hours"`
	TotalActualHours  float64           `json:"total_actual_hours"`
}

type curriculumDayPayload struct {
	service.CurriculumDayView
	StateLabel string `json:"state_label"`
}

func requestLanguage(c *gin.Context) string {
	return locale.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
}

// GetRoadmap 返回公开的路线图条目与阶段列表
func (a *API) GetRoadmap(c *gin.Context) {
	a.respondRoadmap(c, a.publicFilter())
}

// GetRoadmapWeeks 返回公开的按周视图
func (a *API) GetRoadmapWeeks(c *gin.Context) {
	a.respondWeeks(c, a.publicFilter())
}

// GetCurriculum 返回课程进度（仅统计公开日志）
func (a *API) GetCurriculum(c *gin.Context) {
	a.respondCurriculum(c, a.publicFilter())
}

func (a *API) respondRoadmap(c *gin.Context, filter store.Filter) {
	language := requestLanguage(c)
	phase := strings.TrimSpace(c.Query("phase"))

	overview, err := a.roadmap.Overview(c.Request.Context(), filter, phase)
	if err != nil {
		respondServiceError(c, err, "failed to load roadmap")
		return
	}

	items := make([]itemPayload, 0, len(overview.Items))
	for _, item := range overview.Items {
		items = append(items, buildItemPayload(language, item.RoadmapItem, item.ProgressPercent, item.DailyLogs, item.Artifacts))
	}

	c.Header("Content-Language", locale.PreferenceForLanguage(language).HTMLLang)
	c.JSON(http.StatusOK, gin.H{
		"items":         items,
		"phases":        overview.Phases,
		"phase":         phase,
		"language":      language,
		"status_labels": locale.StatusLabels(language),
	})
}

func (a *API) respondWeeks(c *gin.Context, filter store.Filter) {
	language := requestLanguage(c)

	groups, err := a.roadmap.Weeks(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "failed to load roadmap weeks")
		return
	}

	weeks := make([]weekPayload, 0, len(groups))
	for _, group := range groups {
		week := weekPayload{
			Key:               group.Key,
			Label:             group.Label,
			StartDate:         group.StartDate,
			EndDate:           group.EndDate,
			Items:             make([]weekItemPayload, 0, len(group.Items)),
			TotalPlannedHours: group.TotalPlannedHours,
			TotalActualHours:  group.TotalActualHours,
		}
		for _, item := range group.Items {
			week.Items = append(week.Items, weekItemPayload{
				itemPayload:      buildItemPayload(language, item.RoadmapItem, item.ProgressPercent, item.DailyLogs, item.Artifacts),
				WeekPlannedHours: item.PlannedHours,
				WeekActualHours:  item.ActualHours,
			})
		}
		weeks = append(weeks, week)
	}

	c.Header("Content-Language", locale.PreferenceForLanguage(language).HTMLLang)
	c.JSON(http.StatusOK, gin.H{
		"weeks":         weeks,
		"language":      language,
		"status_labels": locale.StatusLabels(language),
	})
}

func (a *API) respondCurriculum(c *gin.Context, filter store.Filter) {
	language := requestLanguage(c)

	overview, err := a.curriculum.Overview(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "failed to load curriculum")
		return
	}

	days := make([]curriculumDayPayload, 0, len(overview.Days))
	for _, day := range overview.Days {
		days = append(days, curriculumDayPayload{
			CurriculumDayView: day,
			StateLabel:        locale.StatusLabel(language, day.State),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"days":     days,
		"progress": overview.Progress,
		"next_day": overview.NextDay,
		"complete": overview.Complete,
		"language": language,
	})
}

func buildItemPayload(language string, item db.RoadmapItem, progress int, logs []db.DailyLog, artifacts []db.Artifact) itemPayload {
	payload := itemPayload{
		RoadmapItem:     item,
		StatusLabel:     locale.StatusLabel(language, item.Status),
		ProgressPercent: progress,
		DailyLogs:       make([]logPayload, 0, len(logs)),
		Artifacts:       make([]artifactPayload, 0, len(artifacts)),
	}

	for _, entry := range logs {
		notesHTML, err := renderMarkdown(entry.Notes)
		if err != nil {
			log.Printf("[handler] render notes for log %s: %v", entry.ID, err)
		}
		status := entry.Status
		if status == "" {
			status = item.Status
		}
		payload.DailyLogs = append(payload.DailyLogs, logPayload{
			DailyLog:    entry,
			NotesHTML:   notesHTML,
			StatusLabel: locale.StatusLabel(language, status),
		})
	}

	for _, artifact := range artifacts {
		payload.Artifacts = append(payload.Artifacts, artifactPayload{
			Artifact:  artifact,
			TypeLabel: locale.ArtifactLabel(language, artifact.Type),
		})
	}
	return payload
}

