package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/curriculum"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
)

type startDayRequest struct {
	LogDate string `json:"log_date"`
}

// AdminCurriculum 返回课程进度（统计全部日志）
func (a *API) AdminCurriculum(c *gin.Context) {
	a.respondCurriculum(c, a.ownerFilter(c))
}

// GetCurriculumDraft 返回某天的日志草稿，供后台表单预填
func (a *API) GetCurriculumDraft(c *gin.Context) {
	dayID := strings.ToUpper(strings.TrimSpace(c.Param("dayId")))
	day, ok := a.curriculum.Curriculum().Day(dayID)
	if !ok {
		respondServiceError(c, service.ErrCurriculumDayNotFound, "failed to load curriculum day")
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day, "draft": curriculum.BuildDailyLogDraft(day)})
}

// StartCurriculumDay 确保周里程碑存在并创建当天日志
func (a *API) StartCurriculumDay(c *gin.Context) {
	var req startDayRequest
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req, "invalid start payload") {
			return
		}
	}

	result, err := a.curriculum.StartDay(c.Request.Context(), currentUserID(c), c.Param("dayId"), req.LogDate)
	if err != nil {
		respondServiceError(c, err, "failed to start curriculum day")
		return
	}
	c.JSON(http.StatusCreated, result)
}
