package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/handler"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionName = "portfolio_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}
	r.Use(requestMetrics())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/api")
	{
		public.GET("/roadmap", api.GetRoadmap)
		public.GET("/roadmap/weeks", api.GetRoadmapWeeks)
		public.GET("/curriculum", api.GetCurriculum)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		// 需要认证的后台 API
		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/roadmap", api.AdminRoadmap)
			auth.GET("/roadmap/weeks", api.AdminRoadmapWeeks)

			auth.GET("/roadmap-items", api.ListRoadmapItems)
			auth.POST("/roadmap-items", api.CreateRoadmapItem)
			auth.GET("/roadmap-items/:id", api.GetRoadmapItem)
			auth.PUT("/roadmap-items/:id", api.UpdateRoadmapItem)
			auth.DELETE("/roadmap-items/:id", api.DeleteRoadmapItem)

			auth.GET("/daily-logs", api.ListDailyLogs)
			auth.POST("/daily-logs", api.CreateDailyLog)
			auth.PUT("/daily-logs/:id", api.UpdateDailyLog)
			auth.DELETE("/daily-logs/:id", api.DeleteDailyLog)

			auth.GET("/artifacts", api.ListArtifacts)
			auth.POST("/artifacts", api.CreateArtifact)
			auth.PUT("/artifacts/:id", api.UpdateArtifact)
			auth.DELETE("/artifacts/:id", api.DeleteArtifact)

			auth.GET("/tags", api.GetTags)
			auth.POST("/tags", api.CreateTag)
			auth.PUT("/tags/:id", api.UpdateTag)
			auth.DELETE("/tags/:id", api.DeleteTag)

			auth.GET("/curriculum", api.AdminCurriculum)
			auth.GET("/curriculum/days/:dayId/draft", api.GetCurriculumDraft)
			auth.POST("/curriculum/days/:dayId/start", api.StartCurriculumDay)
		}
	}

	return r
}

// requestMetrics 记录请求数与耗时，未匹配路由统一记为 unmatched
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
