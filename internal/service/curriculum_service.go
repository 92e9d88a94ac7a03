package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/curriculum"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/metrics"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/roadmap"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
)

var (
	// ErrCurriculumDayNotFound 在课程日 ID 未知时返回
	ErrCurriculumDayNotFound = errors.New("curriculum day not found")
	// ErrCurriculumDayLogged 在课程日已经有日志时返回
	ErrCurriculumDayLogged = errors.New("curriculum day already logged")
)

// CurriculumService 将课程计划与已记录的日志对照，并负责开始某一天的学习
type CurriculumService struct {
	store      store.Store
	curriculum curriculum.Curriculum
}

// CurriculumDayView 是课程日加上其完成状态
type CurriculumDayView struct {
	curriculum.Day
	State string `json:"state"`
}

// CurriculumOverview 汇总课程进度
type CurriculumOverview struct {
	Days     []CurriculumDayView `json:"days"`
	Progress curriculum.Progress `json:"progress"`
	NextDay  *curriculum.Day     `json:"next_day"`
	Complete bool                `json:"complete"`
}

// StartDayResult 返回开始某天时使用的周里程碑与新建日志
type StartDayResult struct {
	Milestone        db.RoadmapItem `json:"milestone"`
	MilestoneCreated bool           `json:"milestone_created"`
	Log              db.DailyLog    `json:"log"`
}

// NewCurriculumService 使用内置课程构造服务
func NewCurriculumService(s store.Store) *CurriculumService {
	return NewCurriculumServiceWith(s, curriculum.Default())
}

// NewCurriculumServiceWith 使用指定课程构造服务
func NewCurriculumServiceWith(s store.Store, c curriculum.Curriculum) *CurriculumService {
	return &CurriculumService{store: s, curriculum: c}
}

// Curriculum 返回当前使用的课程定义
func (s *CurriculumService) Curriculum() curriculum.Curriculum {
	return s.curriculum
}

// Overview 计算每一天的状态、整体进度以及下一天
func (s *CurriculumService) Overview(ctx context.Context, filter store.Filter) (CurriculumOverview, error) {
	logs, err := s.store.ListDailyLogs(ctx, store.DailyLogFilter{Filter: filter})
	if err != nil {
		return CurriculumOverview{}, fmt.Errorf("curriculum overview: %w", err)
	}

	completed := curriculum.CompletedDayIDs(logs)
	days := s.curriculum.Days()

	views := make([]CurriculumDayView, 0, len(days))
	for _, day := range days {
		views = append(views, CurriculumDayView{Day: day, State: curriculum.StateOf(day, completed)})
	}

	progress := curriculum.ComputeProgress(days, completed)
	next := curriculum.NextIncompleteDay(days, completed)

	metrics.CurriculumCompletedDays.Set(float64(progress.CompletedDays))
	metrics.ViewBuildsTotal.WithLabelValues("curriculum").Inc()

	return CurriculumOverview{
		Days:     views,
		Progress: progress,
		NextDay:  next,
		Complete: next == nil,
	}, nil
}

// StartDay 确保该周的里程碑存在，然后根据课程模板新建当天日志。
// logDate 为空时使用课程建议日期。
func (s *CurriculumService) StartDay(ctx context.Context, userID, dayID, logDate string) (StartDayResult, error) {
	day, ok := s.curriculum.Day(strings.ToUpper(strings.TrimSpace(dayID)))
	if !ok {
		return StartDayResult{}, ErrCurriculumDayNotFound
	}

	logDate = strings.TrimSpace(logDate)
	if logDate != "" {
		if _, ok := roadmap.ParseDate(logDate); !ok {
			return StartDayResult{}, invalidInput("log_date must be YYYY-MM-DD")
		}
	}

	filter := store.Filter{UserID: userID}
	logs, err := s.store.ListDailyLogs(ctx, store.DailyLogFilter{Filter: filter})
	if err != nil {
		return StartDayResult{}, fmt.Errorf("start curriculum day: %w", err)
	}
	if _, logged := curriculum.CompletedDayIDs(logs)[day.ID]; logged {
		return StartDayResult{}, ErrCurriculumDayLogged
	}

	milestone, created, err := s.ensureMilestone(ctx, userID, day.Week)
	if err != nil {
		return StartDayResult{}, err
	}

	draft := curriculum.BuildDailyLogDraft(day)
	if logDate != "" {
		draft.LogDate = logDate
	}

	planned := draft.PlannedHours
	dayRef := draft.CurriculumDayID
	entry := db.DailyLog{
		RoadmapItemID:   milestone.ID,
		UserID:          userID,
		LogDate:         draft.LogDate,
		Title:           draft.Title,
		Notes:           draft.Notes,
		Status:          db.StatusInProgress,
		PlannedHours:    &planned,
		CurriculumDayID: &dayRef,
	}
	if err := s.store.CreateDailyLog(ctx, &entry); err != nil {
		return StartDayResult{}, fmt.Errorf("create curriculum log: %w", err)
	}

	log.Printf("[curriculum] started %s under milestone %s", day.ID, milestone.ID)
	return StartDayResult{Milestone: milestone, MilestoneCreated: created, Log: entry}, nil
}

func (s *CurriculumService) ensureMilestone(ctx context.Context, userID string, weekNumber int) (db.RoadmapItem, bool, error) {
	items, err := s.store.ListRoadmapItems(ctx, store.Filter{UserID: userID})
	if err != nil {
		return db.RoadmapItem{}, false, fmt.Errorf("list milestones: %w", err)
	}
	if existing, ok := curriculum.FindWeekMilestone(items, weekNumber); ok {
		return existing, false, nil
	}

	week, ok := s.curriculum.Week(weekNumber)
	if !ok {
		return db.RoadmapItem{}, false, ErrCurriculumDayNotFound
	}

	milestone := curriculum.BuildWeekMilestone(week)
	milestone.UserID = userID
	if err := s.store.CreateRoadmapItem(ctx, &milestone); err != nil {
		return db.RoadmapItem{}, false, fmt.Errorf("create milestone: %w", err)
	}
	log.Printf("[curriculum] created milestone %q", milestone.Title)
	return milestone, true, nil
}
