package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/metrics"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/roadmap"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrRoadmapItemNotFound 在路线图条目不存在时返回
	ErrRoadmapItemNotFound = errors.New("roadmap item not found")
	// ErrDailyLogNotFound 在日志不存在时返回
	ErrDailyLogNotFound = errors.New("daily log not found")
	// ErrArtifactNotFound 在产出物不存在时返回
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrInvalidRoadmapInput 当输入字段不合法时返回
	ErrInvalidRoadmapInput = errors.New("invalid roadmap input")
)

var (
	itemStatuses = map[string]struct{}{
		db.StatusPlanned:    {},
		db.StatusInProgress: {},
		db.StatusBlocked:    {},
		db.StatusDone:       {},
	}
	artifactTypes = map[string]struct{}{
		db.ArtifactPR:    {},
		db.ArtifactDemo:  {},
		db.ArtifactBlog:  {},
		db.ArtifactRepo:  {},
		db.ArtifactDoc:   {},
		db.ArtifactOther: {},
	}
)

// RoadmapService 负责路线图条目、日志与产出物的增删改查，
// 并把存储中的扁平记录组装成前台视图。
type RoadmapService struct {
	store store.Store
}

// RoadmapItemInput 定义创建/更新路线图条目时可配置字段
type RoadmapItemInput struct {
	Title        string
	Summary      string
	Phase        string
	Status       string
	PlannedHours *float64
	ActualHours  *float64
	StartDate    string
	EndDate      string
	IsPublic     bool
	SortOrder    int
}

// DailyLogInput 定义创建/更新日志时可配置字段
type DailyLogInput struct {
	RoadmapItemID   string
	LogDate         string
	Title           string
	Notes           string
	Status          string
	PlannedHours    *float64
	ActualHours     *float64
	IsPublic        bool
	CurriculumDayID string
}

// ArtifactInput 定义创建/更新产出物时可配置字段
type ArtifactInput struct {
	RoadmapItemID string
	DailyLogID    string
	Type          string
	Title         string
	URL           string
	IsPublic      bool
	SortOrder     int
}

// RoadmapOverview 是前台路线图页面所需的数据
type RoadmapOverview struct {
	Items  []roadmap.Item
	Phases []string
}

// NewRoadmapService 构造 RoadmapService
func NewRoadmapService(s store.Store) *RoadmapService {
	return &RoadmapService{store: s}
}

// load 并发读取三张表
func (s *RoadmapService) load(ctx context.Context, filter store.Filter) ([]db.RoadmapItem, []db.DailyLog, []db.Artifact, error) {
	var (
		rows      []db.RoadmapItem
		logs      []db.DailyLog
		artifacts []db.Artifact
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.ListRoadmapItems(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.store.ListDailyLogs(gctx, store.DailyLogFilter{Filter: filter})
		return err
	})
	g.Go(func() error {
		var err error
		artifacts, err = s.store.ListArtifacts(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("load roadmap: %w", err)
	}

	return rows, logs, artifacts, nil
}

// Items 返回组装后的路线图条目
func (s *RoadmapService) Items(ctx context.Context, filter store.Filter) ([]roadmap.Item, error) {
	rows, logs, artifacts, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	metrics.ViewBuildsTotal.WithLabelValues("items").Inc()
	return roadmap.MapRoadmapItems(rows, logs, artifacts), nil
}

// Overview 返回按阶段筛选后的条目以及全部阶段列表
func (s *RoadmapService) Overview(ctx context.Context, filter store.Filter, phase string) (RoadmapOverview, error) {
	items, err := s.Items(ctx, filter)
	if err != nil {
		return RoadmapOverview{}, err
	}
	return RoadmapOverview{
		Items:  roadmap.FilterByPhase(items, phase),
		Phases: roadmap.PhaseList(items),
	}, nil
}

// Weeks 返回按 ISO 周分组的视图
func (s *RoadmapService) Weeks(ctx context.Context, filter store.Filter) ([]roadmap.WeekGroup, error) {
	items, err := s.Items(ctx, filter)
	if err != nil {
		return nil, err
	}
	metrics.ViewBuildsTotal.WithLabelValues("weeks").Inc()
	return roadmap.BuildWeekGroups(items), nil
}

// GetRoadmapItem 根据 ID 获取路线图条目
func (s *RoadmapService) GetRoadmapItem(ctx context.Context, id string) (*db.RoadmapItem, error) {
	item, err := s.store.GetRoadmapItem(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrRoadmapItemNotFound)
	}
	return item, nil
}

// CreateRoadmapItem 新建路线图条目
func (s *RoadmapService) CreateRoadmapItem(ctx context.Context, userID string, input RoadmapItemInput) (*db.RoadmapItem, error) {
	item := db.RoadmapItem{UserID: userID}
	if err := applyRoadmapItemInput(&item, input); err != nil {
		return nil, err
	}

	if err := s.store.CreateRoadmapItem(ctx, &item); err != nil {
		return nil, err
	}
	log.Printf("[roadmap] created item %s (%q)", item.ID, item.Title)
	return &item, nil
}

// UpdateRoadmapItem 更新路线图条目
func (s *RoadmapService) UpdateRoadmapItem(ctx context.Context, id string, input RoadmapItemInput) (*db.RoadmapItem, error) {
	existing, err := s.GetRoadmapItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyRoadmapItemInput(existing, input); err != nil {
		return nil, err
	}
	if err := s.store.UpdateRoadmapItem(ctx, existing); err != nil {
		return nil, translateNotFound(err, ErrRoadmapItemNotFound)
	}
	return existing, nil
}

// DeleteRoadmapItem 删除路线图条目及其日志、产出物
func (s *RoadmapService) DeleteRoadmapItem(ctx context.Context, id string) error {
	if err := s.store.DeleteRoadmapItem(ctx, id); err != nil {
		return translateNotFound(err, ErrRoadmapItemNotFound)
	}
	log.Printf("[roadmap] deleted item %s", id)
	return nil
}

// ListDailyLogs 返回日志列表
func (s *RoadmapService) ListDailyLogs(ctx context.Context, filter store.DailyLogFilter) ([]db.DailyLog, error) {
	return s.store.ListDailyLogs(ctx, filter)
}

// CreateDailyLog 新建日志，所属条目必须存在
func (s *RoadmapService) CreateDailyLog(ctx context.Context, userID string, input DailyLogInput) (*db.DailyLog, error) {
	entry := db.DailyLog{UserID: userID}
	if err := applyDailyLogInput(&entry, input); err != nil {
		return nil, err
	}
	if _, err := s.GetRoadmapItem(ctx, entry.RoadmapItemID); err != nil {
		return nil, err
	}

	if err := s.store.CreateDailyLog(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateDailyLog 更新日志
func (s *RoadmapService) UpdateDailyLog(ctx context.Context, id string, input DailyLogInput) (*db.DailyLog, error) {
	existing, err := s.store.GetDailyLog(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrDailyLogNotFound)
	}

	if err := applyDailyLogInput(existing, input); err != nil {
		return nil, err
	}
	if _, err := s.GetRoadmapItem(ctx, existing.RoadmapItemID); err != nil {
		return nil, err
	}
	if err := s.store.UpdateDailyLog(ctx, existing); err != nil {
		return nil, translateNotFound(err, ErrDailyLogNotFound)
	}
	return existing, nil
}

// DeleteDailyLog 删除日志
func (s *RoadmapService) DeleteDailyLog(ctx context.Context, id string) error {
	if err := s.store.DeleteDailyLog(ctx, id); err != nil {
		return translateNotFound(err, ErrDailyLogNotFound)
	}
	return nil
}

// ListArtifacts 返回产出物列表
func (s *RoadmapService) ListArtifacts(ctx context.Context, filter store.Filter) ([]db.Artifact, error) {
	return s.store.ListArtifacts(ctx, filter)
}

// CreateArtifact 新建产出物
func (s *RoadmapService) CreateArtifact(ctx context.Context, userID string, input ArtifactInput) (*db.Artifact, error) {
	artifact := db.Artifact{UserID: userID}
	if err := applyArtifactInput(&artifact, input); err != nil {
		return nil, err
	}
	if err := s.checkArtifactRefs(ctx, &artifact); err != nil {
		return nil, err
	}

	if err := s.store.CreateArtifact(ctx, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// UpdateArtifact 更新产出物
func (s *RoadmapService) UpdateArtifact(ctx context.Context, id string, input ArtifactInput) (*db.Artifact, error) {
	existing, err := s.store.GetArtifact(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrArtifactNotFound)
	}

	if err := applyArtifactInput(existing, input); err != nil {
		return nil, err
	}
	if err := s.checkArtifactRefs(ctx, existing); err != nil {
		return nil, err
	}
	if err := s.store.UpdateArtifact(ctx, existing); err != nil {
		return nil, translateNotFound(err, ErrArtifactNotFound)
	}
	return existing, nil
}

// DeleteArtifact 删除产出物
func (s *RoadmapService) DeleteArtifact(ctx context.Context, id string) error {
	if err := s.store.DeleteArtifact(ctx, id); err != nil {
		return translateNotFound(err, ErrArtifactNotFound)
	}
	return nil
}

// checkArtifactRefs 校验关联记录存在；只给出日志时，条目取日志所属条目
func (s *RoadmapService) checkArtifactRefs(ctx context.Context, artifact *db.Artifact) error {
	if artifact.DailyLogID != nil {
		entry, err := s.store.GetDailyLog(ctx, *artifact.DailyLogID)
		if err != nil {
			return translateNotFound(err, ErrDailyLogNotFound)
		}
		if artifact.RoadmapItemID == nil {
			parent := entry.RoadmapItemID
			artifact.RoadmapItemID = &parent
		} else if *artifact.RoadmapItemID != entry.RoadmapItemID {
			return invalidInput("daily log belongs to another roadmap item")
		}
	}
	if artifact.RoadmapItemID != nil {
		if _, err := s.GetRoadmapItem(ctx, *artifact.RoadmapItemID); err != nil {
			return err
		}
	}
	return nil
}

func translateNotFound(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRoadmapInput, fmt.Sprintf(format, args...))
}

func applyRoadmapItemInput(item *db.RoadmapItem, input RoadmapItemInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return invalidInput("title is required")
	}

	status := normalizeItemStatus(input.Status)
	if _, ok := itemStatuses[status]; !ok {
		return invalidInput("unsupported status %s", input.Status)
	}

	startDate := strings.TrimSpace(input.StartDate)
	start, ok := roadmap.ParseDate(startDate)
	if !ok {
		return invalidInput("start_date must be YYYY-MM-DD")
	}

	var endDate *string
	if trimmed := strings.TrimSpace(input.EndDate); trimmed != "" {
		end, ok := roadmap.ParseDate(trimmed)
		if !ok {
			return invalidInput("end_date must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return invalidInput("end_date is before start_date")
		}
		endDate = &trimmed
	}

	if err := validateHours(input.PlannedHours, input.ActualHours); err != nil {
		return err
	}

	item.Title = title
	item.Summary = strings.TrimSpace(input.Summary)
	item.Phase = strings.TrimSpace(input.Phase)
	item.Status = status
	item.PlannedHours = input.PlannedHours
	item.ActualHours = input.ActualHours
	item.StartDate = startDate
	item.EndDate = endDate
	item.IsPublic = input.IsPublic
	item.SortOrder = input.SortOrder
	return nil
}

func applyDailyLogInput(entry *db.DailyLog, input DailyLogInput) error {
	roadmapItemID := strings.TrimSpace(input.RoadmapItemID)
	if roadmapItemID == "" {
		return invalidInput("roadmap_item_id is required")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return invalidInput("title is required")
	}

	logDate := strings.TrimSpace(input.LogDate)
	if _, ok := roadmap.ParseDate(logDate); !ok {
		return invalidInput("log_date must be YYYY-MM-DD")
	}

	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != "" {
		if _, ok := itemStatuses[status]; !ok {
			return invalidInput("unsupported status %s", input.Status)
		}
	}

	if err := validateHours(input.PlannedHours, input.ActualHours); err != nil {
		return err
	}

	var dayID *string
	if trimmed := strings.ToUpper(strings.TrimSpace(input.CurriculumDayID)); trimmed != "" {
		dayID = &trimmed
	}

	entry.RoadmapItemID = roadmapItemID
	entry.LogDate = logDate
	entry.Title = title
	entry.Notes = strings.TrimSpace(input.Notes)
	entry.Status = status
	entry.PlannedHours = input.PlannedHours
	entry.ActualHours = input.ActualHours
	entry.IsPublic = input.IsPublic
	entry.CurriculumDayID = dayID
	return nil
}

func applyArtifactInput(artifact *db.Artifact, input ArtifactInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return invalidInput("title is required")
	}

	kind := strings.ToLower(strings.TrimSpace(input.Type))
	if kind == "" {
		kind = db.ArtifactOther
	}
	if _, ok := artifactTypes[kind]; !ok {
		return invalidInput("unsupported artifact type %s", input.Type)
	}

	rawURL := strings.TrimSpace(input.URL)
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return invalidInput("url must be an absolute http(s) link")
	}

	artifact.Title = title
	artifact.Type = kind
	artifact.URL = rawURL
	artifact.RoadmapItemID = optionalID(input.RoadmapItemID)
	artifact.DailyLogID = optionalID(input.DailyLogID)
	artifact.IsPublic = input.IsPublic
	artifact.SortOrder = input.SortOrder
	return nil
}

func validateHours(values ...*float64) error {
	for _, v := range values {
		if v != nil && *v < 0 {
			return invalidInput("hours must not be negative")
		}
	}
	return nil
}

func normalizeItemStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return db.StatusPlanned
	}
	return status
}

func optionalID(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
