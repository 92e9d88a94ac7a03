package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

const jsonDocumentVersion = 1

type document struct {
	Version      int              `json:"version"`
	RoadmapItems []db.RoadmapItem `json:"roadmap_items"`
	DailyLogs    []db.DailyLog    `json:"daily_logs"`
	Artifacts    []db.Artifact    `json:"artifacts"`
	Tags         []db.Tag         `json:"tags"`
	Users        []db.User        `json:"users"`
}

// JSONStore 将所有记录保存在单个 JSON 文档中，作为未配置数据库时的本地存储。
// 每次写入都会整体落盘；path 为空时仅保存在内存中。
type JSONStore struct {
	mu   sync.RWMutex
	path string
	doc  document
	now  func() time.Time
}

// NewJSONStore 打开（或初始化）path 处的文档
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{
		path: strings.TrimSpace(path),
		doc:  document{Version: jsonDocumentVersion},
		now:  func() time.Time { return time.Now().UTC() },
	}
	if s.path == "" {
		return s, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read local store: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("parse local store: %w", err)
	}
	if s.doc.Version == 0 {
		s.doc.Version = jsonDocumentVersion
	}
	return s, nil
}

// save 调用方需持有写锁
func (s *JSONStore) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize local store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create local store directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write local store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local store: %w", err)
	}
	return nil
}

func matches(filter Filter, userID string, public bool) bool {
	if filter.UserID != "" && filter.UserID != userID {
		return false
	}
	if filter.PublicOnly && !public {
		return false
	}
	return true
}

func indexByID[T any](rows []T, id string, key func(T) string) int {
	return slices.IndexFunc(rows, func(row T) bool { return key(row) == id })
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneItem(item db.RoadmapItem) db.RoadmapItem {
	item.PlannedHours = cloneFloat(item.PlannedHours)
	item.ActualHours = cloneFloat(item.ActualHours)
	item.EndDate = cloneString(item.EndDate)
	return item
}

func cloneLog(log db.DailyLog) db.DailyLog {
	log.PlannedHours = cloneFloat(log.PlannedHours)
	log.ActualHours = cloneFloat(log.ActualHours)
	log.CurriculumDayID = cloneString(log.CurriculumDayID)
	return log
}

func cloneArtifact(artifact db.Artifact) db.Artifact {
	artifact.RoadmapItemID = cloneString(artifact.RoadmapItemID)
	artifact.DailyLogID = cloneString(artifact.DailyLogID)
	return artifact
}

func roadmapItemID(item db.RoadmapItem) string { return item.ID }
func dailyLogID(log db.DailyLog) string        { return log.ID }
func artifactID(artifact db.Artifact) string   { return artifact.ID }
func tagID(tag db.Tag) string                  { return tag.ID }

// ListRoadmapItems 返回路线图条目
func (s *JSONStore) ListRoadmapItems(_ context.Context, filter Filter) ([]db.RoadmapItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]db.RoadmapItem, 0, len(s.doc.RoadmapItems))
	for _, item := range s.doc.RoadmapItems {
		if matches(filter, item.UserID, item.IsPublic) {
			items = append(items, cloneItem(item))
		}
	}
	return items, nil
}

// GetRoadmapItem 根据 ID 获取路线图条目
func (s *JSONStore) GetRoadmapItem(_ context.Context, id string) (*db.RoadmapItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexByID(s.doc.RoadmapItems, id, roadmapItemID)
	if idx < 0 {
		return nil, fmt.Errorf("get roadmap item: %w", ErrNotFound)
	}
	item := cloneItem(s.doc.RoadmapItems[idx])
	return &item, nil
}

// CreateRoadmapItem 新建路线图条目
func (s *JSONStore) CreateRoadmapItem(_ context.Context, item *db.RoadmapItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := s.now()
	item.CreatedAt, item.UpdatedAt = now, now

	s.doc.RoadmapItems = append(s.doc.RoadmapItems, cloneItem(*item))
	if err := s.save(); err != nil {
		return fmt.Errorf("create roadmap item: %w", err)
	}
	return nil
}

// UpdateRoadmapItem 保存路线图条目
func (s *JSONStore) UpdateRoadmapItem(_ context.Context, item *db.RoadmapItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.RoadmapItems, item.ID, roadmapItemID)
	if idx < 0 {
		return fmt.Errorf("update roadmap item: %w", ErrNotFound)
	}
	item.UpdatedAt = s.now()
	s.doc.RoadmapItems[idx] = cloneItem(*item)
	if err := s.save(); err != nil {
		return fmt.Errorf("update roadmap item: %w", err)
	}
	return nil
}

// DeleteRoadmapItem 删除条目及其日志与产出物
func (s *JSONStore) DeleteRoadmapItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.RoadmapItems, id, roadmapItemID)
	if idx < 0 {
		return fmt.Errorf("delete roadmap item: %w", ErrNotFound)
	}
	s.doc.RoadmapItems = slices.Delete(s.doc.RoadmapItems, idx, idx+1)

	removedLogs := make(map[string]struct{})
	s.doc.DailyLogs = slices.DeleteFunc(s.doc.DailyLogs, func(log db.DailyLog) bool {
		if log.RoadmapItemID == id {
			removedLogs[log.ID] = struct{}{}
			return true
		}
		return false
	})
	s.doc.Artifacts = slices.DeleteFunc(s.doc.Artifacts, func(artifact db.Artifact) bool {
		if artifact.RoadmapItemID != nil && *artifact.RoadmapItemID == id {
			return true
		}
		if artifact.DailyLogID != nil {
			_, gone := removedLogs[*artifact.DailyLogID]
			return gone
		}
		return false
	})

	if err := s.save(); err != nil {
		return fmt.Errorf("delete roadmap item: %w", err)
	}
	return nil
}

// ListDailyLogs 返回日志，按日期倒序
func (s *JSONStore) ListDailyLogs(_ context.Context, filter DailyLogFilter) ([]db.DailyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]db.DailyLog, 0, len(s.doc.DailyLogs))
	for _, log := range s.doc.DailyLogs {
		if !matches(filter.Filter, log.UserID, log.IsPublic) {
			continue
		}
		if filter.RoadmapItemID != "" && log.RoadmapItemID != filter.RoadmapItemID {
			continue
		}
		logs = append(logs, cloneLog(log))
	}
	slices.SortStableFunc(logs, func(a, b db.DailyLog) int {
		if diff := strings.Compare(b.LogDate, a.LogDate); diff != 0 {
			return diff
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return logs, nil
}

// GetDailyLog 根据 ID 获取日志
func (s *JSONStore) GetDailyLog(_ context.Context, id string) (*db.DailyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexByID(s.doc.DailyLogs, id, dailyLogID)
	if idx < 0 {
		return nil, fmt.Errorf("get daily log: %w", ErrNotFound)
	}
	log := cloneLog(s.doc.DailyLogs[idx])
	return &log, nil
}

// CreateDailyLog 新建日志
func (s *JSONStore) CreateDailyLog(_ context.Context, log *db.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	now := s.now()
	log.CreatedAt, log.UpdatedAt = now, now

	s.doc.DailyLogs = append(s.doc.DailyLogs, cloneLog(*log))
	if err := s.save(); err != nil {
		return fmt.Errorf("create daily log: %w", err)
	}
	return nil
}

// UpdateDailyLog 保存日志
func (s *JSONStore) UpdateDailyLog(_ context.Context, log *db.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.DailyLogs, log.ID, dailyLogID)
	if idx < 0 {
		return fmt.Errorf("update daily log: %w", ErrNotFound)
	}
	log.UpdatedAt = s.now()
	s.doc.DailyLogs[idx] = cloneLog(*log)
	if err := s.save(); err != nil {
		return fmt.Errorf("update daily log: %w", err)
	}
	return nil
}

// DeleteDailyLog 删除日志，并解除产出物对它的引用
func (s *JSONStore) DeleteDailyLog(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.DailyLogs, id, dailyLogID)
	if idx < 0 {
		return fmt.Errorf("delete daily log: %w", ErrNotFound)
	}
	s.doc.DailyLogs = slices.Delete(s.doc.DailyLogs, idx, idx+1)
	for i := range s.doc.Artifacts {
		if ref := s.doc.Artifacts[i].DailyLogID; ref != nil && *ref == id {
			s.doc.Artifacts[i].DailyLogID = nil
		}
	}

	if err := s.save(); err != nil {
		return fmt.Errorf("delete daily log: %w", err)
	}
	return nil
}

// ListArtifacts 返回产出物
func (s *JSONStore) ListArtifacts(_ context.Context, filter Filter) ([]db.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifacts := make([]db.Artifact, 0, len(s.doc.Artifacts))
	for _, artifact := range s.doc.Artifacts {
		if matches(filter, artifact.UserID, artifact.IsPublic) {
			artifacts = append(artifacts, cloneArtifact(artifact))
		}
	}
	return artifacts, nil
}

// GetArtifact 根据 ID 获取产出物
func (s *JSONStore) GetArtifact(_ context.Context, id string) (*db.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexByID(s.doc.Artifacts, id, artifactID)
	if idx < 0 {
		return nil, fmt.Errorf("get artifact: %w", ErrNotFound)
	}
	artifact := cloneArtifact(s.doc.Artifacts[idx])
	return &artifact, nil
}

// CreateArtifact 新建产出物
func (s *JSONStore) CreateArtifact(_ context.Context, artifact *db.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if artifact.ID == "" {
		artifact.ID = uuid.NewString()
	}
	if artifact.CreatedAt.IsZero() {
		artifact.CreatedAt = s.now()
	}

	s.doc.Artifacts = append(s.doc.Artifacts, cloneArtifact(*artifact))
	if err := s.save(); err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	return nil
}

// UpdateArtifact 保存产出物
func (s *JSONStore) UpdateArtifact(_ context.Context, artifact *db.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.Artifacts, artifact.ID, artifactID)
	if idx < 0 {
		return fmt.Errorf("update artifact: %w", ErrNotFound)
	}
	s.doc.Artifacts[idx] = cloneArtifact(*artifact)
	if err := s.save(); err != nil {
		return fmt.Errorf("update artifact: %w", err)
	}
	return nil
}

// DeleteArtifact 删除产出物
func (s *JSONStore) DeleteArtifact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.Artifacts, id, artifactID)
	if idx < 0 {
		return fmt.Errorf("delete artifact: %w", ErrNotFound)
	}
	s.doc.Artifacts = slices.Delete(s.doc.Artifacts, idx, idx+1)
	if err := s.save(); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

// ListTags 返回用户的标签，按名称排序
func (s *JSONStore) ListTags(_ context.Context, userID string) ([]db.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]db.Tag, 0, len(s.doc.Tags))
	for _, tag := range s.doc.Tags {
		if userID == "" || tag.UserID == userID {
			tags = append(tags, tag)
		}
	}
	slices.SortFunc(tags, func(a, b db.Tag) int { return strings.Compare(a.Name, b.Name) })
	return tags, nil
}

// GetTag 根据 ID 获取标签
func (s *JSONStore) GetTag(_ context.Context, id string) (*db.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexByID(s.doc.Tags, id, tagID)
	if idx < 0 {
		return nil, fmt.Errorf("get tag: %w", ErrNotFound)
	}
	tag := s.doc.Tags[idx]
	return &tag, nil
}

// CreateTag 新建标签
func (s *JSONStore) CreateTag(_ context.Context, tag *db.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	now := s.now()
	tag.CreatedAt, tag.UpdatedAt = now, now

	s.doc.Tags = append(s.doc.Tags, *tag)
	if err := s.save(); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// UpdateTag 保存标签
func (s *JSONStore) UpdateTag(_ context.Context, tag *db.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.Tags, tag.ID, tagID)
	if idx < 0 {
		return fmt.Errorf("update tag: %w", ErrNotFound)
	}
	tag.UpdatedAt = s.now()
	s.doc.Tags[idx] = *tag
	if err := s.save(); err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

// DeleteTag 删除标签
func (s *JSONStore) DeleteTag(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.doc.Tags, id, tagID)
	if idx < 0 {
		return fmt.Errorf("delete tag: %w", ErrNotFound)
	}
	s.doc.Tags = slices.Delete(s.doc.Tags, idx, idx+1)
	if err := s.save(); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

// GetUserByUsername 根据用户名查找账号
func (s *JSONStore) GetUserByUsername(_ context.Context, username string) (*db.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.doc.Users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", ErrNotFound)
}

// CreateUser 新建账号
func (s *JSONStore) CreateUser(_ context.Context, user *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.doc.Users {
		if existing.Username == user.Username {
			return fmt.Errorf("create user: username %q already exists", user.Username)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now

	s.doc.Users = append(s.doc.Users, *user)
	if err := s.save(); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
