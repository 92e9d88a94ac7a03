package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
	"gorm.io/gorm"
)

// GormStore 基于 gorm 的表存储实现（sqlite 或 postgres）
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 构造 GormStore
func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb}
}

func (s *GormStore) scoped(ctx context.Context, model any, filter Filter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(model)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.PublicOnly {
		query = query.Where("is_public = ?", true)
	}
	return query
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ListRoadmapItems 返回路线图条目
func (s *GormStore) ListRoadmapItems(ctx context.Context, filter Filter) ([]db.RoadmapItem, error) {
	var items []db.RoadmapItem
	if err := s.scoped(ctx, &db.RoadmapItem{}, filter).
		Order("sort_order ASC").
		Order("start_date ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list roadmap items: %w", err)
	}
	return items, nil
}

// GetRoadmapItem 根据 ID 获取路线图条目
func (s *GormStore) GetRoadmapItem(ctx context.Context, id string) (*db.RoadmapItem, error) {
	var item db.RoadmapItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get roadmap item: %w", notFound(err))
	}
	return &item, nil
}

// CreateRoadmapItem 新建路线图条目
func (s *GormStore) CreateRoadmapItem(ctx context.Context, item *db.RoadmapItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create roadmap item: %w", err)
	}
	return nil
}

// UpdateRoadmapItem 保存路线图条目
func (s *GormStore) UpdateRoadmapItem(ctx context.Context, item *db.RoadmapItem) error {
	if err := s.ensureExists(ctx, &db.RoadmapItem{}, item.ID); err != nil {
		return fmt.Errorf("update roadmap item: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("update roadmap item: %w", err)
	}
	return nil
}

// DeleteRoadmapItem 删除条目及其日志与产出物
func (s *GormStore) DeleteRoadmapItem(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&db.RoadmapItem{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		var logIDs []string
		if err := tx.Model(&db.DailyLog{}).Where("roadmap_item_id = ?", id).Pluck("id", &logIDs).Error; err != nil {
			return err
		}
		if len(logIDs) > 0 {
			if err := tx.Where("daily_log_id IN ?", logIDs).Delete(&db.Artifact{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("roadmap_item_id = ?", id).Delete(&db.DailyLog{}).Error; err != nil {
			return err
		}
		return tx.Where("roadmap_item_id = ?", id).Delete(&db.Artifact{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete roadmap item: %w", err)
	}
	return nil
}

// ListDailyLogs 返回日志，按日期倒序
func (s *GormStore) ListDailyLogs(ctx context.Context, filter DailyLogFilter) ([]db.DailyLog, error) {
	query := s.scoped(ctx, &db.DailyLog{}, filter.Filter)
	if filter.RoadmapItemID != "" {
		query = query.Where("roadmap_item_id = ?", filter.RoadmapItemID)
	}

	var logs []db.DailyLog
	if err := query.Order("log_date DESC").Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	return logs, nil
}

// GetDailyLog 根据 ID 获取日志
func (s *GormStore) GetDailyLog(ctx context.Context, id string) (*db.DailyLog, error) {
	var log db.DailyLog
	if err := s.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get daily log: %w", notFound(err))
	}
	return &log, nil
}

// CreateDailyLog 新建日志
func (s *GormStore) CreateDailyLog(ctx context.Context, log *db.DailyLog) error {
	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("create daily log: %w", err)
	}
	return nil
}

// UpdateDailyLog 保存日志
func (s *GormStore) UpdateDailyLog(ctx context.Context, log *db.DailyLog) error {
	if err := s.ensureExists(ctx, &db.DailyLog{}, log.ID); err != nil {
		return fmt.Errorf("update daily log: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(log).Error; err != nil {
		return fmt.Errorf("update daily log: %w", err)
	}
	return nil
}

// DeleteDailyLog 删除日志，并解除产出物对它的引用
func (s *GormStore) DeleteDailyLog(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&db.DailyLog{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&db.Artifact{}).Where("daily_log_id = ?", id).Update("daily_log_id", nil).Error
	})
	if err != nil {
		return fmt.Errorf("delete daily log: %w", err)
	}
	return nil
}

// ListArtifacts 返回产出物
func (s *GormStore) ListArtifacts(ctx context.Context, filter Filter) ([]db.Artifact, error) {
	var artifacts []db.Artifact
	if err := s.scoped(ctx, &db.Artifact{}, filter).
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&artifacts).Error; err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return artifacts, nil
}

// GetArtifact 根据 ID 获取产出物
func (s *GormStore) GetArtifact(ctx context.Context, id string) (*db.Artifact, error) {
	var artifact db.Artifact
	if err := s.db.WithContext(ctx).First(&artifact, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get artifact: %w", notFound(err))
	}
	return &artifact, nil
}

// CreateArtifact 新建产出物
func (s *GormStore) CreateArtifact(ctx context.Context, artifact *db.Artifact) error {
	if err := s.db.WithContext(ctx).Create(artifact).Error; err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	return nil
}

// UpdateArtifact 保存产出物
func (s *GormStore) UpdateArtifact(ctx context.Context, artifact *db.Artifact) error {
	if err := s.ensureExists(ctx, &db.Artifact{}, artifact.ID); err != nil {
		return fmt.Errorf("update artifact: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(artifact).Error; err != nil {
		return fmt.Errorf("update artifact: %w", err)
	}
	return nil
}

// DeleteArtifact 删除产出物
func (s *GormStore) DeleteArtifact(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&db.Artifact{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete artifact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete artifact: %w", ErrNotFound)
	}
	return nil
}

// ListTags 返回用户的标签，按名称排序
func (s *GormStore) ListTags(ctx context.Context, userID string) ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.scoped(ctx, &db.Tag{}, Filter{UserID: userID}).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// GetTag 根据 ID 获取标签
func (s *GormStore) GetTag(ctx context.Context, id string) (*db.Tag, error) {
	var tag db.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get tag: %w", notFound(err))
	}
	return &tag, nil
}

// CreateTag 新建标签
func (s *GormStore) CreateTag(ctx context.Context, tag *db.Tag) error {
	if err := s.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// UpdateTag 保存标签
func (s *GormStore) UpdateTag(ctx context.Context, tag *db.Tag) error {
	if err := s.ensureExists(ctx, &db.Tag{}, tag.ID); err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(tag).Error; err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return nil
}

// DeleteTag 删除标签
func (s *GormStore) DeleteTag(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&db.Tag{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete tag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete tag: %w", ErrNotFound)
	}
	return nil
}

// GetUserByUsername 根据用户名查找账号
func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("get user: %w", notFound(err))
	}
	return &user, nil
}

// CreateUser 新建账号
func (s *GormStore) CreateUser(ctx context.Context, user *db.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *GormStore) ensureExists(ctx context.Context, model any, id string) error {
	if id == "" {
		return ErrNotFound
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
