// Package store is the persistence adapter for roadmap data. The same
// contract is served by a relational table store (gorm) and by a local JSON
// document used when no database is configured.
package store

import (
	"context"
	"errors"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

// ErrNotFound 在记录不存在时返回
var ErrNotFound = errors.New("record not found")

// Filter 描述读取条件；零值表示全部记录
type Filter struct {
	UserID     string
	PublicOnly bool
}

// DailyLogFilter 在 Filter 基础上可限定所属路线图条目
type DailyLogFilter struct {
	Filter
	RoadmapItemID string
}

// Store 是路线图数据的读写契约
type Store interface {
	ListRoadmapItems(ctx context.Context, filter Filter) ([]db.RoadmapItem, error)
	GetRoadmapItem(ctx context.Context, id string) (*db.RoadmapItem, error)
	CreateRoadmapItem(ctx context.Context, item *db.RoadmapItem) error
	UpdateRoadmapItem(ctx context.Context, item *db.RoadmapItem) error
	DeleteRoadmapItem(ctx context.Context, id string) error

	ListDailyLogs(ctx context.Context, filter DailyLogFilter) ([]db.DailyLog, error)
	GetDailyLog(ctx context.Context, id string) (*db.DailyLog, error)
	CreateDailyLog(ctx context.Context, log *db.DailyLog) error
	UpdateDailyLog(ctx context.Context, log *db.DailyLog) error
	DeleteDailyLog(ctx context.Context, id string) error

	ListArtifacts(ctx context.Context, filter Filter) ([]db.Artifact, error)
	GetArtifact(ctx context.Context, id string) (*db.Artifact, error)
	CreateArtifact(ctx context.Context, artifact *db.Artifact) error
	UpdateArtifact(ctx context.Context, artifact *db.Artifact) error
	DeleteArtifact(ctx context.Context, id string) error

	ListTags(ctx context.Context, userID string) ([]db.Tag, error)
	GetTag(ctx context.Context, id string) (*db.Tag, error)
	CreateTag(ctx context.Context, tag *db.Tag) error
	UpdateTag(ctx context.Context, tag *db.Tag) error
	DeleteTag(ctx context.Context, id string) error

	GetUserByUsername(ctx context.Context, username string) (*db.User, error)
	CreateUser(ctx context.Context, user *db.User) error
}
