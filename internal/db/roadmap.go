package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 路线图条目状态
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusBlocked    = "blocked"
	StatusDone       = "done"
)

// 日期统一以 YYYY-MM-DD 字符串存储
const DateLayout = "2006-01-02"

// RoadmapItem 定义了路线图中的一个里程碑/阶段
// Phase 为自由文本分组，前台用于筛选
// PlannedHours/ActualHours 允许为空，聚合时按 0 处理
// EndDate 可选，未强制 EndDate >= StartDate（由服务层校验）
type RoadmapItem struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;index" json:"user_id"`
	Title        string    `gorm:"not null" json:"title"`
	Summary      string    `gorm:"type:text" json:"summary"`
	Phase        string    `gorm:"size:120;index" json:"phase"`
	Status       string    `gorm:"size:20;default:planned" json:"status"`
	PlannedHours *float64  `json:"planned_hours"`
	ActualHours  *float64  `json:"actual_hours"`
	StartDate    string    `gorm:"size:10;index" json:"start_date"`
	EndDate      *string   `gorm:"size:10" json:"end_date"`
	IsPublic     bool      `gorm:"default:false" json:"is_public"`
	SortOrder    int       `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 指定自定义表名。
func (RoadmapItem) TableName() string {
	return "roadmap_items"
}

// BeforeCreate 在缺少 ID 时生成 UUID
func (r *RoadmapItem) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// DailyLog 记录某一天针对路线图条目的工作内容
// Status 为空表示沿用所属条目的状态
// CurriculumDayID 可选，显式关联课程中的某一天（如 W2D3）
type DailyLog struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	RoadmapItemID   string    `gorm:"size:36;index;not null" json:"roadmap_item_id"`
	UserID          string    `gorm:"size:36;index" json:"user_id"`
	LogDate         string    `gorm:"size:10;index" json:"log_date"`
	Title           string    `gorm:"not null" json:"title"`
	Notes           string    `gorm:"type:text" json:"notes"`
	Status          string    `gorm:"size:20" json:"status"`
	PlannedHours    *float64  `json:"planned_hours"`
	ActualHours     *float64  `json:"actual_hours"`
	IsPublic        bool      `gorm:"default:false" json:"is_public"`
	CurriculumDayID *string   `gorm:"size:8;index" json:"curriculum_day_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName 指定自定义表名。
func (DailyLog) TableName() string {
	return "daily_logs"
}

// BeforeCreate 在缺少 ID 时生成 UUID
func (l *DailyLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// 产出物类型
const (
	ArtifactPR    = "pr"
	ArtifactDemo  = "demo"
	ArtifactBlog  = "blog"
	ArtifactRepo  = "repo"
	ArtifactDoc   = "doc"
	ArtifactOther = "other"
)

// Artifact 是外部工作证明的链接（PR、演示、博客、文档）
// RoadmapItemID 与 DailyLogID 均可为空
type Artifact struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"size:36;index" json:"user_id"`
	RoadmapItemID *string   `gorm:"size:36;index" json:"roadmap_item_id"`
	DailyLogID    *string   `gorm:"size:36;index" json:"daily_log_id"`
	Type          string    `gorm:"size:10;default:other" json:"type"`
	Title         string    `gorm:"not null" json:"title"`
	URL           string    `gorm:"not null" json:"url"`
	IsPublic      bool      `gorm:"default:false" json:"is_public"`
	SortOrder     int       `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName 指定自定义表名。
func (Artifact) TableName() string {
	return "artifacts"
}

// BeforeCreate 在缺少 ID 时生成 UUID
func (a *Artifact) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
