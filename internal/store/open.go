package store

import (
	"fmt"
	"strings"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/db"
)

// DriverJSON 选择本地 JSON 文档存储
const DriverJSON = "json"

// Open 按驱动构造存储：json 使用 localPath，其余交给 gorm。
func Open(driver, dsn, localPath string) (Store, error) {
	if strings.EqualFold(strings.TrimSpace(driver), DriverJSON) {
		s, err := NewJSONStore(localPath)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		return s, nil
	}

	gdb, err := db.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return NewGormStore(gdb), nil
}
