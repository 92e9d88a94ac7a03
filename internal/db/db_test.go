package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenSQLiteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "portfolio.db")

	gdb, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	defer sqlDB.Close()

	for _, table := range []string{"users", "roadmap_items", "daily_logs", "artifacts", "tags"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to be migrated", table)
		}
	}
}

func TestRoadmapItemBeforeCreateAssignsID(t *testing.T) {
	gdb, err := Open(DriverSQLite, "file:db-hooks?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	sqlDB, _ := gdb.DB()
	defer sqlDB.Close()

	item := RoadmapItem{Title: "Foundations", StartDate: "2026-02-16"}
	if err := gdb.Create(&item).Error; err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	if len(item.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", item.ID)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported driver error, got %v", err)
	}
	if _, err := Open(DriverPostgres, " "); err == nil {
		t.Fatal("expected postgres without dsn to fail")
	}
}
