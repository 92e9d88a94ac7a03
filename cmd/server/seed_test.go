package main

import (
	"context"
	"testing"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
)

func TestSeedDemoData(t *testing.T) {
	s, err := store.NewJSONStore("")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	ctx := context.Background()

	summary, err := seedDemoData(ctx, s, "admin", "admin123")
	if err != nil {
		t.Fatalf("seedDemoData returned error: %v", err)
	}
	if summary.Skipped {
		t.Fatal("expected first seed to write data")
	}
	if summary.Items != 2 || summary.Logs != 2 || summary.Artifacts != 1 || summary.Tags != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	artifacts, err := s.ListArtifacts(ctx, store.Filter{})
	if err != nil {
		t.Fatalf("ListArtifacts returned error: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].RoadmapItemID == nil {
		t.Fatalf("expected the artifact to be attached to its item, got %+v", artifacts)
	}

	again, err := seedDemoData(ctx, s, "admin", "admin123")
	if err != nil {
		t.Fatalf("seedDemoData returned error: %v", err)
	}
	if !again.Skipped {
		t.Fatal("expected second seed to be skipped")
	}
}

func TestSetupLoggingDisabled(t *testing.T) {
	closer, err := setupLogging("")
	if err != nil || closer != nil {
		t.Fatalf("expected no-op logging setup, got %v, %v", closer, err)
	}
}
