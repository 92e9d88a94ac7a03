package main

import (
	"context"
	"fmt"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/config"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
	"github.com/spf13/cobra"
)

type seedSummary struct {
	Skipped   bool
	Items     int
	Logs      int
	Artifacts int
	Tags      int
}

func newSeedCmd(cfg *config.AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create an owner account and demo roadmap data",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, password := cfg.OwnerUsername, cfg.OwnerPassword
			if username == "" || password == "" {
				username, password = "admin", "admin123"
			}

			s, err := openStore(*cfg)
			if err != nil {
				return err
			}

			summary, err := seedDemoData(cmd.Context(), s, username, password)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Skipped {
				fmt.Fprintln(out, "Roadmap data already exists, skipping.")
				return nil
			}
			fmt.Fprintf(out, "Seeded %d items, %d logs, %d artifacts, %d tags for %s\n",
				summary.Items, summary.Logs, summary.Artifacts, summary.Tags, username)
			return nil
		},
	}
}

// seedDemoData 为空库写入示例数据；已有路线图条目时跳过
func seedDemoData(ctx context.Context, s store.Store, username, password string) (seedSummary, error) {
	owner, err := service.NewAuthService(s).EnsureOwner(ctx, username, password)
	if err != nil {
		return seedSummary{}, err
	}

	existing, err := s.ListRoadmapItems(ctx, store.Filter{UserID: owner.ID})
	if err != nil {
		return seedSummary{}, err
	}
	if len(existing) > 0 {
		return seedSummary{Skipped: true}, nil
	}

	roadmapSvc := service.NewRoadmapService(s)
	curriculumSvc := service.NewCurriculumService(s)
	tagSvc := service.NewTagService(s)
	var summary seedSummary

	for _, input := range []service.TagInput{
		{Name: "Python", Color: "#3572a5"},
		{Name: "Data", Color: "#f2a900"},
		{Name: "ML", Color: "#7b42bc"},
	} {
		if _, err := tagSvc.Create(ctx, owner.ID, input); err != nil {
			return seedSummary{}, fmt.Errorf("seed tag %s: %w", input.Name, err)
		}
		summary.Tags++
	}

	portfolio, err := roadmapSvc.CreateRoadmapItem(ctx, owner.ID, service.RoadmapItemInput{
		Title:        "Portfolio site",
		Summary:      "Ship the public roadmap page.",
		Phase:        "Projects",
		Status:       "in_progress",
		PlannedHours: hoursValue(12),
		ActualHours:  hoursValue(4),
		StartDate:    "2026-02-09",
		IsPublic:     true,
	})
	if err != nil {
		return seedSummary{}, fmt.Errorf("seed roadmap item: %w", err)
	}
	summary.Items++

	entry, err := roadmapSvc.CreateDailyLog(ctx, owner.ID, service.DailyLogInput{
		RoadmapItemID: portfolio.ID,
		LogDate:       "2026-02-10",
		Title:         "Roadmap API skeleton",
		Notes:         "Wired the **weekly view** endpoint.",
		ActualHours:   hoursValue(2),
		IsPublic:      true,
	})
	if err != nil {
		return seedSummary{}, fmt.Errorf("seed daily log: %w", err)
	}
	summary.Logs++

	if _, err := roadmapSvc.CreateArtifact(ctx, owner.ID, service.ArtifactInput{
		DailyLogID: entry.ID,
		Type:       "pr",
		Title:      "Weekly view endpoint",
		URL:        "https://github.com/example/portfolio/pull/1",
		IsPublic:   true,
	}); err != nil {
		return seedSummary{}, fmt.Errorf("seed artifact: %w", err)
	}
	summary.Artifacts++

	started, err := curriculumSvc.StartDay(ctx, owner.ID, "W1D1", "")
	if err != nil {
		return seedSummary{}, fmt.Errorf("seed curriculum day: %w", err)
	}
	if started.MilestoneCreated {
		summary.Items++
	}
	summary.Logs++

	return summary, nil
}

func hoursValue(v float64) *float64 { return &v }
