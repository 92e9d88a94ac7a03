package main

import (
	"fmt"

	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/config"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/service"
	"github.com/lprnmns/alperenmanas-portfolio-sub000/internal/store"
	"github.com/spf13/cobra"
)

func newCurriculumCmd(cfg *config.AppConfig) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "curriculum",
		Short: "Print curriculum progress and the next day to work on",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(*cfg)
			if err != nil {
				return err
			}

			filter := store.Filter{}
			if owner != "" {
				user, err := s.GetUserByUsername(cmd.Context(), owner)
				if err != nil {
					return fmt.Errorf("failed to load owner %s: %w", owner, err)
				}
				filter.UserID = user.ID
			}

			overview, err := service.NewCurriculumService(s).Overview(cmd.Context(), filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Progress: %d/%d days (%d%%)\n", overview.Progress.CompletedDays, overview.Progress.TotalDays, overview.Progress.Percent)
			for _, day := range overview.Days {
				fmt.Fprintf(out, "  [%-7s] %s %s  %s\n", day.State, day.ID, day.SuggestedDate, day.Title)
			}
			if overview.NextDay == nil {
				fmt.Fprintln(out, "Curriculum complete.")
				return nil
			}
			fmt.Fprintf(out, "Next: %s - %s (%s)\n", overview.NextDay.ID, overview.NextDay.Title, overview.NextDay.SuggestedDate)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", cfg.OwnerUsername, "only count logs of this username")
	return cmd
}
