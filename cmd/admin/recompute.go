package main

import (
	"fmt"

	"github.com/edupath/backend/internal/logger"
	"github.com/edupath/backend/internal/repositories"
	"github.com/edupath/backend/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute-progress",
	Short: "Recompute stored course progress from lesson records",
	Long: "Recomputes the course-level progress of every enrollment. " +
		"Use --course or --user to restrict the run.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		courseID, err := optionalID(cmd, "course")
		if err != nil {
			return err
		}
		userID, err := optionalID(cmd, "user")
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		progressService := services.NewProgressService(
			repositories.NewTxManager(db),
			repositories.NewCourseRepository(db),
			repositories.NewLessonRepository(db),
			repositories.NewEnrollmentRepository(db),
			repositories.NewProgressRepository(db),
			logger.Logger,
		)

		count, err := progressService.RecomputeAll(cmd.Context(), courseID, userID)
		if err != nil {
			logger.Logger.Error("Recompute failed", zap.Int("recomputed", count), zap.Error(err))
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d enrollments\n", count)
		return nil
	},
}

func init() {
	recomputeCmd.Flags().Int("course", 0, "Only recompute enrollments of this course")
	recomputeCmd.Flags().Int("user", 0, "Only recompute enrollments of this user")
}

// optionalID returns nil when the flag was not given
func optionalID(cmd *cobra.Command, name string) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	id, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("--%s must be a positive id", name)
	}
	return &id, nil
}
