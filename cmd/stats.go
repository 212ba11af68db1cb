package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akarsh/studyforge/internal/progress"
	"github.com/akarsh/studyforge/internal/quiz"
	"github.com/akarsh/studyforge/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [subject]",
	Short: "Show performance statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()

		if len(args) == 0 {
			return listSubjects(ctx, s)
		}
		return showProfile(ctx, s, args[0])
	},
}

func listSubjects(ctx context.Context, s *store.Store) error {
	subjects, err := s.HistoryRepo().Subjects(ctx)
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		fmt.Println("No quiz results recorded yet.")
		return nil
	}
	fmt.Println("Subjects with recorded results:")
	for _, subject := range subjects {
		fmt.Println("  " + subject)
	}
	return nil
}

func showProfile(ctx context.Context, s *store.Store, subject string) error {
	tracker := progress.NewTracker(s.HistoryRepo(), quiz.NewEngine(quiz.DefaultConfig()), progress.DefaultConfig())
	if err := tracker.LoadHistory(ctx, subject); err != nil {
		return err
	}

	p := tracker.Profile(subject)
	if p.TotalQuizzes == 0 {
		fmt.Printf("No quiz results recorded for %q yet.\n", subject)
		return nil
	}

	fmt.Printf("Subject:         %s\n", p.Subject)
	fmt.Printf("Quizzes:         %d (rolling window)\n", p.TotalQuizzes)
	fmt.Printf("Average:         %.1f%%\n", p.AverageAccuracy)
	fmt.Printf("Level:           %s\n", p.Level)
	fmt.Printf("Next difficulty: %s\n", p.NextDifficulty)

	trend := make([]string, len(p.AccuracyTrend))
	for i, pct := range p.AccuracyTrend {
		trend[i] = fmt.Sprintf("%.0f%%", pct)
	}
	fmt.Printf("Trend:           %s\n", strings.Join(trend, " → "))

	if len(p.WeakConcepts) > 0 {
		fmt.Println("Weak concepts:")
		for _, c := range p.WeakConcepts {
			fmt.Println("  " + c)
		}
	}
	return nil
}
