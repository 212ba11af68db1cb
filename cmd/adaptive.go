package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akarsh/studyforge/internal/progress"
	"github.com/akarsh/studyforge/internal/quiz"
	"github.com/akarsh/studyforge/internal/store"
)

var adaptiveCmd = &cobra.Command{
	Use:   "adaptive <guide.json>",
	Short: "Create a quiz adapted to recorded performance",
	Long: "Builds a quiz whose difficulty follows the subject's accuracy history\n" +
		"and whose questions focus on concepts answered poorly in past quizzes.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		numQuestions, _ := cmd.Flags().GetInt("questions")
		subject, _ := cmd.Flags().GetString("subject")
		outPath, _ := cmd.Flags().GetString("out")

		g, err := readGuide(args[0])
		if err != nil {
			return err
		}
		if subject == "" {
			subject = g.Subject
		}

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
		engine := quiz.NewEngine(quiz.DefaultConfig())
		tracker := progress.NewTracker(s.HistoryRepo(), engine, progress.DefaultConfig())

		if err := tracker.LoadHistory(ctx, subject); err != nil {
			return err
		}

		q, err := tracker.CreateAdaptiveQuiz(g, subject, numQuestions)
		if err != nil {
			return fmt.Errorf("create adaptive quiz: %w", err)
		}

		return writeJSON(outPath, q)
	},
}

func init() {
	adaptiveCmd.Flags().IntP("questions", "n", 5, "Number of questions")
	adaptiveCmd.Flags().StringP("subject", "s", "", "Subject (defaults to the guide's subject)")
	adaptiveCmd.Flags().StringP("out", "o", "", "Output file (stdout when empty)")
}
