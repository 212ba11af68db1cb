package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akarsh/studyforge/internal/guide"
	"github.com/akarsh/studyforge/internal/progress"
	"github.com/akarsh/studyforge/internal/quiz"
	"github.com/akarsh/studyforge/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Create and grade quizzes",
}

var quizNewCmd = &cobra.Command{
	Use:   "new <guide.json>",
	Short: "Create a quiz from a study guide",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		numQuestions, _ := cmd.Flags().GetInt("questions")
		difficultyStr, _ := cmd.Flags().GetString("difficulty")
		typesStr, _ := cmd.Flags().GetString("types")
		outPath, _ := cmd.Flags().GetString("out")

		difficulty, err := quiz.ParseDifficulty(difficultyStr)
		if err != nil {
			return err
		}

		types, err := parseQuestionTypes(typesStr)
		if err != nil {
			return err
		}

		g, err := readGuide(args[0])
		if err != nil {
			return err
		}

		engine := quiz.NewEngine(quiz.DefaultConfig())
		q, err := engine.CreateQuiz(g, difficulty, numQuestions, types)
		if err != nil {
			return fmt.Errorf("create quiz: %w", err)
		}

		return writeJSON(outPath, q)
	},
}

var quizGradeCmd = &cobra.Command{
	Use:   "grade <quiz.json> <answers.json>",
	Short: "Grade submitted answers against a quiz",
	Long: "Grades an answers document (a JSON object of question id to answer)\n" +
		"against a quiz and prints the result. With --record the result is\n" +
		"appended to the subject's history for adaptive quizzes.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		timeTaken, _ := cmd.Flags().GetInt("time")
		record, _ := cmd.Flags().GetBool("record")
		outPath, _ := cmd.Flags().GetString("out")

		q, err := readQuiz(args[0])
		if err != nil {
			return err
		}

		answersData, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read answers file: %w", err)
		}
		answers, err := quiz.ParseAnswers(answersData)
		if err != nil {
			return err
		}

		engine := quiz.NewEngine(quiz.DefaultConfig())
		result := engine.EvaluateQuiz(q, answers, timeTaken)

		if record {
			dbPath, err := resolveDBPath(cmd)
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}
			s, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer s.Close()

			tracker := progress.NewTracker(s.HistoryRepo(), engine, progress.DefaultConfig())
			if _, err := tracker.Record(context.Background(), q.Subject, *result); err != nil {
				return err
			}
		}

		return writeJSON(outPath, result)
	},
}

func readGuide(path string) (*guide.StudyGuide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guide file: %w", err)
	}
	var g guide.StudyGuide
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse guide file: %w", err)
	}
	return &g, nil
}

func readQuiz(path string) (*quiz.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	var q quiz.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parse quiz file: %w", err)
	}
	return &q, nil
}

func parseQuestionTypes(s string) ([]quiz.QuestionType, error) {
	if s == "" {
		return nil, nil
	}
	var types []quiz.QuestionType
	for _, part := range strings.Split(s, ",") {
		t, err := quiz.ParseQuestionType(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func init() {
	quizNewCmd.Flags().IntP("questions", "n", 5, "Number of questions")
	quizNewCmd.Flags().StringP("difficulty", "d", "medium", "Difficulty (easy, medium, hard)")
	quizNewCmd.Flags().String("types", "", "Comma-separated question types (default round-robin)")
	quizNewCmd.Flags().StringP("out", "o", "", "Output file (stdout when empty)")

	quizGradeCmd.Flags().Int("time", 0, "Time taken in seconds")
	quizGradeCmd.Flags().Bool("record", false, "Record the result in the subject's history")
	quizGradeCmd.Flags().StringP("out", "o", "", "Output file (stdout when empty)")

	quizCmd.AddCommand(quizNewCmd)
	quizCmd.AddCommand(quizGradeCmd)
}
