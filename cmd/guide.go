package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akarsh/studyforge/internal/extract"
	"github.com/akarsh/studyforge/internal/gen"
	"github.com/akarsh/studyforge/internal/guide"
	"github.com/akarsh/studyforge/internal/llm"
	"github.com/akarsh/studyforge/internal/store"
)

var guideCmd = &cobra.Command{
	Use:   "guide <textfile>",
	Short: "Assemble a study guide from a text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		levelStr, _ := cmd.Flags().GetString("level")
		title, _ := cmd.Flags().GetString("title")
		enhance, _ := cmd.Flags().GetBool("enhance")
		outPath, _ := cmd.Flags().GetString("out")

		level, err := guide.ParseLevel(levelStr)
		if err != nil {
			return err
		}

		text, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read text file: %w", err)
		}

		ctx := context.Background()

		var enhancer gen.Strategy
		if enhance {
			enhancer, err = buildEnhancer(ctx, cmd)
			if err != nil {
				return err
			}
		}

		assembler := guide.NewAssembler(
			extract.New(extract.DefaultConfig()),
			enhancer,
			guide.DefaultConfig(),
		)

		g, err := assembler.Assemble(ctx, guide.AssembleInput{
			Title:   title,
			Subject: subject,
			Level:   level,
			Text:    string(text),
		})
		if err != nil {
			return fmt.Errorf("assemble guide: %w", err)
		}

		for _, w := range g.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}

		return writeJSON(outPath, g)
	},
}

// buildEnhancer wires an LLM-backed generation strategy with event logging
// into the local store.
func buildEnhancer(ctx context.Context, cmd *cobra.Command) (gen.Strategy, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// The store stays open for the lifetime of the command.

	provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
	if err != nil {
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	return gen.NewLLMStrategy(provider, llm.DefaultConfig().Timeout), nil
}

// writeJSON writes v as indented JSON to path, or stdout when path is empty.
func writeJSON(path string, v any) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	guideCmd.Flags().StringP("subject", "s", "", "Subject the text covers")
	guideCmd.Flags().StringP("level", "l", "undergraduate", "Academic level (high_school, undergraduate, graduate, professional)")
	guideCmd.Flags().StringP("title", "t", "", "Guide title (derived from subject when empty)")
	guideCmd.Flags().Bool("enhance", false, "Use a configured LLM provider for richer summaries")
	guideCmd.Flags().StringP("out", "o", "", "Output file (stdout when empty)")
	_ = guideCmd.MarkFlagRequired("subject")
}
