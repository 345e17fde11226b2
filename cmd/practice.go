package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/skillgate/interviewd/internal/interview"
	"github.com/skillgate/interviewd/internal/logger"
	"github.com/skillgate/interviewd/internal/metrics"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a single interview interactively in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		practice(cmd)
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)

	practiceCmd.Flags().StringP("name", "n", "", "candidate name (prompted for when unset)")
	practiceCmd.Flags().StringP("resume", "r", "", "path to a plain-text resume file")
	practiceCmd.Flags().String("role", "", "target role")
	practiceCmd.Flags().String("level", "", "target level")
}

func practice(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	engine, _, err := buildEngine(ctx, config, logger, metrics.New())
	if err != nil {
		logger.Fatal("building the interview engine", zap.Error(err))
	}

	name := cmd.Flag("name").Value.String()
	if strings.TrimSpace(name) == "" {
		namePrompt := promptui.Prompt{Label: "Candidate name"}
		name, err = namePrompt.Run()
		if err != nil {
			logger.Fatal("reading the candidate name", zap.Error(err))
		}
	}

	resumeText, err := readResume(cmd.Flag("resume").Value.String())
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err))
	}

	start, err := engine.Start(ctx, interview.StartRequest{
		CandidateName: name,
		Role:          cmd.Flag("role").Value.String(),
		Level:         cmd.Flag("level").Value.String(),
		ResumeText:    resumeText,
	})
	if err != nil {
		logger.Fatal("starting the interview", zap.Error(err))
	}

	if start.Blocked {
		fmt.Println(start.Reason)
		return
	}

	fmt.Println(start.Greeting)

	question := start.Question
	for question != nil {
		answer, err := askQuestion(question)
		if err != nil {
			logger.Fatal("reading the answer", zap.Error(err))
		}

		resp, err := engine.Submit(ctx, interview.SubmitRequest{
			SessionID: start.SessionID,
			Answer:    answer,
		})
		if err != nil {
			logger.Fatal("submitting the answer", zap.Error(err))
		}

		fmt.Println(resp.Feedback)

		if resp.Summary != nil {
			printSummary(resp.Summary)
			return
		}
		question = resp.Question
	}
}

func askQuestion(q *interview.Question) (string, error) {
	fmt.Printf("\nQuestion %d [%s]: %s\n", q.ID, q.Skill, q.Text)

	if q.Type == interview.MultipleChoice {
		prompt := promptui.Select{
			Label: "Choose an answer",
			Items: q.Options,
		}
		_, answer, err := prompt.Run()
		return answer, err
	}

	prompt := promptui.Prompt{Label: "Your answer"}
	return prompt.Run()
}

func readResume(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printSummary(d *interview.Decision) {
	verdict := "NOT PASSED"
	if d.Passed {
		verdict = "PASSED"
	}

	fmt.Printf("\n%s\n", verdict)
	fmt.Printf("  required skills: %.2f/10\n", d.RequiredSkillRating)
	fmt.Printf("  soft skills:     %.2f/10\n", d.SoftSkillRating)
	fmt.Printf("  confidence:      %.2f/10\n", d.ConfidenceRating)
	fmt.Printf("  cheating:        %.2f\n", d.CheatingScore)
	fmt.Println(d.Feedback)
}
