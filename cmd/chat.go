package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/careercompass/career-compass/internal/logger"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the career assistant in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		runChat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("context-file", "c", "", "plain text file with your resume, used as conversation context")
}

func runChat(cmd *cobra.Command) {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		panic(fmt.Sprintf("creating a logger: %s", err))
	}

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	_, session, err := buildCore(ctx, config, log)
	if err != nil {
		log.Fatal("building AI components", zap.Error(err))
	}

	resumeContext := ""
	if path := cmd.Flag("context-file").Value.String(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatal("reading context file", zap.String("path", path), zap.Error(err))
		}
		resumeContext = string(data)
		log.Info("loaded resume context", zap.String("path", path), zap.Int("characters", len(resumeContext)))
	}

	fmt.Println("Career assistant ready. Type your question, or \"exit\" to quit.")

	prompt := promptui.Prompt{Label: "You"}

	for {
		query, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			log.Fatal("reading input", zap.Error(err))
		}

		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		if query == "exit" || query == "quit" {
			return
		}

		response := session.Chat(ctx, query, resumeContext)
		fmt.Printf("\n%s\n\n", response)
	}
}
