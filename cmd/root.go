package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "learnmint",
	Short: "AI-assisted studying server",
	Long:  "LearnMint — generate study notes, quizzes, flashcards, and audio discussions for any topic over an HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	rootCmd.AddCommand(serveCmd)

	// Serve flags also live on root so bare `learnmint --addr ...` works.
	registerServeFlags(rootCmd)
}

// viperForCmd binds a command's flags and environment to a fresh viper
// instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("LEARNMINT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("learnmint")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/learnmint")
	v.AddConfigPath("/etc/learnmint")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			cmd.PrintErrln("error reading config file:", err)
		}
	}

	return v
}
