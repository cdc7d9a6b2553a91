package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

// errSilent marks failures a command already reported to the user.
var errSilent = errors.New("silent")

var rootCmd = &cobra.Command{
	Use:           "agriconnect",
	Short:         "Rural labour marketplace: server and client in one binary",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(labourCmd)
	rootCmd.AddCommand(tractorsCmd)
	rootCmd.AddCommand(middlemenCmd)
	rootCmd.AddCommand(announcementsCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(weatherCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
