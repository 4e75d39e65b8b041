package main

import (
	"github.com/spf13/cobra"

	"tomatone/internal/audio"
)

var chimeCmd = &cobra.Command{
	Use:   "chime",
	Short: "Play the end-of-interval chime once",
	Long: `Play the configured chime once and exit.

Useful for previewing a custom chime file or checking that audio output
works at all. Unlike the timer itself, this command reports playback
errors.`,
	RunE: runChime,
}

func init() {
	rootCmd.AddCommand(chimeCmd)
}

func runChime(cmd *cobra.Command, args []string) error {
	player := audio.NewPlayer(getConfig().Audio, logger)
	defer player.Close()

	return player.PlayChimeAndWait()
}
