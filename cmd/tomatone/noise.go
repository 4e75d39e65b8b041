package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tomatone/internal/audio"
)

var noiseOpts struct {
	duration time.Duration
}

var noiseCmd = &cobra.Command{
	Use:   "noise",
	Short: "Play white noise standalone",
	Long: `Play the white-noise bed without a countdown.

Plays for --duration, or until interrupted when no duration is given.`,
	RunE: runNoise,
}

func init() {
	rootCmd.AddCommand(noiseCmd)

	noiseCmd.Flags().DurationVar(&noiseOpts.duration, "duration", 0,
		"How long to play (0 = until Ctrl-C)")
}

func runNoise(cmd *cobra.Command, args []string) error {
	player := audio.NewPlayer(getConfig().Audio, logger)
	defer player.Close()

	if err := player.StartNoise(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if noiseOpts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, noiseOpts.duration)
		defer cancel()
	}

	<-ctx.Done()
	player.StopNoise()
	return nil
}
