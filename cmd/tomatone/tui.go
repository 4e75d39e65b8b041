package main

import (
	"github.com/spf13/cobra"

	"tomatone/internal/audio"
	"tomatone/internal/notify"
	"tomatone/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive timer",
	Long: `Launch the interactive terminal timer.

Key bindings:
  w           Start 25-minute work interval
  b           Start 5-minute break
  space       Pause / resume
  r           Reset current interval
  n           Toggle white noise
  y           Copy session summary as YAML
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	player := audio.NewPlayer(cfg.Audio, logger)
	controller := audio.NewController(player, cfg.Audio.Enabled, logger)
	defer controller.Close()

	// Watch a configured chime file so edits take effect without a restart
	var watcher *audio.ChimeWatcher
	if path := player.ChimePath(); path != "" {
		var err error
		watcher, err = audio.NewChimeWatcher(player, path)
		if err != nil {
			logger.Warn("failed to create chime watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start chime watcher", "error", err)
		}
	}
	defer func() {
		if watcher != nil {
			_ = watcher.Stop()
		}
	}()

	notifier := notify.NewNotifier(cfg.Notify.Enabled, cfg.Notify.ExpireTimeout, logger)

	return tui.Run(tui.RunOptions{
		Config:   cfg,
		Sound:    controller,
		Notifier: notifier,
	})
}
