package main

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/voevent/format"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Validate packets as they arrive in a directory",
		Long: `Watches DIR and validates every .xml or .voe file that is created or
written there, printing one line per file. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd, args[0])
		},
	}
}

func (a *app) watch(cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	a.logger.Info("watching directory", zap.String("dir", dir))

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("stopped watching", zap.String("dir", dir))
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !format.IsPacketFile(ev.Name) {
				a.logger.Debug("ignoring file", zap.String("file", ev.Name))
				continue
			}
			a.report(cmd.OutOrStdout(), ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
