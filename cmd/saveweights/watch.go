package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/saveweights/internal/checkpoint"
	"github.com/Faultbox/saveweights/internal/logger"
	"github.com/Faultbox/saveweights/pkg/weights"
)

func newWatchCmd(a *app) *cobra.Command {
	var object string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Checkpoint an object's weights whenever the scene file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &checkpoint.Watcher{
				ScenePath: a.cfg.Scene.Path,
				Object:    object,
				Store:     &checkpoint.Store{Dir: a.cfg.Checkpoints.Dir, Keep: a.cfg.Checkpoints.Keep},
				Debounce:  a.cfg.Checkpoints.Debounce,
				Logger:    logger.Log,
				OnCheckpoint: func(path string, doc *weights.Document) {
					a.printf("Checkpoint of '%s' saved to %s\n", doc.Object, path)
				},
			}
			a.printf("Watching %s (Ctrl+C to stop)\n", a.cfg.Scene.Path)
			if err := w.Run(ctx); err != nil {
				logger.Error("watch stopped", zap.String("scene", a.cfg.Scene.Path), zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&object, "object", "", "Object to checkpoint (default: active object)")
	return cmd
}
