package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/saveweights/internal/config"
	"github.com/Faultbox/saveweights/internal/logger"
	"github.com/Faultbox/saveweights/pkg/mesh"
)

// app carries state shared by subcommands once flags are parsed.
type app struct {
	cfg *config.Config
	out io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "saveweights",
		Short: "Save and restore mesh vertex group weights",
		Long: `saveweights captures every vertex group of a mesh object into a JSON
document and applies such documents back. When a group of the same name
already exists, vertices the document does not list keep their weight.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debug("configuration loaded",
				zap.String("command", cmd.Name()),
				zap.String("config", config.ConfigPath()),
				zap.String("scene", cfg.Scene.Path),
				zap.String("documents", cfg.Documents.Dir))
			return nil
		},
	}
	root.SetOut(out)
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newSaveCmd(a),
		newLoadCmd(a),
		newInspectCmd(a),
		newWatchCmd(a),
		newCheckpointsCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// loadScene reads the configured scene file.
func (a *app) loadScene() (*mesh.Scene, error) {
	scene, err := mesh.LoadScene(a.cfg.Scene.Path)
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", a.cfg.Scene.Path, err)
	}
	return scene, nil
}

// pickObject returns the named object, or the active one when name is empty.
func pickObject(scene *mesh.Scene, name string) (*mesh.Object, error) {
	if name == "" {
		obj, ok := scene.ActiveObject()
		if !ok {
			return nil, errors.New("no --object given and the scene has no active object")
		}
		return obj, nil
	}
	obj, ok := scene.Object(name)
	if !ok {
		return nil, fmt.Errorf("could not find object: %s", name)
	}
	return obj, nil
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
