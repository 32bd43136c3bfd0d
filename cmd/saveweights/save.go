package main

import (
	"net/url"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/saveweights/internal/logger"
	"github.com/Faultbox/saveweights/pkg/weights"
)

func newSaveCmd(a *app) *cobra.Command {
	var object, output string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the weights of an object to a file",
		Long: `Capture every vertex group of an object and write it as a weights document.
The object defaults to the scene's active object and the file to <object>.json
in the documents directory, with the name path-escaped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := a.loadScene()
			if err != nil {
				return err
			}
			obj, err := pickObject(scene, object)
			if err != nil {
				return err
			}

			doc, err := weights.Capture(obj)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = filepath.Join(a.cfg.Documents.Dir, url.PathEscape(obj.Name())+".json")
			}
			if err := weights.WriteFile(path, doc, a.cfg.Documents.Indent); err != nil {
				return err
			}
			logger.Info("saved weights",
				zap.String("object", obj.Name()),
				zap.String("path", path),
				zap.Int("groups", len(doc.Groups)))
			a.printf("Saved weights of '%s' to %s (%d groups)\n", obj.Name(), path, len(doc.Groups))
			return nil
		},
	}
	cmd.Flags().StringVar(&object, "object", "", "Object to save (default: active object)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.json, .yaml or .yml)")
	return cmd
}
