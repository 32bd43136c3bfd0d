package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/saveweights/internal/checkpoint"
	"github.com/Faultbox/saveweights/internal/logger"
	"github.com/Faultbox/saveweights/pkg/weights"
)

func newLoadCmd(a *app) *cobra.Command {
	var (
		latest bool
		object string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "load [file]",
		Short: "Apply a weights file to the object it names",
		Long: `Read a weights document and apply it to the object of the same name in the
scene. Existing groups with matching names are replaced; their members that
the document does not list keep their current weight.

With --latest the newest checkpoint of --object (or the active object) is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, err := a.loadScene()
			if err != nil {
				return err
			}

			var path string
			switch {
			case object != "" && !latest:
				return errors.New("--object only applies with --latest")
			case latest && len(args) > 0:
				return errors.New("give either a file or --latest, not both")
			case latest:
				obj, err := pickObject(scene, object)
				if err != nil {
					return err
				}
				store := &checkpoint.Store{Dir: a.cfg.Checkpoints.Dir}
				entry, err := store.Latest(obj.Name())
				if err != nil {
					return err
				}
				path = entry.Path
			case len(args) == 1:
				path = args[0]
			default:
				return errors.New("no file given")
			}

			doc, err := weights.ReadFile(path)
			if err != nil {
				return err
			}
			report, err := weights.Restore(doc, scene, weights.WithLogger(logger.Log))
			if errors.Is(err, weights.ErrObjectNotFound) {
				return fmt.Errorf("could not find object: %s", doc.Object)
			}
			if err != nil {
				return err
			}

			if !dryRun {
				if err := scene.Save(a.cfg.Scene.Path); err != nil {
					return fmt.Errorf("writing scene %s: %w", a.cfg.Scene.Path, err)
				}
			}

			carried := 0
			for _, g := range report.Groups {
				carried += len(g.CarriedOver)
			}
			verb := "Applied"
			if dryRun {
				verb = "Would apply"
			}
			a.printf("%s weights to '%s' from %s (%d groups, %d weights kept)\n",
				verb, report.Object, path, len(report.Groups), carried)
			if n := len(report.Skipped); n > 0 {
				logger.Warn("document lists vertices the mesh does not have",
					zap.String("object", report.Object),
					zap.String("path", path),
					zap.Int("skipped", n))
				a.printf("Skipped %d weights for vertices the mesh does not have\n", n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "Apply the newest checkpoint")
	cmd.Flags().StringVar(&object, "object", "", "Object whose checkpoint --latest applies (default: active object); needs --latest")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would change without writing the scene")
	return cmd
}
