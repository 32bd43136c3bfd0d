package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/saveweights/pkg/math"
	"github.com/Faultbox/saveweights/pkg/mesh"
	"github.com/Faultbox/saveweights/pkg/weights"
)

func newInspectCmd(a *app) *cobra.Command {
	var withScene bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a weights file",
		Long: `Print the object and groups of a weights document with their member counts
and weight ranges. With --with-scene the centroid of each group's members on
the scene object is shown as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := weights.ReadFile(args[0])
			if err != nil {
				return err
			}

			var obj *mesh.Object
			if withScene {
				scene, err := a.loadScene()
				if err != nil {
					return err
				}
				o, ok := scene.Object(doc.Object)
				if !ok {
					return fmt.Errorf("could not find object: %s", doc.Object)
				}
				obj = o
			}

			a.printf("Object: %s\n", doc.Object)
			a.printf("Groups: %d\n\n", len(doc.Groups))
			if len(doc.Groups) == 0 {
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			header := "ID\tNAME\tMEMBERS\tMIN\tMAX"
			if obj != nil {
				header += "\tCENTROID"
			}
			fmt.Fprintln(tw, header)
			for _, id := range doc.SortedGroupIDs() {
				rec := doc.Groups[id]
				lo, hi := rec.Range()
				line := fmt.Sprintf("%d\t%s\t%d\t%.3f\t%.3f", id, rec.Name, len(rec.Weights), lo, hi)
				if obj != nil {
					line += "\t" + groupCentroid(obj, rec)
				}
				fmt.Fprintln(tw, line)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&withScene, "with-scene", false, "Show member centroids from the scene object")
	return cmd
}

// groupCentroid averages the positions of the record's vertices that exist
// on obj.
func groupCentroid(obj *mesh.Object, rec *weights.GroupRecord) string {
	coords := obj.Coords()
	var points []math.Vec3
	for _, v := range rec.Vertices() {
		if v >= 0 && v < len(coords) {
			points = append(points, coords[v])
		}
	}
	if len(points) == 0 {
		return "-"
	}
	return math.Centroid(points).String()
}
