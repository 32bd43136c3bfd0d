package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/saveweights/internal/checkpoint"
)

func newCheckpointsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoints [object-glob]",
		Short: "List stored checkpoints",
		Long: `List checkpoints oldest first. The optional argument is a glob over object
names, e.g. "Body" or "Arm*".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := &checkpoint.Store{Dir: a.cfg.Checkpoints.Dir}
			var (
				entries []checkpoint.Entry
				err     error
			)
			if len(args) == 1 {
				entries, err = store.Find(args[0])
			} else {
				entries, err = store.List(checkpoint.DefaultPattern)
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				a.printf("No checkpoints in %s\n", a.cfg.Checkpoints.Dir)
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "OBJECT\tTIME\tPATH")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Object, e.Time.Local().Format(time.DateTime), e.Path)
			}
			return tw.Flush()
		},
	}
	return cmd
}
