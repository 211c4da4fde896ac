package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
)

func newFloorsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "floors",
		Short: "List the floor order used for grouping",
		Long: `List the floor order used for grouping. --floors wins, then the plan
file's floors list, then the built-in order. A missing default plan file
is not an error here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			floors, err := opts.resolveFloors(cmd.Flags().Changed("plan"))
			if err != nil {
				return err
			}
			for i, f := range floors {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, f)
			}
			return nil
		},
	}
}

func (o *options) resolveFloors(explicitPlan bool) (model.FloorSet, error) {
	if floors := o.floorSet(); len(floors) > 0 {
		return floors, nil
	}
	if _, err := os.Stat(o.planPath); errors.Is(err, fs.ErrNotExist) && !explicitPlan {
		return model.DefaultFloors, nil
	}
	p, err := o.load()
	if err != nil {
		return nil, err
	}
	return p.Floors, nil
}
