package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cmtegi-hash/square-foot-calculator-clean/internal/plan"
	"github.com/cmtegi-hash/square-foot-calculator-clean/pkg/model"
)

type options struct {
	planPath string
	floors   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sqft",
		Short: "Total floor area and stair steps for a building plan",
		Long: `sqft reads a YAML plan of rooms and stairs, groups the included rooms by
floor and name, and prints the same copyable summary the web calculator shows.

Plan file:
  floors: [Basement, Floor 1, Floor 2, Floor 3]   # optional
  rooms:
    - {name: Kitchen, floor: Floor 1, width: 10, length: 12}
    - {name: Garage, floor: Floor 1, width: 20, length: 20, include: false}
  stairs:
    - {from: Floor 1, to: Floor 2, steps: 14, landing: {width: 3, length: 4}}

Examples:
  sqft summary -p house.yaml
  sqft summary -p house.yaml --json
  sqft export -p house.yaml -o house.xlsx
  sqft floors --floors "Cellar,Ground,Upper"`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.planPath, "plan", "p", "plan.yaml", "Path to the plan file")
	root.PersistentFlags().StringVar(&opts.floors, "floors", os.Getenv("FLOORS"), "Comma separated floor order (overrides the plan file)")

	root.AddCommand(newSummaryCmd(opts), newExportCmd(opts), newFloorsCmd(opts))
	return root
}

func (o *options) floorSet() model.FloorSet {
	return model.ParseFloorSet(o.floors)
}

func (o *options) load() (plan.Plan, error) {
	p, err := plan.Load(o.planPath, o.floorSet())
	if err != nil {
		return plan.Plan{}, fmt.Errorf("load %s: %w", o.planPath, err)
	}
	return p, nil
}

func main() {
	_ = godotenv.Load(".env.local", ".env")

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
