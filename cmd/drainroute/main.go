// Command drainroute computes an optimal drainage pipe trace for a
// building plan: it loads the component catalog, the corridor layout and
// the water connections from CSV sheets, routes every source to the
// stack, and writes the 2D plan as text and SVG.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"drainroute/pkg/catalog"
	"drainroute/pkg/config"
	"drainroute/pkg/connections"
	"drainroute/pkg/corridor"
	"drainroute/pkg/decision"
	"drainroute/pkg/route"
	"drainroute/pkg/view"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var inputDir, outputDir string
	cmd := &cobra.Command{
		Use:   "drainroute",
		Short: "Compute an optimal drainage pipe trace for a building plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(inputDir, outputDir, view.Console{Out: cmd.OutOrStdout()})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&inputDir, "input", "InputData", "directory holding the input sheets")
	cmd.Flags().StringVar(&outputDir, "output", "OutputData", "directory for the computed trace")
	return cmd
}

func run(inputDir, outputDir string, sink view.Sink) error {
	oracle := decision.NewMaker(sink)
	sink.Info(fmt.Sprintf("loading answered decisions from %q", filepath.Join(inputDir, "decisions.csv")))
	if err := oracle.Load(filepath.Join(inputDir, "decisions.csv")); err != nil {
		return err
	}

	choice := oracle.Choose("describe the decision mechanism, or run the algorithm?",
		[]decision.Alternative{
			{ID: 1, Description: "describe the decision mechanism"},
			{ID: 2, Description: "run the algorithm"},
		})
	if choice == 1 {
		sink.Info("")
		sink.Info("While building a trace the algorithm sometimes faces choices it cannot")
		sink.Info("settle on its own, for example several shortest polylines for one source.")
		sink.Info("Each such choice gets a sequential decision number and a default answer.")
		sink.Info("To override an answer, add a line \"<decision>;<alternative>\" to")
		sink.Info("decisions.csv. To run the algorithm now, add the line \"1;2\" and restart.")
		return nil
	}

	sink.Info(fmt.Sprintf("loading model configuration from %q", filepath.Join(inputDir, "config.csv")))
	cfg, err := config.Load(filepath.Join(inputDir, "config.csv"))
	if err != nil {
		return err
	}

	params, err := config.LoadParameters(filepath.Join(inputDir, "params.yaml"))
	if err != nil {
		return err
	}

	sink.Info("loading external diameters and available components")
	bag := catalog.NewBag(cfg)
	if err := bag.Load(
		filepath.Join(inputDir, "externalDiameters.csv"),
		filepath.Join(inputDir, "materials.csv")); err != nil {
		return err
	}

	sink.Info(fmt.Sprintf("loading the corridor graph from %q", filepath.Join(inputDir, "location.csv")))
	graph := corridor.NewGraph(bag, params)
	if err := graph.Load(filepath.Join(inputDir, "location.csv")); err != nil {
		return err
	}
	if err := graph.AutoConnect(); err != nil {
		return err
	}

	sink.Info(fmt.Sprintf("loading water connections from %q", filepath.Join(inputDir, "connections.csv")))
	set, err := connections.Load(filepath.Join(inputDir, "connections.csv"))
	if err != nil {
		return err
	}

	finder := route.NewFinder(cfg, set, bag, graph, sink, oracle)
	trk, err := finder.ComputeTrack()
	if err != nil {
		return err
	}

	trk.Print2D()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	txtPath := filepath.Join(outputDir, "pipeTrack2D.txt")
	if err := trk.Write2DFile(txtPath); err != nil {
		return err
	}
	svgPath := filepath.Join(outputDir, "pipeTrack2D.svg")
	if err := trk.WriteSVGFile(svgPath); err != nil {
		return err
	}
	sink.Info(fmt.Sprintf("wrote %q and %q", txtPath, svgPath))
	return nil
}
