package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	surfacePath string
	maxDistance float64
	outputPath  string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "dxf2obj <drawing.dxf>",
	Short: "Convert DXF drawing primitives to GeoJSON vector geometries",
	Long: `dxf2obj converts DXF drawing primitives (lines, polylines, arcs,
circles and nested block references) into discrete vector geometries.
A LandXML surface model can be supplied to derive elevations for the
converted coordinates via spatial interpolation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "processor configuration (YAML); all entities are converted without it")
	rootCmd.Flags().StringVarP(&surfacePath, "surface", "s", "", "LandXML surface model for elevation lookup")
	rootCmd.Flags().Float64Var(&maxDistance, "max-distance", 25, "maximum search distance for elevation interpolation")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (GeoJSON); stdout when omitted")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
