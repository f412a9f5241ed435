package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rofergon/Spirit-Criptogame/internal/pipeline"
	"github.com/rofergon/Spirit-Criptogame/internal/texture"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "hexprep",
	Short: "Prepare hexagonal tile textures from composite images",
	Long: `hexprep prepares hex tile textures for the game assets:

  extract   split a grid sheet into individual transparent tiles
  clean     remove white background matte from tiles
  thin      thin a tile's decorative frame

Sources may be a single PNG or a directory of PNGs. Without an output
directory, clean and thin overwrite the originals after writing a
one-time _backup copy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	extractOut    string
	extractPrefix string
	extractCols   int
	extractRows   int
	extractClean  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <source>",
	Short: "Split a composite sheet into individual tiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.Extract(pipeline.ExtractOptions{
			Source: args[0],
			OutDir: extractOut,
			Prefix: extractPrefix,
			Cols:   extractCols,
			Rows:   extractRows,
			Clean:  extractClean,
		})
		return err
	},
}

var (
	cleanOut       string
	cleanThreshold int
	cleanTolerance int
	cleanPureWhite bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <source>",
	Short: "Remove white background matte from tiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Pure-white mode uses a stricter default cutoff.
		if cleanPureWhite && !cmd.Flags().Changed("threshold") {
			cleanThreshold = texture.PureWhiteThreshold
		}
		return pipeline.Clean(pipeline.CleanOptions{
			Source:         args[0],
			OutDir:         cleanOut,
			WhiteThreshold: cleanThreshold,
			Tolerance:      cleanTolerance,
			PureWhite:      cleanPureWhite,
		})
	},
}

var (
	thinOut    string
	thinShrink int
)

var thinCmd = &cobra.Command{
	Use:   "thin <source>",
	Short: "Thin the decorative frame of hex tiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.Thin(pipeline.ThinOptions{
			Source: args[0],
			OutDir: thinOut,
			Shrink: thinShrink,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hexprep %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.Version = Version

	extractCmd.Flags().StringVar(&extractOut, "out", "extracted_hexes", "output directory for extracted tiles")
	extractCmd.Flags().StringVar(&extractPrefix, "prefix", "hex", "output filename prefix")
	extractCmd.Flags().IntVar(&extractCols, "cols", 2, "grid columns in the source sheet")
	extractCmd.Flags().IntVar(&extractRows, "rows", 2, "grid rows in the source sheet")
	extractCmd.Flags().BoolVar(&extractClean, "clean", false, "run the matte cleaner on each extracted tile")

	cleanCmd.Flags().StringVar(&cleanOut, "out", "", "output directory (default: overwrite in place)")
	cleanCmd.Flags().IntVar(&cleanThreshold, "threshold", texture.DefaultWhiteThreshold, "RGB value above which a pixel counts as white")
	cleanCmd.Flags().IntVar(&cleanTolerance, "tolerance", texture.DefaultWhiteTolerance, "tolerance for near-white detection")
	cleanCmd.Flags().BoolVar(&cleanPureWhite, "pure-white", false, "remove only pure-white pixels, skip halo damping")

	thinCmd.Flags().StringVar(&thinOut, "out", "", "output directory (default: backup and overwrite in place)")
	thinCmd.Flags().IntVar(&thinShrink, "shrink", texture.DefaultFrameShrink, "pixels of frame width to remove")

	rootCmd.AddCommand(extractCmd, cleanCmd, thinCmd, versionCmd)
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("hexprep: %v", err)
	}
}
