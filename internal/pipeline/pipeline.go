package pipeline

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/rofergon/Spirit-Criptogame/internal/texture"
)

// ExtractOptions configures a grid extraction run.
type ExtractOptions struct {
	Source string // file or directory of composite sheets
	OutDir string // destination directory for extracted tiles
	Prefix string // output name prefix, e.g. "grass_hex"
	Cols   int
	Rows   int
	Clean  bool // run the matte cleaner on each extracted tile
}

// Extract splits each source sheet into individual tiles and writes
// them as "{prefix}_{base}_{index}.png", index starting at 1 in
// row-major visitation order. Returns the paths written.
func Extract(opts ExtractOptions) ([]string, error) {
	files, err := collectPNGs(opts.Source)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, path := range files {
		outputs, err := extractFile(path, opts)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		written = append(written, outputs...)
	}
	log.Printf("extracted %d tiles", len(written))
	return written, nil
}

func extractFile(path string, opts ExtractOptions) ([]string, error) {
	buf, err := loadBuffer(path)
	if err != nil {
		return nil, err
	}
	log.Printf("processing %s (%dx%d, %dx%d grid)", path, buf.W, buf.H, opts.Cols, opts.Rows)

	tiles := texture.ExtractGrid(buf, opts.Cols, opts.Rows, texture.DefaultContentAlpha)
	if len(tiles) == 0 {
		log.Printf("  no content above alpha threshold, nothing extracted")
		return nil, nil
	}

	base := baseName(path)
	var written []string
	for i, tile := range tiles {
		if opts.Clean {
			tile, _ = texture.CleanMatte(tile, texture.DefaultWhiteThreshold, texture.DefaultWhiteTolerance)
		}

		name := fmt.Sprintf("%s_%s_%d.png", opts.Prefix, base, i+1)
		outPath := filepath.Join(opts.OutDir, name)
		if err := saveBuffer(tile, outPath); err != nil {
			return written, err
		}
		logTile(name, tile)
		written = append(written, outPath)
	}
	return written, nil
}

// CleanOptions configures a matte cleaning run.
type CleanOptions struct {
	Source         string
	OutDir         string // empty means overwrite each source in place
	WhiteThreshold int
	Tolerance      int
	PureWhite      bool // strict pure-white removal, no halo damping
}

// Clean runs the background matte cleaner over each source file,
// preserving the original filename. Without an output directory the
// originals are backed up and overwritten.
func Clean(opts CleanOptions) error {
	files, err := collectPNGs(opts.Source)
	if err != nil {
		return err
	}

	for _, path := range files {
		if err := cleanFile(path, opts); err != nil {
			log.Printf("skipping %s: %v", path, err)
		}
	}
	return nil
}

func cleanFile(path string, opts CleanOptions) error {
	buf, err := loadBuffer(path)
	if err != nil {
		return err
	}

	var out *texture.Buffer
	var empty bool
	if opts.PureWhite {
		out, empty = texture.CleanPureWhite(buf, opts.WhiteThreshold)
	} else {
		out, empty = texture.CleanMatte(buf, opts.WhiteThreshold, opts.Tolerance)
	}
	if empty {
		log.Printf("  %s: no content after matting, left unchanged", filepath.Base(path))
	}

	if opts.OutDir != "" {
		outPath := filepath.Join(opts.OutDir, filepath.Base(path))
		if err := saveBuffer(out, outPath); err != nil {
			return err
		}
	} else if err := overwriteInPlace(out, path); err != nil {
		return err
	}

	log.Printf("  %s: %dx%d -> %dx%d", filepath.Base(path), buf.W, buf.H, out.W, out.H)
	return nil
}

// ThinOptions configures a frame thinning run.
type ThinOptions struct {
	Source string
	OutDir string // empty means back up and overwrite in place
	Shrink int    // pixels of frame width to remove
}

// Thin runs the frame thinner over each source file, preserving the
// original filename. Without an output directory the originals are
// backed up and overwritten.
func Thin(opts ThinOptions) error {
	files, err := collectPNGs(opts.Source)
	if err != nil {
		return err
	}

	log.Printf("thinning %d files by %dpx", len(files), opts.Shrink)
	for _, path := range files {
		if err := thinFile(path, opts); err != nil {
			log.Printf("skipping %s: %v", path, err)
		}
	}
	return nil
}

func thinFile(path string, opts ThinOptions) error {
	buf, err := loadBuffer(path)
	if err != nil {
		return err
	}
	out := texture.ThinFrame(buf, opts.Shrink)

	if opts.OutDir != "" {
		if err := saveBuffer(out, filepath.Join(opts.OutDir, filepath.Base(path))); err != nil {
			return err
		}
	} else if err := overwriteInPlace(out, path); err != nil {
		return err
	}

	log.Printf("  thinned %s", filepath.Base(path))
	return nil
}

// logTile reports an output tile's dimensions and mean content color.
func logTile(name string, tile *texture.Buffer) {
	if hex, ok := texture.MeanContentColor(tile); ok {
		log.Printf("  wrote %s (%dx%d, mean %s)", name, tile.W, tile.H, hex)
	} else {
		log.Printf("  wrote %s (%dx%d)", name, tile.W, tile.H)
	}
}
