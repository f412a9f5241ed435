package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rofergon/Spirit-Criptogame/internal/texture"
)

// solidBuffer creates a w x h buffer filled with one RGBA value.
func solidBuffer(w, h int, r, g, b, a uint8) *texture.Buffer {
	buf := texture.NewBuffer(w, h)
	for i := 0; i < w*h; i++ {
		buf.Pix[i*4] = r
		buf.Pix[i*4+1] = g
		buf.Pix[i*4+2] = b
		buf.Pix[i*4+3] = a
	}
	return buf
}

// fillRect paints an opaque rectangle into buf.
func fillRect(buf *texture.Buffer, x0, y0, x1, y1 int, r, g, b uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := (y*buf.W + x) * 4
			buf.Pix[i] = r
			buf.Pix[i+1] = g
			buf.Pix[i+2] = b
			buf.Pix[i+3] = 255
		}
	}
}

// writeSheet saves a buffer as a PNG inside dir and returns its path.
func writeSheet(t *testing.T, dir, name string, buf *texture.Buffer) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := saveBuffer(buf, path); err != nil {
		t.Fatalf("failed to write test PNG: %v", err)
	}
	return path
}

func TestCollectPNGs_MissingSource(t *testing.T) {
	if _, err := collectPNGs(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected an error for a missing source")
	}
}

func TestCollectPNGs_DirectoryFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "a.png", solidBuffer(2, 2, 1, 1, 1, 255))
	writeSheet(t, dir, "b.PNG", solidBuffer(2, 2, 1, 1, 1, 255))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := collectPNGs(dir)
	if err != nil {
		t.Fatalf("collectPNGs failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("files: got %d, want 2 (PNGs only)", len(files))
	}
}

func TestExtract_WritesIndexedTiles(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	sheet := texture.NewBuffer(40, 40)
	fillRect(sheet, 4, 4, 10, 10, 200, 0, 0)   // top-left
	fillRect(sheet, 24, 4, 30, 10, 0, 200, 0)  // top-right
	fillRect(sheet, 4, 24, 10, 30, 0, 0, 200)  // bottom-left
	fillRect(sheet, 24, 24, 30, 30, 200, 200, 0)
	writeSheet(t, dir, "sheet.png", sheet)

	written, err := Extract(ExtractOptions{
		Source: filepath.Join(dir, "sheet.png"),
		OutDir: outDir,
		Prefix: "hex",
		Cols:   2,
		Rows:   2,
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(written) != 4 {
		t.Fatalf("written: got %d files, want 4", len(written))
	}

	for i := 1; i <= 4; i++ {
		path := filepath.Join(outDir, fmt.Sprintf("hex_sheet_%d.png", i))
		tile, err := loadBuffer(path)
		if err != nil {
			t.Fatalf("missing tile %d: %v", i, err)
		}
		if tile.W != 6 || tile.H != 6 {
			t.Errorf("tile %d: got %dx%d, want 6x6 (tight crop)", i, tile.W, tile.H)
		}
	}
}

func TestExtract_CleanChained(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	// Top-left quadrant: white matte around a dark core.
	sheet := texture.NewBuffer(20, 20)
	fillRect(sheet, 0, 0, 10, 10, 255, 255, 255)
	fillRect(sheet, 3, 3, 7, 7, 40, 40, 40)
	writeSheet(t, dir, "sheet.png", sheet)

	written, err := Extract(ExtractOptions{
		Source: filepath.Join(dir, "sheet.png"),
		OutDir: outDir,
		Prefix: "hex",
		Cols:   2,
		Rows:   2,
		Clean:  true,
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(written) != 1 {
		t.Fatalf("written: got %d files, want 1", len(written))
	}

	tile, err := loadBuffer(written[0])
	if err != nil {
		t.Fatal(err)
	}
	// 4x4 core plus the cleaner's 2px transparent padding.
	if tile.W != 8 || tile.H != 8 {
		t.Fatalf("cleaned tile: got %dx%d, want 8x8", tile.W, tile.H)
	}
	if tile.Alpha(0, 0) != 0 || tile.Alpha(7, 7) != 0 {
		t.Error("cleaned tile corners should be transparent")
	}
}

func TestClean_InPlaceWritesBackupFirst(t *testing.T) {
	dir := t.TempDir()
	tilePNG := solidBuffer(10, 10, 255, 255, 255, 255)
	fillRect(tilePNG, 3, 3, 7, 7, 60, 60, 60)
	path := writeSheet(t, dir, "tile.png", tilePNG)

	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := Clean(CleanOptions{
		Source:         path,
		WhiteThreshold: texture.DefaultWhiteThreshold,
		Tolerance:      texture.DefaultWhiteTolerance,
	}); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	backup, err := os.ReadFile(filepath.Join(dir, "tile_backup.png"))
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if !bytes.Equal(backup, original) {
		t.Error("backup does not match the original file")
	}

	cleaned, err := loadBuffer(path)
	if err != nil {
		t.Fatal(err)
	}
	if cleaned.W != 8 || cleaned.H != 8 {
		t.Errorf("cleaned file: got %dx%d, want 8x8", cleaned.W, cleaned.H)
	}
}

func TestClean_BackupNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	path := writeSheet(t, dir, "tile.png", solidBuffer(6, 6, 30, 30, 30, 255))
	backupPath := filepath.Join(dir, "tile_backup.png")

	if err := os.WriteFile(backupPath, []byte("earlier run"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Clean(CleanOptions{
		Source:         path,
		WhiteThreshold: texture.DefaultWhiteThreshold,
		Tolerance:      texture.DefaultWhiteTolerance,
	}); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "earlier run" {
		t.Error("an existing backup must not be overwritten")
	}
}

func TestThin_ToOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	path := writeSheet(t, dir, "frame.png", solidBuffer(8, 8, 120, 90, 40, 255))

	if err := Thin(ThinOptions{Source: path, OutDir: outDir, Shrink: 2}); err != nil {
		t.Fatalf("Thin failed: %v", err)
	}

	out, err := loadBuffer(filepath.Join(outDir, "frame.png"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if out.W != 8 || out.H != 8 {
		t.Errorf("thinned output: got %dx%d, want 8x8", out.W, out.H)
	}

	// Writing to a separate directory must not create a backup.
	if _, err := os.Stat(filepath.Join(dir, "frame_backup.png")); err == nil {
		t.Error("no backup should be written for non-destructive output")
	}
}

func TestExtract_ContinuesPastBadFiles(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	if err := os.WriteFile(filepath.Join(dir, "corrupt.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	sheet := texture.NewBuffer(20, 20)
	fillRect(sheet, 2, 2, 8, 8, 90, 90, 90)
	writeSheet(t, dir, "sheet.png", sheet)

	written, err := Extract(ExtractOptions{
		Source: dir,
		OutDir: outDir,
		Prefix: "hex",
		Cols:   2,
		Rows:   2,
	})
	if err != nil {
		t.Fatalf("batch should not fail on one bad file: %v", err)
	}
	if len(written) != 1 {
		t.Errorf("written: got %d files, want 1 from the good sheet", len(written))
	}
}
