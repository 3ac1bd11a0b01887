// Command dxfparse parses a DXF drawing into normalized contours.
//
// It is the composition root: hardware probing, logging setup and flag
// handling live here, not in the library. The accelerated backend is
// enabled by the blank import below; -mode accelerated silently falls back
// to cpu if that import is ever dropped.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	dxfview "github.com/Paullovitt/dxf-3d-viewer"
	_ "github.com/Paullovitt/dxf-3d-viewer/numeric/batch"
	"github.com/Paullovitt/dxf-3d-viewer/preview"
)

func main() {
	var (
		in       = flag.String("in", "", "input DXF file")
		mode     = flag.String("mode", "cpu", "execution mode: cpu or accelerated")
		out      = flag.String("out", "-", `result JSON path, "-" for stdout`)
		pngPath  = flag.String("png", "", "optional preview PNG path")
		cacheDir = flag.String("cache-dir", "", "disk cache directory (default .cache/parsed)")
		verbose  = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		dxfview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *in == "" {
		log.Fatal("missing -in file")
	}
	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	cfg := dxfview.ConfigFromEnv()
	cfg.TotalRAMBytes = totalRAM()
	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}

	parser, err := dxfview.New(cfg)
	if err != nil {
		log.Fatalf("create parser: %v", err)
	}
	defer parser.Close()

	res, err := parser.Parse(context.Background(), data, dxfview.ParseMode(*mode))
	if err != nil {
		log.Fatalf("parse %s: %v", *in, err)
	}

	if err := writeResult(*out, res, parser.Stats()); err != nil {
		log.Fatalf("write result: %v", err)
	}
	if *pngPath != "" {
		if err := writePreview(*pngPath, res.Drawing); err != nil {
			log.Fatalf("write preview: %v", err)
		}
	}
}

// writeResult emits the parse outcome and parser stats as one JSON object.
func writeResult(path string, res *dxfview.Result, stats dxfview.Stats) error {
	payload := struct {
		Result *dxfview.Result `json:"result"`
		Stats  dxfview.Stats   `json:"stats"`
	}{res, stats}

	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(raw)
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func writePreview(path string, d *dxfview.Drawing) error {
	img := preview.Render(d, preview.Options{})
	if img == nil {
		return fmt.Errorf("drawing is not renderable")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := preview.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
