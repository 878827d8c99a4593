// Command slice-series reads a slicing request as JSON, normalises and slices
// it into per-series records and writes them back out as JSON. It can also
// draw the records as a PNG or an HTML preview.
//
// Usage:
//
//	slice-series -input request.json -output series.json -html preview.html
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/seriesprep/internal/config"
	"github.com/banshee-data/seriesprep/internal/fsutil"
	"github.com/banshee-data/seriesprep/internal/jsoninput"
	"github.com/banshee-data/seriesprep/internal/monitoring"
	"github.com/banshee-data/seriesprep/internal/render"
	"github.com/banshee-data/seriesprep/internal/version"
	"github.com/banshee-data/seriesprep/series"
	"github.com/google/uuid"
)

// Config holds the command line options.
type Config struct {
	ConfigFile  string
	Input       string
	Output      string
	HTML        string
	PNG         string
	Title       string
	Quiet       bool
	ShowVersion bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(version.String("slice-series"))
		return
	}
	if err := run(cfg, fsutil.OSFileSystem{}, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("slice-series: %v", err)
	}
}

func parseFlags(args []string, stderr io.Writer) (Config, error) {
	cfg := Config{}
	fs := flag.NewFlagSet("slice-series", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to a slicing config JSON file (defaults built in)")
	fs.StringVar(&cfg.Input, "input", "-", "Request JSON file, or - for stdin")
	fs.StringVar(&cfg.Output, "output", "-", "Output JSON file, or - for stdout")
	fs.StringVar(&cfg.HTML, "html", "", "Write an HTML preview to this file")
	fs.StringVar(&cfg.PNG, "png", "", "Write a PNG plot to this file")
	fs.StringVar(&cfg.Title, "title", "series", "Title for the preview and plot")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress diagnostic logging")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadConfig(fsys fsutil.FileSystem, path string) (*config.SlicingConfig, error) {
	if path == "" {
		return config.EmptySlicingConfig(), nil
	}
	return config.ReadSlicingConfig(fsys.ReadFile, path)
}

// run executes one slicing request. Files named by cfg are accessed through
// fsys; "-" selects stdin or stdout.
func run(cfg Config, fsys fsutil.FileSystem, stdin io.Reader, stdout io.Writer) error {
	sc, err := loadConfig(fsys, cfg.ConfigFile)
	if err != nil {
		return err
	}
	if cfg.Quiet || !sc.GetLogLossyConversions() {
		defer monitoring.SetLogger(nil)()
	}

	in := stdin
	if cfg.Input != "-" {
		f, err := fsys.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	req, err := jsoninput.DecodeRequest(in)
	if err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	var out series.SeriesList
	if err := series.NewSlicer(sc.Options()).Slice(&out, req.X, req.Y, req.Z, req.Attributes); err != nil {
		return fmt.Errorf("slice: %w", err)
	}
	recs := out.Records()

	runID := uuid.New().String()
	monitoring.Logf("run %s: %d series", runID, len(recs))

	doc := RunOutput{RunID: runID, Version: version.Version, Series: encodeRecords(recs)}
	if err := writeOutput(fsys, cfg.Output, stdout, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if cfg.HTML != "" {
		if err := writeOutput(fsys, cfg.HTML, stdout, func(w io.Writer) error {
			return render.Preview(w, cfg.Title, recs)
		}); err != nil {
			return err
		}
	}
	if cfg.PNG != "" {
		if err := writeOutput(fsys, cfg.PNG, stdout, func(w io.Writer) error {
			return render.WritePNG(w, cfg.Title, recs)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput runs write against path, or stdout when path is "-".
func writeOutput(fsys fsutil.FileSystem, path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
