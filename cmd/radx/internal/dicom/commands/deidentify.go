package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/codeninja55/go-radx/cmd/radx/internal/config"
	"github.com/codeninja55/go-radx/cmd/radx/internal/dicom/ui"
	deidconfig "github.com/codeninja55/go-radx/deidentify/config"
	deidlabels "github.com/codeninja55/go-radx/deidentify/labels"
	"github.com/codeninja55/go-radx/deidentify/mapping"
	"github.com/codeninja55/go-radx/deidentify/pipeline"
	"github.com/codeninja55/go-radx/deidentify/query"
	"github.com/codeninja55/go-radx/dicom"
)

// DeidentifyCmd batch-runs the de-identification engine over a set of
// DICOM files against a JSON rule document, writing de-identified
// copies into a destination directory and reusing replacement values
// across files via a shared mapping store.
type DeidentifyCmd struct {
	Paths     []string `arg:"" optional:"" type:"existingfile" help:"DICOM files to de-identify" group:"Input"`
	Dir       string   `name:"dir" type:"existingdir" help:"Directory containing DICOM files" group:"Input" xor:"Input"`
	Recursive bool     `name:"recursive" short:"R" help:"Recursively search directories"`

	Rules   string `name:"rules" required:"" type:"existingfile" help:"Path to the de-identification rule document (JSON)"`
	DestDir string `name:"dest" required:"" help:"Directory de-identified files are written into"`

	MappingDB string `name:"mapping-db" help:"SQLite DSN for the mapping store (in-memory if omitted)"`

	RateLimit float64 `name:"rate-limit" default:"0" help:"Instances/second to process (0 = unlimited)"`
	BurstSize int     `name:"burst" default:"10" help:"Burst size for rate limiting"`
}

// Run executes the de-identify command.
func (c *DeidentifyCmd) Run(cfg *config.GlobalConfig) error {
	ui.PrintBanner()

	logger := log.Default()
	logger.Info("Starting DICOM de-identification")

	ruleDoc, err := c.loadRules()
	if err != nil {
		return fmt.Errorf("failed to load rule document: %w", err)
	}

	store, closeStore, err := c.openMappingStore()
	if err != nil {
		return fmt.Errorf("failed to open mapping store: %w", err)
	}
	defer closeStore()

	files, err := c.collectFiles(logger)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Warn("No DICOM files found")
		return nil
	}
	logger.Info("Found DICOM files", "count", len(files))

	if err := createOutputDirectory(c.DestDir); err != nil {
		return err
	}

	var limiter *rate.Limiter
	if c.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.RateLimit), c.BurstSize)
		logger.Info("Rate limiting enabled", "instances_per_sec", c.RateLimit, "burst", c.BurstSize)
	}

	ctx := context.Background()
	progress := ui.NewProgressBar(len(files), "De-identifying")
	var forwarded, skipped, failed atomic.Uint32
	startTime := time.Now()

	for _, file := range files {
		progress.Increment(fmt.Sprintf("Processing %s", file.Name))

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				logger.Error("Rate limiter error", "error", err)
				failed.Add(1)
				continue
			}
		}

		switch outcome, err := c.processOne(ctx, file, ruleDoc, store); {
		case err != nil:
			logger.Error("De-identification failed", "file", file.Path, "error", err)
			failed.Add(1)
		case outcome == outcomeSkipped:
			logger.Debug("Instance excluded by ScopeToForward", "file", file.Path)
			skipped.Add(1)
		default:
			forwarded.Add(1)
		}
	}

	progress.Complete("Complete")
	elapsed := time.Since(startTime)

	fmt.Println()
	if failed.Load() == 0 {
		fmt.Println(ui.SuccessStyle.Render("✓ De-identification complete"))
	} else {
		fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("⚠ De-identification completed with %d failures", failed.Load())))
	}
	fmt.Println()
	fmt.Printf("  %s %s\n", ui.SubtleStyle.Render("Total Files:"), ui.InfoStyle.Render(fmt.Sprintf("%d", len(files))))
	fmt.Printf("  %s %s\n", ui.SubtleStyle.Render("Forwarded:"), ui.SuccessStyle.Render(fmt.Sprintf("%d", forwarded.Load())))
	fmt.Printf("  %s %s\n", ui.SubtleStyle.Render("Skipped:"), ui.InfoStyle.Render(fmt.Sprintf("%d", skipped.Load())))
	if failed.Load() > 0 {
		fmt.Printf("  %s %s\n", ui.SubtleStyle.Render("Failed:"), ui.ErrorStyle.Render(fmt.Sprintf("%d", failed.Load())))
	}
	fmt.Printf("  %s %s\n", ui.SubtleStyle.Render("Duration:"), ui.InfoStyle.Render(elapsed.Round(time.Millisecond).String()))
	fmt.Println()

	logger.Info("De-identification complete",
		"total", len(files), "forwarded", forwarded.Load(), "skipped", skipped.Load(), "failed", failed.Load(), "elapsed", elapsed)

	if failed.Load() > 0 {
		return fmt.Errorf("de-identification completed with %d failures", failed.Load())
	}
	return nil
}

type deidentifyOutcome int

const (
	outcomeForwarded deidentifyOutcome = iota
	outcomeSkipped
)

// processOne runs one instance through label evaluation and the
// transformation pipeline, driving the transcode/OCR round-trips the
// pipeline itself never performs. Transcoding into a decoded transfer
// syntax and OCR box discovery are both out of scope for this engine
// (see DESIGN.md), so a ResultNeedsTranscode response is reported back
// to the caller as a failure rather than silently applied, and an
// OCR-type RemoveBurnedInAnnotations entry runs with no discovered
// boxes beyond whatever Manual boxes the rule document also supplies.
func (c *DeidentifyCmd) processOne(ctx context.Context, file DICOMFile, cfg *deidconfig.Config, store mapping.Store) (deidentifyOutcome, error) {
	ds, err := dicom.ParseFile(file.Path)
	if err != nil {
		return outcomeForwarded, fmt.Errorf("failed to parse DICOM file: %w", err)
	}

	doc := query.BuildDocument(ds)
	result := deidlabels.Evaluate(cfg, doc)
	if result.Skipped {
		return outcomeSkipped, nil
	}

	p := pipeline.New(ds, result.Ops, store)
	for {
		res := p.Run(ctx)
		switch res.Kind {
		case pipeline.ResultNeedsTranscode:
			return outcomeForwarded, fmt.Errorf("instance in transfer syntax %s requires transcoding to uncompressed little-endian before pixel edits; transcoding is not implemented by this command", res.CurrentSyntax)
		case pipeline.ResultNeedsOCR:
			p.AddBoxCoordinates(nil)
		case pipeline.ResultDone:
			outPath := filepath.Join(c.DestDir, file.Name)
			if err := dicom.WriteFile(outPath, ds); err != nil {
				return outcomeForwarded, fmt.Errorf("failed to write de-identified file: %w", err)
			}
			return outcomeForwarded, nil
		case pipeline.ResultFailed:
			return outcomeForwarded, res.Err
		}
	}
}

func (c *DeidentifyCmd) loadRules() (*deidconfig.Config, error) {
	data, err := os.ReadFile(c.Rules)
	if err != nil {
		return nil, err
	}
	var cfg deidconfig.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed rule document: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rule document: %w", err)
	}
	return &cfg, nil
}

func (c *DeidentifyCmd) openMappingStore() (mapping.Store, func(), error) {
	if c.MappingDB == "" {
		return mapping.NewMemoryStore(), func() {}, nil
	}
	store, err := mapping.OpenSQLiteStore(c.MappingDB, "")
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func (c *DeidentifyCmd) collectFiles(logger *log.Logger) ([]DICOMFile, error) {
	if c.Dir != "" {
		logger.Debug("Scanning directory", "path", c.Dir, "recursive", c.Recursive)
		return listDicomFiles(c.Dir, c.Recursive)
	}
	if len(c.Paths) == 0 {
		return nil, fmt.Errorf("no input files specified (use paths or --dir)")
	}
	files := make([]DICOMFile, 0, len(c.Paths))
	for _, path := range c.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
		}
		files = append(files, DICOMFile{Path: path, Name: filepath.Base(path), Size: info.Size()})
	}
	return files, nil
}
