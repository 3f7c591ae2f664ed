// Package commands implements the leaf subcommands under `radx dicom`.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexeyco/simpletable"
	"github.com/codeninja55/go-radx/cmd/radx/internal/config"
	"github.com/codeninja55/go-radx/dicom"
)

// DICOMFile is one input file discovered on disk, before it is parsed.
type DICOMFile struct {
	Path string
	Name string
	Size int64
}

// DICOMTag is one rendered element row, shared by every command that
// prints a dataset's contents.
type DICOMTag struct {
	File  string
	Tag   string
	VR    string
	Name  string
	Value string
}

// listDicomFiles walks dir collecting candidate DICOM files. With
// recursive set it descends into subdirectories; otherwise it only reads
// dir's immediate entries.
func listDicomFiles(dir string, recursive bool) ([]DICOMFile, error) {
	var files []DICOMFile

	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, DICOMFile{Path: path, Name: d.Name(), Size: info.Size()})
		return nil
	}

	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return files, nil
}

// validateDicomFile confirms path parses as a DICOM data set before a
// command commits to processing it. Parsing twice (here and again in the
// caller) is wasted work the teacher's own dump command already accepted
// in exchange for a clean error message per file.
func validateDicomFile(path string) error {
	if _, err := dicom.ParseFile(path); err != nil {
		return fmt.Errorf("not a valid DICOM file: %w", err)
	}
	return nil
}

// createOutputDirectory ensures dir exists, creating parents as needed.
func createOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// RenderOutput writes tags to w as a table or as JSON, per format.
func RenderOutput(tags []DICOMTag, format config.Format, w io.Writer) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tags)
	case config.FormatTable, "":
		return renderTable(tags, w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(tags []DICOMTag, w io.Writer) error {
	showFile := false
	for _, t := range tags {
		if t.File != "" {
			showFile = true
			break
		}
	}

	header := []*simpletable.Cell{
		{Align: simpletable.AlignCenter, Text: "Tag"},
		{Align: simpletable.AlignCenter, Text: "VR"},
		{Align: simpletable.AlignCenter, Text: "Name"},
		{Align: simpletable.AlignCenter, Text: "Value"},
	}
	if showFile {
		header = append([]*simpletable.Cell{{Align: simpletable.AlignCenter, Text: "File"}}, header...)
	}

	table := simpletable.New()
	table.Header = &simpletable.Header{Cells: header}

	for _, t := range tags {
		row := []*simpletable.Cell{
			{Text: t.Tag},
			{Text: t.VR},
			{Text: t.Name},
			{Text: truncate(t.Value, 80)},
		}
		if showFile {
			row = append([]*simpletable.Cell{{Text: t.File}}, row...)
		}
		table.Body.Cells = append(table.Body.Cells, row)
	}

	table.SetStyle(simpletable.StyleDefault)
	_, err := fmt.Fprintln(w, table.String())
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
