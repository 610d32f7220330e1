// Package importer handles bulk CSV imports. The backend creates rows
// independently and keeps going past bad ones, so a single malformed line
// never aborts an import; the client mirrors that with a local preflight
// that predicts how many rows will be skipped.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/camaragestao/gestao/internal/api"
	"github.com/camaragestao/gestao/internal/logging"
)

// Kind selects the import target.
type Kind string

const (
	// KindAssets imports inventory rows: Hostname, Type, Serial, AssetTag,
	// Location, Status.
	KindAssets Kind = "assets"
	// KindUsers imports account rows: Username, Password, Role.
	KindUsers Kind = "users"
)

// minColumns is the column count below which a row is skipped, per kind.
var minColumns = map[Kind]int{
	KindAssets: 6,
	KindUsers:  3,
}

// ErrEmptyFile is returned when the CSV has no data rows after the header.
var ErrEmptyFile = errors.New("csv has no data rows")

// Report is the preflight summary: how many data rows the file carries and
// how many of them the server will skip for having too few columns.
type Report struct {
	Rows      int
	Malformed int
}

// Preflight parses the CSV the way the server will: the first line is
// dropped as a header and short rows count as malformed instead of
// aborting the run.
func Preflight(kind Kind, r io.Reader) (*Report, error) {
	min, ok := minColumns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown import kind %q", kind)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	report := &Report{Rows: len(records)}
	for _, record := range records {
		if len(record) < min {
			report.Malformed++
		}
	}
	return report, nil
}

// Uploader is the slice of the API client the importer needs.
type Uploader interface {
	ImportAssets(ctx context.Context, filename string, file io.Reader) (*api.ImportResult, error)
	ImportUsers(ctx context.Context, filename string, file io.Reader) (*api.ImportResult, error)
}

// Importer preflights and uploads CSV files.
type Importer struct {
	api Uploader
	log *logging.Logger
}

// New creates an Importer.
func New(uploader Uploader, log *logging.Logger) *Importer {
	if log == nil {
		log = logging.Nop()
	}
	return &Importer{api: uploader, log: log}
}

// Run imports the file at path. The preflight runs first so an unreadable
// or empty file is caught before any upload; the server's own counts are
// what the caller reports to the user.
func (i *Importer) Run(ctx context.Context, kind Kind, path string) (*api.ImportResult, *Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read csv: %w", err)
	}

	report, err := Preflight(kind, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	if report.Malformed > 0 {
		i.log.Warn("csv rows will be skipped", "kind", string(kind),
			"rows", report.Rows, "malformed", report.Malformed)
	}

	filename := filepath.Base(path)
	var result *api.ImportResult
	switch kind {
	case KindAssets:
		result, err = i.api.ImportAssets(ctx, filename, bytes.NewReader(data))
	case KindUsers:
		result, err = i.api.ImportUsers(ctx, filename, bytes.NewReader(data))
	default:
		return nil, nil, fmt.Errorf("unknown import kind %q", kind)
	}
	if err != nil {
		return nil, report, err
	}

	i.log.Info("import finished", "kind", string(kind),
		"success", result.Success, "errors", result.Errors)
	return result, report, nil
}
