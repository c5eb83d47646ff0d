// Package exportx renders list views as CSV and archives them on a file system
package exportx

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
	"github.com/Abraxas-365/shiftboard/pkg/fsx"
)

// Column is one CSV column
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// WriteCSV writes a header row followed by one row per record
func WriteCSV[T any](w io.Writer, columns []Column[T], records []T) error {
	cw := csv.NewWriter(w)
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = col.Header
	}
	if err := cw.Write(row); err != nil {
		return errx.Wrap(err, "write csv header", errx.TypeInternal)
	}
	for _, rec := range records {
		for i, col := range columns {
			row[i] = neutralize(col.Value(rec))
		}
		if err := cw.Write(row); err != nil {
			return errx.Wrap(err, "write csv row", errx.TypeInternal)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errx.Wrap(err, "flush csv", errx.TypeInternal)
	}
	return nil
}

// neutralize prefixes cells a spreadsheet would evaluate as a formula
func neutralize(cell string) string {
	if cell == "" {
		return cell
	}
	switch cell[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + cell
	}
	return cell
}

// EncodeCSV is WriteCSV into memory
func EncodeCSV[T any](columns []Column[T], records []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, columns, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Archive keeps a copy of every export
type Archive struct {
	fs    fsx.FileSystem
	dir   string
	clock func() time.Time
}

func NewArchive(fs fsx.FileSystem, dir string) *Archive {
	return &Archive{fs: fs, dir: dir, clock: time.Now}
}

// Export is a generated file and where it was archived
type Export struct {
	FileName string
	Path     string
	Data     []byte
}

// Store writes data as <dir>/<entity>/<entity>-<timestamp>.csv
func (a *Archive) Store(ctx context.Context, entity string, data []byte) (*Export, error) {
	name := FileName(entity, a.clock())
	p := a.fs.Join(a.dir, entity, name)
	if err := a.fs.WriteFile(ctx, p, data); err != nil {
		return nil, err
	}
	return &Export{FileName: name, Path: p, Data: data}, nil
}

// FileName is the download name of an export created at t
func FileName(entity string, t time.Time) string {
	return fmt.Sprintf("%s-%s.csv", entity, t.UTC().Format("20060102T150405Z"))
}
