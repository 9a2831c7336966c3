// Package loader reads spreadsheet sources (XLSX or CSV) into raw tables.
package loader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/soromap/soro-cli/internal/model"
)

// Options configures how a source file is read.
type Options struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
}

// Load reads the file at path into a RawTable. The first row is the header.
// A missing file yields a *model.NotFoundError; anything that cannot be decoded
// as a table yields a *model.ParseError.
func Load(path string, opts Options) (*model.RawTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &model.NotFoundError{Path: path, Err: err}
		}
		return nil, eris.Wrapf(err, "loader: stat %s", path)
	}
	if info.IsDir() {
		return nil, &model.ParseError{Path: path, Reason: "path is a directory"}
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		rows, err = ReadXLSX(path, opts)
	case ".csv":
		rows, err = ReadCSV(path)
	default:
		return nil, &model.ParseError{Path: path, Reason: "unsupported file extension " + ext}
	}
	if err != nil {
		return nil, err
	}

	rows = trimTrailingBlank(rows)
	if len(rows) == 0 {
		return nil, &model.ParseError{Path: path, Reason: "no header row"}
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	data := rows[1:]
	for i, row := range data {
		data[i] = padRow(row, len(header))
	}

	zap.L().Info("loader: loaded source",
		zap.String("path", path),
		zap.Int("rows", len(data)),
		zap.Int("columns", len(header)),
	)

	return &model.RawTable{Source: path, Header: header, Rows: data}, nil
}

// padRow extends short rows to width so every row indexes like the header.
func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func trimTrailingBlank(rows [][]string) [][]string {
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
