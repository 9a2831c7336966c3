// Package report renders the EDA artifacts: JSON datasets and the Markdown
// report. Nothing here recomputes a value; it only formats.
package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// EncodeJSON returns v as 2-space indented JSON with a trailing newline.
// HTML characters are not escaped.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, eris.Wrap(err, "report: encode json")
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes v with EncodeJSON and writes it to dir/name, creating
// dir if needed.
func WriteJSON(dir, name string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	return WriteFile(dir, name, data)
}

// WriteFile writes data to dir/name, creating dir if needed.
func WriteFile(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "report: create dir %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "report: write %s", path)
	}
	zap.L().Info("report: saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
