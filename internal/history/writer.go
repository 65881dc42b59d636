package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Append writes rec as one row at the end of the history file at path,
// creating the file, its directory and the header as needed.
func Append(path string, rec Record) error {
	if rec.ISO == "" {
		return fmt.Errorf("appending to %s: record has no %s", path, ColumnISO)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	needHeader := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		needHeader = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // Published data file.
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}

	w := csv.NewWriter(f)
	if needHeader {
		if err = w.Write(Columns()); err != nil {
			_ = f.Close()
			return fmt.Errorf("writing history header: %w", err)
		}
	}
	if err = w.Write(FormatRow(rec)); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing history row: %w", err)
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing history file: %w", err)
	}
	return f.Close()
}

// FormatRow renders rec in Columns order, the way the producer writes it.
func FormatRow(rec Record) []string {
	index := ""
	if v, ok := rec.IndexValue(); ok {
		index = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return []string{
		rec.ISO,
		rec.Local,
		strconv.FormatInt(rec.Total, 10),
		strconv.FormatInt(rec.Basket, 10),
		strconv.FormatFloat(rec.Sum, 'f', 2, 64),
		strconv.FormatFloat(rec.Pop10, 'f', -1, 64),
		index,
	}
}
