package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"stockbt/market"
)

// ImportFile loads daily bars from path into the store. Plain .csv files are
// read directly; .xz files are decompressed on the fly; .zip archives are
// extracted to a scratch directory and every .csv member is imported.
// Returns the number of bars written.
func (s *Store) ImportFile(path string) (int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return s.importCSV(path)
	case ".xz":
		return s.importXZ(path)
	case ".zip":
		return s.importZip(path)
	default:
		return 0, fmt.Errorf("unsupported data file %q (want .csv, .xz or .zip)", path)
	}
}

func (s *Store) importCSV(path string) (int, error) {
	bars, err := market.LoadCSV(path)
	if err != nil {
		return 0, err
	}
	if err := s.UpsertBars(bars); err != nil {
		return 0, err
	}
	return len(bars), nil
}

func (s *Store) importXZ(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return 0, fmt.Errorf("%s: open xz stream: %w", path, err)
	}
	bars, bad, err := market.ReadCSV(r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if len(bars) == 0 && bad > 0 {
		return 0, fmt.Errorf("%s: no parseable rows (%d bad)", path, bad)
	}
	if err := s.UpsertBars(bars); err != nil {
		return 0, err
	}
	return len(bars), nil
}

func (s *Store) importZip(path string) (int, error) {
	dir, err := os.MkdirTemp("", "stockbt-import-*")
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return 0, fmt.Errorf("%s: extract: %w", path, err)
	}

	total := 0
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.ToLower(filepath.Ext(p)) != ".csv" {
			return nil
		}
		n, err := s.importCSV(p)
		if err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		total += n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if total == 0 {
		return 0, fmt.Errorf("%s: archive contains no csv bars", path)
	}
	return total, nil
}
