package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSV column layout for daily bars:
//
//	symbol,trade_date,open,high,low,close,pre_close,vol,amount,pct_chg
//
// The first six columns are required, the rest optional. A header row is
// detected and skipped automatically.

// ReadCSV parses daily bars from r. Rows that fail to parse are skipped and
// counted; the count is returned so callers can decide whether the file is
// worth keeping.
func ReadCSV(r io.Reader) (bars []Bar, badRows int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, badRows, fmt.Errorf("read csv: %w", err)
		}

		b, ok := parseRow(rec)
		if !ok {
			// The header row lands here too.
			if !first {
				badRows++
			}
			first = false
			continue
		}
		first = false
		bars = append(bars, b)
	}
	return bars, badRows, nil
}

// LoadCSV reads daily bars from a file on disk.
func LoadCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bars, bad, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(bars) == 0 && bad > 0 {
		return nil, fmt.Errorf("%s: no parseable rows (%d bad)", path, bad)
	}
	return bars, nil
}

func parseRow(rec []string) (Bar, bool) {
	if len(rec) < 6 {
		return Bar{}, false
	}

	b := Bar{Symbol: rec[0], Date: rec[1]}
	if b.Symbol == "" || len(b.Date) != len(DateLayout) {
		return Bar{}, false
	}
	if _, err := ParseDate(b.Date); err != nil {
		return Bar{}, false
	}

	fields := []*float64{&b.Open, &b.High, &b.Low, &b.Close, &b.PreClose, &b.Volume, &b.Amount, &b.PctChg}
	for i, dst := range fields {
		col := i + 2
		if col >= len(rec) {
			break
		}
		if rec[col] == "" {
			continue
		}
		v, err := strconv.ParseFloat(rec[col], 64)
		if err != nil {
			// Required OHLC columns must parse; trailing columns may not.
			if col < 6 {
				return Bar{}, false
			}
			continue
		}
		*dst = v
	}
	return b, true
}
