package store

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbt/market"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bars.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testBars() []market.Bar {
	return []market.Bar{
		{Symbol: "000001.SZ", Date: "20240102", Open: 10.0, High: 10.3, Low: 9.9, Close: 10.2, Volume: 1000},
		{Symbol: "000001.SZ", Date: "20240103", Open: 10.2, High: 10.5, Low: 10.1, Close: 10.4, Volume: 1100},
		{Symbol: "600519.SH", Date: "20240102", Open: 1700, High: 1720, Low: 1690, Close: 1710, Volume: 300},
	}
}

func TestUpsertAndQueryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertBars(testBars()))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	bars, err := s.Bars(nil, "20240101", "20241231")
	require.NoError(t, err)
	require.Len(t, bars, 3)
	// Ordered by date then symbol.
	assert.Equal(t, "000001.SZ", bars[0].Symbol)
	assert.Equal(t, "600519.SH", bars[1].Symbol)
	assert.Equal(t, "20240103", bars[2].Date)
	assert.InDelta(t, 10.2, bars[0].Close, 1e-9)

	symbols, err := s.Symbols()
	require.NoError(t, err)
	assert.Equal(t, []string{"000001.SZ", "600519.SH"}, symbols)
}

func TestUpsertReplacesExistingRows(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertBars(testBars()))

	revised := []market.Bar{
		{Symbol: "000001.SZ", Date: "20240102", Open: 10.0, High: 10.3, Low: 9.9, Close: 99.0},
	}
	require.NoError(t, s.UpsertBars(revised))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n, "replace, not duplicate")

	bars, err := s.Bars([]string{"000001.SZ"}, "20240102", "20240102")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.InDelta(t, 99.0, bars[0].Close, 1e-9)
}

func TestBarsFiltersSymbolsAndRange(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertBars(testBars()))

	bars, err := s.Bars([]string{"600519.SH"}, "20240101", "20241231")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, "600519.SH", bars[0].Symbol)

	bars, err = s.Bars(nil, "20240103", "20240103")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, "20240103", bars[0].Date)

	bars, err = s.Bars(nil, "20250101", "20251231")
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestBarSetGroupsForReplay(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertBars(testBars()))

	set, err := s.BarSet(nil, "20240101", "20241231")
	require.NoError(t, err)
	assert.Equal(t, []string{"20240102", "20240103"}, set.Dates())
	assert.Len(t, set.ForDate("20240102"), 2)
}

const importCSV = `symbol,trade_date,open,high,low,close,pre_close,vol,amount,pct_chg
000001.SZ,20240102,10.00,10.25,9.98,10.20,10.00,1000,10200,2.0
000001.SZ,20240103,10.20,10.45,10.05,10.40,10.20,1100,11440,1.96
`

func TestImportCSVFile(t *testing.T) {
	s := openTestStore(t)
	path := filepath.Join(t.TempDir(), "daily.csv")
	require.NoError(t, os.WriteFile(path, []byte(importCSV), 0o644))

	n, err := s.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestImportZipArchive(t *testing.T) {
	s := openTestStore(t)

	path := filepath.Join(t.TempDir(), "daily.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("daily.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte(importCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	n, err := s.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestImportRejectsUnknownExtension(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ImportFile("daily.parquet")
	assert.Error(t, err)
}
