package market

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `symbol,trade_date,open,high,low,close,pre_close,vol,amount,pct_chg
000001.SZ,20240102,10.00,10.25,9.98,10.20,10.00,123456,1259251.2,2.0
000001.SZ,20240103,10.20,10.45,10.05,10.40,10.20,98765,1027156.0,1.96
600519.SH,20240102,1700.00,1720.00,1690.00,1710.00,1695.00,3456,5909760.0,0.88
`

func TestReadCSVSkipsHeader(t *testing.T) {
	bars, bad, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Zero(t, bad)
	require.Len(t, bars, 3)

	b := bars[0]
	assert.Equal(t, "000001.SZ", b.Symbol)
	assert.Equal(t, "20240102", b.Date)
	assert.InDelta(t, 10.00, b.Open, 1e-9)
	assert.InDelta(t, 10.20, b.Close, 1e-9)
	assert.InDelta(t, 10.00, b.PreClose, 1e-9)
	assert.InDelta(t, 123456.0, b.Volume, 1e-9)
	assert.InDelta(t, 2.0, b.PctChg, 1e-9)
}

func TestReadCSVCountsBadRows(t *testing.T) {
	in := "000001.SZ,20240102,10,10.2,9.9,10.1,10,100,1000,1\n" +
		"000001.SZ,not-a-date,10,10.2,9.9,10.1\n" + // bad date
		"000001.SZ,20240103,x,10.2,9.9,10.1\n" + // unparseable open
		"000001.SZ,20240104\n" // too few columns
	bars, bad, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, bars, 1)
	assert.Equal(t, 3, bad)
}

func TestReadCSVOptionalTrailingColumns(t *testing.T) {
	in := "000001.SZ,20240102,10,10.2,9.9,10.1\n"
	bars, bad, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Zero(t, bad)
	require.Len(t, bars, 1)
	assert.Zero(t, bars[0].Volume)
	assert.Zero(t, bars[0].PreClose)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	bars, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, bars, 3)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoadCSVRejectsAllBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\nc,d\ne,f\n"), 0o644))

	_, err := LoadCSV(path)
	assert.Error(t, err)
}
