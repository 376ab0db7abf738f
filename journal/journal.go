// Package journal records backtest runs, their trade logs and their daily
// valuations, for later comparison across strategies and parameter sets.
package journal

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"stockbt/backtest"
)

// Run mirrors the backtest_runs table: one row per completed run.
type Run struct {
	RunID    string
	Created  time.Time
	Strategy string

	StartDate string
	EndDate   string

	InitialCash float64
	FinalValue  float64

	TotalReturn      float64
	AnnualizedReturn float64
	MaxDrawdown      float64
	Volatility       float64
	SharpeRatio      float64

	Trades         int
	WinRate        float64
	AvgHoldingDays float64
	TradingDays    int
}

// NewRun builds a Run row from a backtest summary, stamping a fresh run ID.
func NewRun(s backtest.Summary) Run {
	return Run{
		RunID:            NewRunID(),
		Created:          time.Now().UTC(),
		Strategy:         s.StrategyName,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		InitialCash:      s.InitialCash,
		FinalValue:       s.FinalValue,
		TotalReturn:      s.TotalReturn,
		AnnualizedReturn: s.AnnualizedReturn,
		MaxDrawdown:      s.MaxDrawdown,
		Volatility:       s.Volatility,
		SharpeRatio:      s.SharpeRatio,
		Trades:           s.TotalTrades,
		WinRate:          s.WinRate,
		AvgHoldingDays:   s.AvgHoldingDays,
		TradingDays:      s.TradingDays,
	}
}

// Journal persists one run with its full logs.
type Journal interface {
	RecordRun(run Run, trades []backtest.Trade, valuations []backtest.DailyValuation) error
	Close() error
}

var (
	mu   sync.Mutex
	mono io.Reader
)

func init() {
	// Seed a PRNG from crypto/rand so ULID entropy is unpredictable; the
	// monotonic reader keeps same-millisecond IDs lexicographically sorted.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewRunID returns a ULID string, time-sortable so run listings come back in
// execution order.
func NewRunID() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), mono)
	if err != nil {
		panic(err)
	}
	return id.String()
}
