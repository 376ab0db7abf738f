package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockbt/market"
)

// soldiersFixture is 5 quiet baseline bars followed by a textbook
// three-soldiers pattern with strong volume.
func soldiersFixture(symbol string) []market.Bar {
	bars := make([]market.Bar, 0, red3Lookback)
	for i := 0; i < 5; i++ {
		bars = append(bars, market.Bar{
			Symbol: symbol, Date: testDate(i),
			Open: 10.0, High: 10.1, Low: 9.9, Close: 10.0, Volume: 1000,
		})
	}
	bars = append(bars,
		market.Bar{Symbol: symbol, Date: testDate(5),
			Open: 10.00, High: 10.25, Low: 9.98, Close: 10.20, Volume: 900},
		market.Bar{Symbol: symbol, Date: testDate(6),
			Open: 10.10, High: 10.45, Low: 10.05, Close: 10.40, Volume: 950},
		market.Bar{Symbol: symbol, Date: testDate(7),
			Open: 10.30, High: 10.65, Low: 10.25, Close: 10.60, Volume: 980},
	)
	return bars
}

func feedBars(s Strategy, bars []market.Bar) {
	for _, b := range bars {
		s.OnBar(b)
	}
}

func TestRedThreeSoldiersBuysTextbookPattern(t *testing.T) {
	s := NewRedThreeSoldiers(DefaultConfig())
	bars := soldiersFixture("000001.SZ")
	feedBars(s, bars)

	last := bars[len(bars)-1]
	assert.True(t, s.ShouldBuy("000001.SZ", last))
}

func TestRedThreeSoldiersNeedsFullHistory(t *testing.T) {
	s := NewRedThreeSoldiers(DefaultConfig())
	bars := soldiersFixture("000001.SZ")
	feedBars(s, bars[:red3Lookback-1])

	assert.False(t, s.ShouldBuy("000001.SZ", bars[red3Lookback-2]))
}

func TestRedThreeSoldiersRejectsWeakVolume(t *testing.T) {
	s := NewRedThreeSoldiers(DefaultConfig())
	bars := soldiersFixture("000001.SZ")
	// Middle pattern day trades at half the busiest baseline day: rejected.
	bars[6].Volume = 500
	feedBars(s, bars)

	assert.False(t, s.ShouldBuy("000001.SZ", bars[len(bars)-1]))
}

func TestRedThreeSoldiersRejectsNonMainBoard(t *testing.T) {
	s := NewRedThreeSoldiers(DefaultConfig())
	bars := soldiersFixture("300750.SZ")
	feedBars(s, bars)

	assert.False(t, s.ShouldBuy("300750.SZ", bars[len(bars)-1]))
}

func TestIsRedThreeSoldiersGeometry(t *testing.T) {
	good := soldiersFixture("000001.SZ")[5:]
	assert.True(t, isRedThreeSoldiers(good))

	down := soldiersFixture("000001.SZ")[5:]
	down[2].Close = down[2].Open - 0.01
	assert.False(t, isRedThreeSoldiers(down), "third day closes down")

	gapped := soldiersFixture("000001.SZ")[5:]
	gapped[1].Open = gapped[0].Close + 0.05
	assert.False(t, isRedThreeSoldiers(gapped), "second open gaps above the first body")

	fading := soldiersFixture("000001.SZ")[5:]
	fading[2].Close = fading[1].Close - 0.01
	fading[2].Open = fading[1].Open + 0.01
	assert.False(t, isRedThreeSoldiers(fading), "closes not strictly rising")

	wicky := soldiersFixture("000001.SZ")[5:]
	wicky[0].High = wicky[0].Close + 1.0
	assert.False(t, isRedThreeSoldiers(wicky), "body under half the range")

	assert.False(t, isRedThreeSoldiers(good[:2]))
}

func TestRedThreeSoldiersSellsNextDay(t *testing.T) {
	s := NewRedThreeSoldiers(DefaultConfig())
	h := Holding{Symbol: "000001.SZ", BuyDate: "20240108"}

	assert.False(t, s.ShouldSell("000001.SZ", market.Bar{Date: "20240108"}, h))
	assert.True(t, s.ShouldSell("000001.SZ", market.Bar{Date: "20240109"}, h))
	assert.False(t, s.ShouldSell("000001.SZ", market.Bar{Date: "20240109"}, Holding{}))
}

func TestIsMainBoard(t *testing.T) {
	assert.True(t, IsMainBoard("000001.SZ"))
	assert.True(t, IsMainBoard("600519.SH"))
	assert.True(t, IsMainBoard("601988.SH"))
	assert.True(t, IsMainBoard("603288.SH"))
	assert.False(t, IsMainBoard("300750.SZ"), "ChiNext")
	assert.False(t, IsMainBoard("688001.SH"), "STAR market")
	assert.False(t, IsMainBoard("000001"))
	assert.False(t, IsMainBoard("00001.SZ"))
}
