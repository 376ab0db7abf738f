package backtest

import "fmt"

// Position is one open holding. Quantity is always a positive lot multiple;
// AvgCost is the weighted average cost with buy commissions folded into the
// basis, so zero-commission round trips at a flat price realize exactly zero.
type Position struct {
	Symbol     string
	Quantity   int
	AvgCost    float64
	RealizedPL float64
	BuyDate    string // date of the flat->held opening buy
}

// Ledger owns the cash balance and the open positions of one backtest run.
// It is mutated only by the engine's single replay loop, so it needs no
// locking; never share one Ledger across concurrent runs.
type Ledger struct {
	cash      float64
	positions map[string]*Position
	lastPrice map[string]float64
}

func NewLedger(cash float64) *Ledger {
	return &Ledger{
		cash:      cash,
		positions: make(map[string]*Position),
		lastPrice: make(map[string]float64),
	}
}

func (l *Ledger) Cash() float64 {
	return l.cash
}

// Position returns a copy of the open position for symbol, if any.
func (l *Ledger) Position(symbol string) (Position, bool) {
	p, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// OpenPositions returns the number of symbols currently held.
func (l *Ledger) OpenPositions() int {
	return len(l.positions)
}

// ApplyBuy debits quantity*price+commission from cash and folds the lot into
// the weighted average cost. The caller must have verified affordability; a
// buy that would drive cash negative is a structural violation here.
func (l *Ledger) ApplyBuy(symbol, date string, quantity int, price, commission float64) (Trade, error) {
	if quantity <= 0 {
		return Trade{}, fmt.Errorf("buy %s: quantity must be positive, got %d", symbol, quantity)
	}
	amount := float64(quantity) * price
	cost := amount + commission
	if cost > l.cash {
		return Trade{}, fmt.Errorf("buy %s: cost %.2f exceeds cash %.2f", symbol, cost, l.cash)
	}

	p, ok := l.positions[symbol]
	if !ok {
		p = &Position{Symbol: symbol, BuyDate: date}
		l.positions[symbol] = p
	}
	basis := p.AvgCost*float64(p.Quantity) + amount + commission
	p.Quantity += quantity
	p.AvgCost = basis / float64(p.Quantity)

	l.cash -= cost
	l.lastPrice[symbol] = price

	return Trade{
		Symbol:     symbol,
		Date:       date,
		Action:     Buy,
		Quantity:   quantity,
		Price:      price,
		Amount:     amount,
		Commission: commission,
	}, nil
}

// ApplySell credits quantity*price-commission to cash and realizes
// quantity*(price-avgCost)-commission. Selling more than is held is a
// programming defect and fails loudly; the average cost never changes on a
// sell. The position entry is removed when quantity reaches zero.
func (l *Ledger) ApplySell(symbol, date string, quantity int, price, commission float64) (Trade, error) {
	if quantity <= 0 {
		return Trade{}, fmt.Errorf("sell %s: quantity must be positive, got %d", symbol, quantity)
	}
	p, ok := l.positions[symbol]
	if !ok {
		return Trade{}, fmt.Errorf("sell %s: no open position", symbol)
	}
	if quantity > p.Quantity {
		return Trade{}, fmt.Errorf("sell %s: requested %d exceeds held %d", symbol, quantity, p.Quantity)
	}

	amount := float64(quantity) * price
	p.RealizedPL += float64(quantity)*(price-p.AvgCost) - commission
	p.Quantity -= quantity
	if p.Quantity == 0 {
		delete(l.positions, symbol)
	}

	l.cash += amount - commission
	l.lastPrice[symbol] = price

	return Trade{
		Symbol:     symbol,
		Date:       date,
		Action:     Sell,
		Quantity:   quantity,
		Price:      price,
		Amount:     amount,
		Commission: commission,
	}, nil
}

// Valuate marks open positions to the given prices and returns cash plus
// stock value. A held symbol missing from prices is valued at its last known
// price (carry-forward); a data gap never forces a sell or an error. The
// carry-forward map is updated from prices so the policy stays consistent
// across the whole run.
func (l *Ledger) Valuate(prices map[string]float64) (total, stockValue float64) {
	for symbol, p := range l.positions {
		price, ok := prices[symbol]
		if !ok {
			price = l.lastPrice[symbol]
		} else {
			l.lastPrice[symbol] = price
		}
		stockValue += float64(p.Quantity) * price
	}
	return l.cash + stockValue, stockValue
}
