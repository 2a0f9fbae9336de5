package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paws4pals/inventory/internal/inventory"
	"github.com/paws4pals/inventory/internal/model"
)

// CategoryStock is the on-hand stock and its value at cost for a category.
type CategoryStock struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Value decimal.Decimal `json:"value"`
}

// Categories reports stock and value per category in metadata order.
func Categories(items []model.Item, meta inventory.Resolver) []CategoryStock {
	categories := meta.List(model.KindCategory)
	out := make([]CategoryStock, len(categories))
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		out[i] = CategoryStock{ID: c.ID, Name: c.Name, Value: decimal.Zero}
		index[c.ID] = i
	}
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			continue
		}
		out[i].Stock += item.Quantity
		out[i].Value = out[i].Value.Add(item.StockValue())
	}
	return out
}

// MonthlyMovement sums stock movements in a calendar month. Negative is the
// total sold as a negative number.
type MonthlyMovement struct {
	Month    string `json:"month"`
	Label    string `json:"label"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Net      int    `json:"net"`
}

// Monthly reports movements for the last n calendar months ending with the
// month containing now, oldest first.
func Monthly(movements []model.Movement, now time.Time, n int) []MonthlyMovement {
	starts := monthStarts(now, n)
	out := make([]MonthlyMovement, len(starts))
	for i, start := range starts {
		out[i] = MonthlyMovement{Month: start.Format("2006-01"), Label: start.Format("Jan")}
	}
	for _, m := range movements {
		i := monthIndex(starts, m.At)
		if i < 0 {
			continue
		}
		if m.Kind == model.MovementSold {
			out[i].Negative -= m.Amount
		} else {
			out[i].Positive += m.Amount
		}
		out[i].Net += m.Delta()
	}
	return out
}

// MonthlyTurnover is units sold in a month divided by the average of the
// opening and closing stock.
type MonthlyTurnover struct {
	Month        string          `json:"month"`
	Label        string          `json:"label"`
	Sold         int             `json:"sold"`
	AverageStock decimal.Decimal `json:"average_stock"`
	Rate         decimal.Decimal `json:"rate"`
}

// Turnover reports the turnover rate for the last n calendar months. Opening
// and closing stock are reconstructed by rolling the current total stock back
// through the recorded movements.
func Turnover(items []model.Item, movements []model.Movement, now time.Time, n int) []MonthlyTurnover {
	current := 0
	for _, item := range items {
		current += item.Quantity
	}

	starts := monthStarts(now, n)
	out := make([]MonthlyTurnover, len(starts))
	for i, start := range starts {
		end := start.AddDate(0, 1, 0)
		opening := current - deltaSince(movements, start)
		closing := current - deltaSince(movements, end)

		sold := 0
		for _, m := range movements {
			if m.Kind == model.MovementSold && !m.At.Before(start) && m.At.Before(end) {
				sold += m.Amount
			}
		}

		avg := decimal.NewFromInt(int64(opening + closing)).Div(decimal.NewFromInt(2))
		rate := decimal.Zero
		if avg.IsPositive() {
			rate = decimal.NewFromInt(int64(sold)).DivRound(avg, 2)
		}
		out[i] = MonthlyTurnover{
			Month:        start.Format("2006-01"),
			Label:        start.Format("Jan"),
			Sold:         sold,
			AverageStock: avg,
			Rate:         rate,
		}
	}
	return out
}

func deltaSince(movements []model.Movement, t time.Time) int {
	d := 0
	for _, m := range movements {
		if !m.At.Before(t) {
			d += m.Delta()
		}
	}
	return d
}

// monthStarts returns the first instant of each of the last n months in UTC,
// oldest first.
func monthStarts(now time.Time, n int) []time.Time {
	if n < 1 {
		n = 1
	}
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	starts := make([]time.Time, n)
	for i := range starts {
		starts[i] = current.AddDate(0, i-n+1, 0)
	}
	return starts
}

func monthIndex(starts []time.Time, t time.Time) int {
	t = t.UTC()
	for i := len(starts) - 1; i >= 0; i-- {
		if !t.Before(starts[i]) {
			if t.Before(starts[i].AddDate(0, 1, 0)) {
				return i
			}
			return -1
		}
	}
	return -1
}
