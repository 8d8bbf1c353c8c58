package productivity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/islandepoch/islandepoch-go/internal/domain/resource"
)

var hundred = decimal.NewFromInt(100)

// ActualAmount scales base by productivity and rounds half away from zero,
// so 0.5 x 3 gives 2 and 0.5 x 1 gives 1.
func ActualAmount(base int, productivity float64) int {
	scaled := decimal.NewFromInt(int64(base)).Mul(decimal.NewFromFloat(productivity))
	return int(scaled.Round(0).IntPart())
}

// Scale applies ActualAmount to every entry of amounts
func Scale(amounts map[resource.Kind]int, productivity float64) map[resource.Kind]int {
	out := make(map[resource.Kind]int, len(amounts))
	for k, q := range amounts {
		out[k] = ActualAmount(q, productivity)
	}
	return out
}

// Percent renders productivity as a whole percentage, e.g. "67%" for two of three workers.
// Ties round to even as printf's %.0f does.
func Percent(productivity float64) string {
	return fmt.Sprintf("%d%%", decimal.NewFromFloat(productivity).Mul(hundred).RoundBank(0).IntPart())
}
