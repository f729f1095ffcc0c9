package recommendation

import (
	"github.com/aristath/advisor/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// InvestmentRatio returns the share of transaction volume categorized as
// investment. It is 0 when the total volume is not positive, and lies in
// [0, 1] for non-negative amounts.
func InvestmentRatio(txs []domain.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}

	amounts := make([]float64, len(txs))
	invested := make([]float64, 0, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Amount
		if tx.IsInvestment() {
			invested = append(invested, tx.Amount)
		}
	}

	total := floats.Sum(amounts)
	if total <= 0 {
		return 0
	}

	return floats.Sum(invested) / total
}
