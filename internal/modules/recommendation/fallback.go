package recommendation

import (
	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/metrics"
)

// Fallback thresholds. Both comparisons are strict.
const (
	InvestmentRatioThreshold = 0.2
	BalanceThreshold         = 5000.0
)

// Fallback picks a product type when the predictive module gives nothing usable
type Fallback interface {
	Resolve(user domain.User, ratio float64) domain.ProductType
	// Source is the metrics label recorded when this fallback decides
	Source() string
}

// RatioFallback recommends investments to users whose investment ratio exceeds 0.2
type RatioFallback struct{}

// Resolve implements Fallback
func (RatioFallback) Resolve(_ domain.User, ratio float64) domain.ProductType {
	if ratio > InvestmentRatioThreshold {
		return domain.ProductTypeInvestment
	}
	return domain.ProductTypeSavings
}

// Source implements Fallback
func (RatioFallback) Source() string { return metrics.SourceFallbackRatio }

// BalanceFallback recommends investments to users whose balance exceeds 5000
type BalanceFallback struct{}

// Resolve implements Fallback
func (BalanceFallback) Resolve(user domain.User, _ float64) domain.ProductType {
	if user.Balance > BalanceThreshold {
		return domain.ProductTypeInvestment
	}
	return domain.ProductTypeSavings
}

// Source implements Fallback
func (BalanceFallback) Source() string { return metrics.SourceFallbackBalance }

// FallbackFor returns the fallback paired with a contract
func FallbackFor(contract domain.StrategyContract) Fallback {
	if contract == domain.ContractCategory {
		return BalanceFallback{}
	}
	return RatioFallback{}
}
