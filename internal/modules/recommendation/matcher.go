package recommendation

import "github.com/aristath/advisor/internal/domain"

// MaxTypeMatches caps recommendations resolved from a product type
const MaxTypeMatches = 3

// MatchByNames returns the catalog entries whose name was suggested, in
// catalog order. Suggested names absent from the catalog are ignored and
// the result is not capped.
func MatchByNames(catalog []domain.FinancialProduct, names []string) []domain.FinancialProduct {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	matched := make([]domain.FinancialProduct, 0, len(names))
	for _, p := range catalog {
		if _, ok := wanted[p.Name]; ok {
			matched = append(matched, p)
		}
	}
	return matched
}

// MatchByType returns the first MaxTypeMatches catalog entries of type t
func MatchByType(catalog []domain.FinancialProduct, t domain.ProductType) []domain.FinancialProduct {
	matched := make([]domain.FinancialProduct, 0, MaxTypeMatches)
	for _, p := range catalog {
		if p.Type != t {
			continue
		}
		matched = append(matched, p)
		if len(matched) == MaxTypeMatches {
			break
		}
	}
	return matched
}

// Match resolves a named or category decision against the catalog
func Match(catalog []domain.FinancialProduct, d domain.Decision) []domain.FinancialProduct {
	switch d.Kind {
	case domain.NamedSuggestions:
		return MatchByNames(catalog, d.Names)
	case domain.CategorySuggestion:
		return MatchByType(catalog, d.Category)
	default:
		return []domain.FinancialProduct{}
	}
}
