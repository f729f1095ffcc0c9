package domain

// StrategyContract selects which response shape is requested from the predictive module
type StrategyContract string

const (
	// ContractProducts asks for a list of product names
	ContractProducts StrategyContract = "products"
	// ContractCategory asks for a single product type
	ContractCategory StrategyContract = "category"
)

// ParseStrategyContract validates a contract name
func ParseStrategyContract(s string) (StrategyContract, bool) {
	switch StrategyContract(s) {
	case ContractProducts, ContractCategory:
		return StrategyContract(s), true
	}
	return "", false
}

// StrategyRequest is what the engine hands to the strategy client
type StrategyRequest struct {
	RequestID       string
	Contract        StrategyContract
	User            User
	InvestmentRatio float64
}

// DecisionKind tags a Decision
type DecisionKind int

const (
	// NoDecision means the predictive module gave nothing usable
	NoDecision DecisionKind = iota
	// NamedSuggestions carries explicit product names
	NamedSuggestions
	// CategorySuggestion carries a single product type
	CategorySuggestion
)

func (k DecisionKind) String() string {
	switch k {
	case NamedSuggestions:
		return "named_suggestions"
	case CategorySuggestion:
		return "category_suggestion"
	default:
		return "no_decision"
	}
}

// Decision reasons reported with NoDecision
const (
	ReasonUnavailable = "unavailable"
	ReasonBadStatus   = "bad_status"
	ReasonMalformed   = "malformed"
	ReasonEmpty       = "empty"
)

// Decision is the strategy client's answer: exactly one of Names or Category
// is meaningful, selected by Kind. Reason is set only for NoDecision.
type Decision struct {
	Names    []string
	Category ProductType
	Reason   string
	Kind     DecisionKind
}

// Named builds a NamedSuggestions decision
func Named(names []string) Decision {
	return Decision{Kind: NamedSuggestions, Names: names}
}

// Category builds a CategorySuggestion decision
func Category(t ProductType) Decision {
	return Decision{Kind: CategorySuggestion, Category: t}
}

// Undecided builds a NoDecision with the given reason
func Undecided(reason string) Decision {
	return Decision{Kind: NoDecision, Reason: reason}
}
