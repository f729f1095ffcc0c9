// Package strategy is the HTTP client for the external predictive module.
//
// The client never returns an error: every failure (transport, status,
// body) becomes a domain.Decision of kind NoDecision carrying a reason,
// and the caller falls back to its deterministic rule.
package strategy

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 1 << 20

// Fixed profile values sent with the category contract; the advisor does not
// track these attributes.
const (
	defaultCreditScore   = 700
	defaultTenure        = 5
	defaultNumProducts   = 2
	defaultHasCreditCard = 1
	defaultIsActive      = 1
	defaultSatisfaction  = 5
)

// Config configures the predictive module endpoints
type Config struct {
	ProductsURL string
	CategoryURL string
	Timeout     time.Duration
}

// Client calls the predictive module
type Client struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a new predictive module client
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("client", "strategy").Logger(),
	}
}

// spendingHabits is nested in the products request
type spendingHabits struct {
	InvestmentRatio float64 `json:"investment_ratio"`
}

// productsRequest is the body sent with the products contract
type productsRequest struct {
	SpendingHabits spendingHabits `json:"spending_habits"`
	RiskLevel      string         `json:"risk_level"`
	UserID         int64          `json:"user_id"`
	Balance        float64        `json:"balance"`
	MonthlyIncome  float64        `json:"monthly_income"`
}

// productSuggestion is one entry of the products response.
// Confidence and reason are accepted but unused.
type productSuggestion struct {
	ProductName string   `json:"product_name"`
	Reason      string   `json:"reason,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// categoryRequest is the body sent with the category contract
type categoryRequest struct {
	CreditScore  int     `json:"credit_score"`
	Age          int     `json:"age"`
	Tenure       int     `json:"tenure"`
	Balance      float64 `json:"balance"`
	NumProducts  int     `json:"num_products"`
	HasCrCard    int     `json:"has_crcard"`
	IsActive     int     `json:"is_active"`
	Salary       float64 `json:"salary"`
	Satisfaction int     `json:"satisfaction"`
}

// categoryResponse is the body returned for the category contract
type categoryResponse struct {
	Prediction *string `json:"prediction"`
}

func buildProductsRequest(req domain.StrategyRequest) productsRequest {
	return productsRequest{
		UserID:         req.User.ID,
		SpendingHabits: spendingHabits{InvestmentRatio: req.InvestmentRatio},
		RiskLevel:      string(req.User.RiskProfile),
		Balance:        req.User.Balance,
		MonthlyIncome:  req.User.MonthlyIncome,
	}
}

func buildCategoryRequest(req domain.StrategyRequest) categoryRequest {
	return categoryRequest{
		CreditScore:  defaultCreditScore,
		Age:          req.User.Age,
		Tenure:       defaultTenure,
		Balance:      req.User.Balance,
		NumProducts:  defaultNumProducts,
		HasCrCard:    defaultHasCreditCard,
		IsActive:     defaultIsActive,
		Salary:       req.User.MonthlyIncome * 12,
		Satisfaction: defaultSatisfaction,
	}
}

// Suggest performs exactly one call to the predictive module for req.Contract
func (c *Client) Suggest(ctx context.Context, req domain.StrategyRequest) domain.Decision {
	start := time.Now()

	var decision domain.Decision
	switch req.Contract {
	case domain.ContractCategory:
		decision = c.suggestCategory(ctx, req)
	default:
		req.Contract = domain.ContractProducts
		decision = c.suggestProducts(ctx, req)
	}

	metrics.RecordStrategyCall(string(req.Contract), decision.Reason, time.Since(start))
	return decision
}

func (c *Client) suggestProducts(ctx context.Context, req domain.StrategyRequest) domain.Decision {
	body, reason := c.post(ctx, req, c.cfg.ProductsURL, buildProductsRequest(req))
	if reason != "" {
		return domain.Undecided(reason)
	}

	var suggestions []productSuggestion
	if err := json.Unmarshal(body, &suggestions); err != nil {
		c.log.Warn().Err(err).Str("request_id", req.RequestID).Msg("Malformed product suggestions")
		return domain.Undecided(domain.ReasonMalformed)
	}
	if len(suggestions) == 0 {
		c.log.Info().Str("request_id", req.RequestID).Msg("Predictive module returned no suggestions")
		return domain.Undecided(domain.ReasonEmpty)
	}

	names := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if name := strings.TrimSpace(s.ProductName); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		c.log.Warn().Str("request_id", req.RequestID).Msg("Product suggestions carried no product names")
		return domain.Undecided(domain.ReasonMalformed)
	}

	c.log.Debug().
		Str("request_id", req.RequestID).
		Strs("products", names).
		Msg("Received product suggestions")
	return domain.Named(names)
}

func (c *Client) suggestCategory(ctx context.Context, req domain.StrategyRequest) domain.Decision {
	body, reason := c.post(ctx, req, c.cfg.CategoryURL, buildCategoryRequest(req))
	if reason != "" {
		return domain.Undecided(reason)
	}

	var resp categoryResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Prediction == nil {
		c.log.Warn().Err(err).Str("request_id", req.RequestID).Msg("Malformed category prediction")
		return domain.Undecided(domain.ReasonMalformed)
	}

	raw := strings.TrimSpace(*resp.Prediction)
	if raw == "" {
		return domain.Undecided(domain.ReasonEmpty)
	}

	productType, ok := domain.ParseProductType(raw)
	if !ok {
		c.log.Warn().
			Str("request_id", req.RequestID).
			Str("prediction", raw).
			Msg("Prediction names an unknown product type")
		return domain.Undecided(domain.ReasonMalformed)
	}

	c.log.Debug().
		Str("request_id", req.RequestID).
		Str("prediction", string(productType)).
		Msg("Received category prediction")
	return domain.Category(productType)
}

// post sends payload and returns the response body, or a NoDecision reason
func (c *Client) post(ctx context.Context, req domain.StrategyRequest, url string, payload interface{}) ([]byte, string) {
	log := c.log.With().
		Str("request_id", req.RequestID).
		Str("contract", string(req.Contract)).
		Int64("user_id", req.User.ID).
		Logger()

	encoded, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode strategy request")
		return nil, domain.ReasonMalformed
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Failed to build strategy request")
		return nil, domain.ReasonUnavailable
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.RequestID != "" {
		httpReq.Header.Set("X-Request-ID", req.RequestID)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("Predictive module unavailable")
		return nil, domain.ReasonUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		log.Warn().Int("status", resp.StatusCode).Msg("Predictive module returned error status")
		return nil, domain.ReasonBadStatus
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read predictive module response")
		return nil, domain.ReasonUnavailable
	}
	if len(body) > maxResponseBytes {
		log.Warn().Int("limit_bytes", maxResponseBytes).Msg("Predictive module response too large")
		return nil, domain.ReasonMalformed
	}

	return body, ""
}
