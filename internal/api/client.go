package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MaxLimit is the largest limit the exchange accepts on list endpoints; a
// larger value is rejected with a validation error. DefaultLimit asks for the
// maximum, since everything finer-grained (search, facets, pagination)
// happens client-side.
const (
	MaxLimit     = 100
	DefaultLimit = MaxLimit
)

// Client talks to the Molt Street exchange API. All requests carry the
// configured API key as a bearer token.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// New creates a client. timeout bounds each individual request.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", u, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// errorDetail extracts the server's {"detail": ...} message. Detail may be a
// string or a structured validation list; fall back to the raw body.
func errorDetail(data []byte) string {
	var wrapper struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Detail) > 0 {
		var s string
		if err := json.Unmarshal(wrapper.Detail, &s); err == nil {
			return s
		}
		return string(wrapper.Detail)
	}
	return strings.TrimSpace(string(data))
}

// MarketFilter is the coarse server-side filter for listing markets.
type MarketFilter struct {
	Status   string
	Category string
	Limit    int
}

// ListMarkets fetches markets, newest first.
func (c *Client) ListMarkets(ctx context.Context, f MarketFilter) ([]*Market, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	q.Set("limit", strconv.Itoa(limitOrDefault(f.Limit)))

	var markets []*Market
	if err := c.do(ctx, http.MethodGet, "/markets", q, nil, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// OrderFilter is the coarse server-side filter for listing orders. AgentID
// is required by the exchange.
type OrderFilter struct {
	AgentID  string
	Status   string
	MarketID string
	Limit    int
}

// ListOrders fetches an agent's orders, newest first.
func (c *Client) ListOrders(ctx context.Context, f OrderFilter) ([]*Order, error) {
	q := url.Values{}
	q.Set("agent_id", f.AgentID)
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.MarketID != "" {
		q.Set("market_id", f.MarketID)
	}
	q.Set("limit", strconv.Itoa(limitOrDefault(f.Limit)))

	var orders []*Order
	if err := c.do(ctx, http.MethodGet, "/orders", q, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AgentFilter is the coarse server-side filter for listing agents.
type AgentFilter struct {
	Role  string
	Limit int
}

// ListAgents fetches registered agents.
func (c *Client) ListAgents(ctx context.Context, f AgentFilter) ([]*Agent, error) {
	q := url.Values{}
	if f.Role != "" {
		q.Set("role", f.Role)
	}
	q.Set("limit", strconv.Itoa(limitOrDefault(f.Limit)))

	var agents []*Agent
	if err := c.do(ctx, http.MethodGet, "/agents", q, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// ActionFilter is the coarse server-side filter for listing pending actions.
type ActionFilter struct {
	AgentID    string
	Status     string
	ActionType string
	Limit      int
}

// actionList mirrors the exchange's pending-action list envelope.
type actionList struct {
	Actions      []*PendingAction `json:"actions"`
	Total        int              `json:"total"`
	PendingCount int              `json:"pending_count"`
}

// ListPendingActions fetches an agent's queued actions, newest first.
func (c *Client) ListPendingActions(ctx context.Context, f ActionFilter) ([]*PendingAction, error) {
	q := url.Values{}
	q.Set("agent_id", f.AgentID)
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.ActionType != "" {
		q.Set("action_type", f.ActionType)
	}
	q.Set("limit", strconv.Itoa(limitOrDefault(f.Limit)))

	var list actionList
	if err := c.do(ctx, http.MethodGet, "/pending-actions", q, nil, &list); err != nil {
		return nil, err
	}
	return list.Actions, nil
}

// TradeFilter is the coarse server-side filter for listing trades.
type TradeFilter struct {
	MarketID string
	Limit    int
}

// ListTrades fetches executed trades, newest first.
func (c *Client) ListTrades(ctx context.Context, f TradeFilter) ([]*Trade, error) {
	q := url.Values{}
	if f.MarketID != "" {
		q.Set("market_id", f.MarketID)
	}
	q.Set("limit", strconv.Itoa(limitOrDefault(f.Limit)))

	var trades []*Trade
	if err := c.do(ctx, http.MethodGet, "/trades", q, nil, &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// ownerQuery builds the agent_id query the exchange requires on every
// mutation for ownership verification.
func ownerQuery(agentID string) url.Values {
	q := url.Values{}
	q.Set("agent_id", agentID)
	return q
}

// CancelOrder cancels an open or partially filled order owned by the agent
// and refunds the locked balance.
func (c *Client) CancelOrder(ctx context.Context, agentID, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+orderID, ownerQuery(agentID), nil, nil)
}

// ApproveAction approves one of the agent's pending actions, executing it.
func (c *Client) ApproveAction(ctx context.Context, agentID, actionID string) error {
	return c.do(ctx, http.MethodPost, "/pending-actions/"+actionID+"/approve", ownerQuery(agentID), struct{}{}, nil)
}

// RejectAction rejects one of the agent's pending actions with an optional
// reason.
func (c *Client) RejectAction(ctx context.Context, agentID, actionID, reason string) error {
	body := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}
	return c.do(ctx, http.MethodPost, "/pending-actions/"+actionID+"/reject", ownerQuery(agentID), body, nil)
}

// DeleteAction removes one of the agent's pending actions from the queue
// without executing it.
func (c *Client) DeleteAction(ctx context.Context, agentID, actionID string) error {
	return c.do(ctx, http.MethodDelete, "/pending-actions/"+actionID, ownerQuery(agentID), nil, nil)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
