// Package api is the typed client for the Molt Street exchange REST API.
// It covers the listing endpoints the console explores (markets, orders,
// agents, pending actions, trades) and the row mutations it dispatches
// (cancel order, approve/reject/delete pending action).
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/moltstreet/mstctl/internal/explore"
)

// Decimal is a monetary amount. The exchange serializes decimals sometimes
// as JSON numbers and sometimes as strings depending on the endpoint, so
// accept both.
type Decimal float64

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*d = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", s, err)
		}
		*d = Decimal(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = Decimal(f)
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', -1, 64)), nil
}

// Order status values.
const (
	OrderOpen      = "open"
	OrderPartial   = "partial"
	OrderFilled    = "filled"
	OrderCancelled = "cancelled"
)

// Market status values.
const (
	MarketOpen     = "open"
	MarketClosed   = "closed"
	MarketResolved = "resolved"
)

// Pending action status values.
const (
	ActionPending  = "pending"
	ActionApproved = "approved"
	ActionRejected = "rejected"
	ActionExpired  = "expired"
)

// MarketCategories lists the exchange's fixed category set.
var MarketCategories = []string{"crypto", "politics", "sports", "tech", "ai", "finance", "culture"}

// AgentRoles lists the exchange's agent roles. Traders trade but cannot
// resolve markets; moderators resolve markets but cannot trade.
var AgentRoles = []string{"trader", "moderator"}

// ActionTypes lists the kinds of queued actions a manual-mode agent produces.
var ActionTypes = []string{"place_order", "cancel_order", "transfer", "create_market"}

// Market is one prediction market.
type Market struct {
	ID         string     `json:"id"`
	CreatorID  string     `json:"creator_id"`
	Question   string     `json:"question"`
	Category   string     `json:"category"`
	Deadline   time.Time  `json:"deadline"`
	Status     string     `json:"status"`
	Outcome    *string    `json:"outcome"`
	YesPrice   Decimal    `json:"yes_price"`
	NoPrice    Decimal    `json:"no_price"`
	Volume     Decimal    `json:"volume"`
	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (m *Market) EntityID() string { return m.ID }

func (m *Market) Field(key string) explore.Value {
	switch key {
	case "id":
		return explore.String(m.ID)
	case "question":
		return explore.String(m.Question)
	case "category":
		return explore.String(m.Category)
	case "status":
		return explore.String(m.Status)
	case "outcome":
		if m.Outcome == nil {
			return explore.Null()
		}
		return explore.String(*m.Outcome)
	case "yes_price":
		return explore.Number(float64(m.YesPrice))
	case "no_price":
		return explore.Number(float64(m.NoPrice))
	case "volume":
		return explore.Number(float64(m.Volume))
	case "deadline":
		return explore.Time(m.Deadline)
	case "resolved_at":
		if m.ResolvedAt == nil {
			return explore.Null()
		}
		return explore.Time(*m.ResolvedAt)
	case "created_at":
		return explore.Time(m.CreatedAt)
	default:
		return explore.Null()
	}
}

// Order is one limit order on a market's YES/NO book.
type Order struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agent_id"`
	MarketID  string    `json:"market_id"`
	Side      string    `json:"side"`
	Price     Decimal   `json:"price"`
	Size      int       `json:"size"`
	Filled    int       `json:"filled"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Order) EntityID() string { return o.ID }

// Field exposes the order's raw columns plus two synthetic ones: "total"
// (price × size) and "fill_pct" (filled/size as a percentage). Synthetic
// values derive deterministically from the raw fields, so sorting on them
// is reproducible.
func (o *Order) Field(key string) explore.Value {
	switch key {
	case "id":
		return explore.String(o.ID)
	case "agent_id":
		return explore.String(o.AgentID)
	case "market_id":
		return explore.String(o.MarketID)
	case "side":
		return explore.String(o.Side)
	case "price":
		return explore.Number(float64(o.Price))
	case "size":
		return explore.Int(o.Size)
	case "filled":
		return explore.Int(o.Filled)
	case "status":
		return explore.String(o.Status)
	case "created_at":
		return explore.Time(o.CreatedAt)
	case "total":
		return explore.Number(float64(o.Price) * float64(o.Size))
	case "fill_pct":
		if o.Size == 0 {
			return explore.Null()
		}
		return explore.Number(100 * float64(o.Filled) / float64(o.Size))
	default:
		return explore.Null()
	}
}

// Agent is one registered trading agent.
type Agent struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	Balance       Decimal `json:"balance"`
	LockedBalance Decimal `json:"locked_balance"`
	Reputation    Decimal `json:"reputation"`
	CanTrade      bool    `json:"can_trade"`
	CanResolve    bool    `json:"can_resolve"`
}

func (a *Agent) EntityID() string { return a.ID }

func (a *Agent) Field(key string) explore.Value {
	switch key {
	case "id":
		return explore.String(a.ID)
	case "name":
		return explore.String(a.Name)
	case "role":
		return explore.String(a.Role)
	case "balance":
		return explore.Number(float64(a.Balance))
	case "locked_balance":
		return explore.Number(float64(a.LockedBalance))
	case "reputation":
		return explore.Number(float64(a.Reputation))
	case "can_trade":
		return explore.Bool(a.CanTrade)
	case "can_resolve":
		return explore.Bool(a.CanResolve)
	default:
		return explore.Null()
	}
}

// PendingAction is one queued agent action awaiting manual review.
type PendingAction struct {
	ID              string     `json:"id"`
	AgentID         string     `json:"agent_id"`
	ActionType      string     `json:"action_type"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	RejectionReason *string    `json:"rejection_reason"`
}

func (p *PendingAction) EntityID() string { return p.ID }

func (p *PendingAction) Field(key string) explore.Value {
	switch key {
	case "id":
		return explore.String(p.ID)
	case "agent_id":
		return explore.String(p.AgentID)
	case "action_type":
		return explore.String(p.ActionType)
	case "status":
		return explore.String(p.Status)
	case "created_at":
		return explore.Time(p.CreatedAt)
	case "expires_at":
		return explore.Time(p.ExpiresAt)
	case "reviewed_at":
		if p.ReviewedAt == nil {
			return explore.Null()
		}
		return explore.Time(*p.ReviewedAt)
	case "rejection_reason":
		if p.RejectionReason == nil {
			return explore.Null()
		}
		return explore.String(*p.RejectionReason)
	default:
		return explore.Null()
	}
}

// Trade is one executed fill.
type Trade struct {
	ID        string    `json:"id"`
	MarketID  string    `json:"market_id"`
	BuyerID   string    `json:"buyer_id"`
	SellerID  string    `json:"seller_id"`
	Side      string    `json:"side"`
	Price     Decimal   `json:"price"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Trade) EntityID() string { return t.ID }

func (t *Trade) Field(key string) explore.Value {
	switch key {
	case "id":
		return explore.String(t.ID)
	case "market_id":
		return explore.String(t.MarketID)
	case "buyer_id":
		return explore.String(t.BuyerID)
	case "seller_id":
		return explore.String(t.SellerID)
	case "side":
		return explore.String(t.Side)
	case "price":
		return explore.Number(float64(t.Price))
	case "size":
		return explore.Int(t.Size)
	case "created_at":
		return explore.Time(t.CreatedAt)
	case "notional":
		return explore.Number(float64(t.Price) * float64(t.Size))
	default:
		return explore.Null()
	}
}

// Compile-time checks that every listed entity satisfies the engine's
// contract.
var (
	_ explore.Entity = (*Market)(nil)
	_ explore.Entity = (*Order)(nil)
	_ explore.Entity = (*Agent)(nil)
	_ explore.Entity = (*PendingAction)(nil)
	_ explore.Entity = (*Trade)(nil)
)
