package cli

import (
	"fmt"
	"time"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/explore"
	"github.com/moltstreet/mstctl/internal/util"
)

// Cell formatters. Formatting is display-only; sorting always reads the raw
// field value.

func fmtShortID(v explore.Value) string {
	if v.IsNull() {
		return "-"
	}
	return util.ShortID(v.Str())
}

func fmtPrice(v explore.Value) string {
	if v.IsNull() {
		return "-"
	}
	return fmt.Sprintf("%.2f", v.Num())
}

func fmtPct(v explore.Value) string {
	if v.IsNull() {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", v.Num())
}

func fmtTime(v explore.Value) string {
	if v.IsNull() {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, v.Str())
	if err != nil {
		return v.Str()
	}
	return util.RelativeTimeShort(t)
}

func options(values ...string) []explore.Option {
	opts := make([]explore.Option, len(values))
	for i, v := range values {
		opts[i] = explore.Option{Value: v, Label: v}
	}
	return opts
}

func marketSchema(pageSize int) explore.Schema {
	return explore.Schema{
		Title: "Markets",
		Columns: []explore.Column{
			{Key: "id", Title: "ID", Width: 9, Format: fmtShortID},
			{Key: "question", Title: "Question", Sortable: true, Width: 44},
			{Key: "category", Title: "Category", Sortable: true},
			{Key: "status", Title: "Status", Sortable: true},
			{Key: "yes_price", Title: "Yes", Sortable: true, Format: fmtPrice},
			{Key: "no_price", Title: "No", Sortable: true, Format: fmtPrice},
			{Key: "volume", Title: "Volume", Sortable: true, Format: fmtPrice},
			{Key: "deadline", Title: "Deadline", Sortable: true, Format: fmtTime},
			{Key: "created_at", Title: "Created", Sortable: true, Format: fmtTime},
		},
		Facets: []explore.Facet{
			{Key: "status", Title: "Status", Options: options(api.MarketOpen, api.MarketClosed, api.MarketResolved)},
			{Key: "category", Title: "Category", Options: options(api.MarketCategories...)},
		},
		SearchKeys:  []string{"id", "question", "category"},
		DefaultSort: explore.Sort{Key: "created_at", Direction: explore.Descending},
		PageSize:    pageSize,
	}
}

func orderSchema(pageSize int) explore.Schema {
	return explore.Schema{
		Title: "Orders",
		Columns: []explore.Column{
			{Key: "id", Title: "ID", Width: 9, Format: fmtShortID},
			{Key: "market_id", Title: "Market", Width: 9, Format: fmtShortID},
			{Key: "side", Title: "Side", Sortable: true},
			{Key: "price", Title: "Price", Sortable: true, Format: fmtPrice},
			{Key: "size", Title: "Size", Sortable: true},
			{Key: "filled", Title: "Filled", Sortable: true},
			{Key: "fill_pct", Title: "Fill%", Sortable: true, Format: fmtPct},
			{Key: "total", Title: "Total", Sortable: true, Format: fmtPrice},
			{Key: "status", Title: "Status", Sortable: true},
			{Key: "created_at", Title: "Created", Sortable: true, Format: fmtTime},
		},
		Facets: []explore.Facet{
			{Key: "status", Title: "Status", Options: options(api.OrderOpen, api.OrderPartial, api.OrderFilled, api.OrderCancelled)},
			{Key: "side", Title: "Side", Options: options("YES", "NO")},
		},
		SearchKeys:  []string{"id", "market_id", "side"},
		DefaultSort: explore.Sort{Key: "created_at", Direction: explore.Descending},
		PageSize:    pageSize,
	}
}

func agentSchema(pageSize int) explore.Schema {
	return explore.Schema{
		Title: "Agents",
		Columns: []explore.Column{
			{Key: "id", Title: "ID", Width: 9, Format: fmtShortID},
			{Key: "name", Title: "Name", Sortable: true, Width: 24},
			{Key: "role", Title: "Role", Sortable: true},
			{Key: "balance", Title: "Balance", Sortable: true, Format: fmtPrice},
			{Key: "locked_balance", Title: "Locked", Sortable: true, Format: fmtPrice},
			{Key: "reputation", Title: "Rep", Sortable: true, Format: fmtPrice},
			{Key: "can_trade", Title: "Trades"},
		},
		Facets: []explore.Facet{
			{Key: "role", Title: "Role", Options: options(api.AgentRoles...)},
		},
		SearchKeys:  []string{"id", "name", "role"},
		DefaultSort: explore.Sort{Key: "name", Direction: explore.Ascending},
		PageSize:    pageSize,
	}
}

func actionSchema(pageSize int) explore.Schema {
	return explore.Schema{
		Title: "Pending actions",
		Columns: []explore.Column{
			{Key: "id", Title: "ID", Width: 9, Format: fmtShortID},
			{Key: "agent_id", Title: "Agent", Width: 9, Format: fmtShortID},
			{Key: "action_type", Title: "Type", Sortable: true},
			{Key: "status", Title: "Status", Sortable: true},
			{Key: "created_at", Title: "Created", Sortable: true, Format: fmtTime},
			{Key: "expires_at", Title: "Expires", Sortable: true, Format: fmtTime},
			{Key: "rejection_reason", Title: "Reason", Width: 24},
		},
		Facets: []explore.Facet{
			{Key: "status", Title: "Status", Options: options(api.ActionPending, api.ActionApproved, api.ActionRejected, api.ActionExpired)},
			{Key: "action_type", Title: "Type", Options: options(api.ActionTypes...)},
		},
		SearchKeys:  []string{"id", "agent_id", "action_type", "rejection_reason"},
		DefaultSort: explore.Sort{Key: "created_at", Direction: explore.Descending},
		PageSize:    pageSize,
	}
}

func tradeSchema(pageSize int) explore.Schema {
	return explore.Schema{
		Title: "Trades",
		Columns: []explore.Column{
			{Key: "id", Title: "ID", Width: 9, Format: fmtShortID},
			{Key: "market_id", Title: "Market", Width: 9, Format: fmtShortID},
			{Key: "buyer_id", Title: "Buyer", Width: 9, Format: fmtShortID},
			{Key: "seller_id", Title: "Seller", Width: 9, Format: fmtShortID},
			{Key: "side", Title: "Side", Sortable: true},
			{Key: "price", Title: "Price", Sortable: true, Format: fmtPrice},
			{Key: "size", Title: "Size", Sortable: true},
			{Key: "notional", Title: "Notional", Sortable: true, Format: fmtPrice},
			{Key: "created_at", Title: "Created", Sortable: true, Format: fmtTime},
		},
		Facets: []explore.Facet{
			{Key: "side", Title: "Side", Options: options("YES", "NO")},
		},
		SearchKeys:  []string{"id", "market_id", "buyer_id", "seller_id"},
		DefaultSort: explore.Sort{Key: "created_at", Direction: explore.Descending},
		PageSize:    pageSize,
	}
}
