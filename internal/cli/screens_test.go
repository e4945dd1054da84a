package cli

import (
	"testing"
	"time"

	"github.com/moltstreet/mstctl/internal/api"
	"github.com/moltstreet/mstctl/internal/explore"
)

// Every schema key must resolve on its entity: a column or search key that
// the entity's Field method does not know silently renders "-" and never
// sorts, which is exactly the bug this test exists to catch.
func TestSchemas_KeysResolveOnEntities(t *testing.T) {
	now := time.Now().UTC()

	cases := []struct {
		name   string
		schema explore.Schema
		entity explore.Entity
	}{
		{
			name:   "markets",
			schema: marketSchema(10),
			entity: &api.Market{
				ID: "m1", Question: "q", Category: "crypto", Status: api.MarketOpen,
				YesPrice: 0.5, NoPrice: 0.5, Volume: 10,
				Deadline: now, CreatedAt: now,
			},
		},
		{
			name:   "orders",
			schema: orderSchema(10),
			entity: &api.Order{
				ID: "o1", AgentID: "a1", MarketID: "m1", Side: "YES",
				Price: 0.4, Size: 10, Filled: 5, Status: api.OrderOpen, CreatedAt: now,
			},
		},
		{
			name:   "agents",
			schema: agentSchema(10),
			entity: &api.Agent{
				ID: "a1", Name: "bot", Role: "trader",
				Balance: 100, LockedBalance: 5, Reputation: 1, CanTrade: true,
			},
		},
		{
			name:   "actions",
			schema: actionSchema(10),
			entity: &api.PendingAction{
				ID: "p1", AgentID: "a1", ActionType: "place_order",
				Status: api.ActionPending, CreatedAt: now, ExpiresAt: now,
			},
		},
		{
			name:   "trades",
			schema: tradeSchema(10),
			entity: &api.Trade{
				ID: "t1", MarketID: "m1", BuyerID: "a1", SellerID: "a2",
				Side: "NO", Price: 0.6, Size: 3, CreatedAt: now,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, col := range tc.schema.Columns {
				// Nullable columns (outcome, reviewed_at, ...) are
				// excluded from the fixtures on purpose.
				if col.Key == "rejection_reason" {
					continue
				}
				if tc.entity.Field(col.Key).IsNull() {
					t.Errorf("column %q does not resolve on %s entity", col.Key, tc.name)
				}
			}
			for _, key := range tc.schema.SearchKeys {
				if key == "rejection_reason" {
					continue
				}
				v := tc.entity.Field(key)
				if v.Kind() != explore.KindString {
					t.Errorf("search key %q is %v, want a string field", key, v.Kind())
				}
			}
			if _, ok := tc.schema.Column(tc.schema.DefaultSort.Key); !ok {
				t.Errorf("default sort key %q is not a column", tc.schema.DefaultSort.Key)
			}
			for _, f := range tc.schema.Facets {
				if _, ok := tc.schema.Facet(f.Key); !ok {
					t.Errorf("facet %q not resolvable", f.Key)
				}
				if len(f.Options) == 0 {
					t.Errorf("facet %q has no options", f.Key)
				}
			}
		})
	}
}

func TestFacetOptionsMatchStatuses(t *testing.T) {
	s := orderSchema(10)
	f, ok := s.Facet("status")
	if !ok {
		t.Fatal("orders schema has no status facet")
	}
	want := []string{api.OrderOpen, api.OrderPartial, api.OrderFilled, api.OrderCancelled}
	if len(f.Options) != len(want) {
		t.Fatalf("status facet has %d options, want %d", len(f.Options), len(want))
	}
	for i, opt := range f.Options {
		if opt.Value != want[i] {
			t.Errorf("option %d = %q, want %q", i, opt.Value, want[i])
		}
	}
}

func TestScreenName(t *testing.T) {
	cases := map[string]string{
		"Markets":         "markets",
		"Pending actions": "pending-actions",
	}
	for in, want := range cases {
		if got := screenName(in); got != want {
			t.Errorf("screenName(%q) = %q, want %q", in, got, want)
		}
	}
}
