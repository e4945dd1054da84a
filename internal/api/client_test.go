package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "mst_testkey", 5*time.Second)
}

func TestListMarkets_QueryAndAuth(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer mst_testkey" {
			t.Errorf("auth header = %q", got)
		}
		q := r.URL.Query()
		if q.Get("status") != "open" || q.Get("category") != "crypto" || q.Get("limit") != "100" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":         "m1",
				"question":   "Will BTC hit $100k?",
				"category":   "crypto",
				"status":     "open",
				"yes_price":  "0.65",
				"no_price":   0.35,
				"volume":     "1200.50",
				"deadline":   "2026-12-31T00:00:00Z",
				"created_at": "2026-01-01T00:00:00Z",
			},
		})
	})

	markets, err := c.ListMarkets(context.Background(), MarketFilter{Status: "open", Category: "crypto"})
	if err != nil {
		t.Fatalf("ListMarkets: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("got %d markets", len(markets))
	}

	m := markets[0]
	if m.Question != "Will BTC hit $100k?" {
		t.Errorf("question = %q", m.Question)
	}
	// Decimals arrive as strings on some endpoints and numbers on others.
	if float64(m.YesPrice) != 0.65 || float64(m.NoPrice) != 0.35 {
		t.Errorf("prices = %v / %v", m.YesPrice, m.NoPrice)
	}
	if float64(m.Volume) != 1200.50 {
		t.Errorf("volume = %v", m.Volume)
	}
}

func TestListLimit_ClampedToServerCap(t *testing.T) {
	var gotLimit string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte("[]"))
	})

	// The exchange rejects limits above MaxLimit with a validation error, so
	// an oversized request is clamped rather than forwarded.
	if _, err := c.ListMarkets(context.Background(), MarketFilter{Limit: 500}); err != nil {
		t.Fatalf("ListMarkets: %v", err)
	}
	if gotLimit != "100" {
		t.Fatalf("limit = %q, want 100", gotLimit)
	}

	if _, err := c.ListTrades(context.Background(), TradeFilter{Limit: 25}); err != nil {
		t.Fatalf("ListTrades: %v", err)
	}
	if gotLimit != "25" {
		t.Fatalf("limit = %q, want 25", gotLimit)
	}
}

func TestListPendingActions_Envelope(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("agent_id"); got != "a1" {
			t.Errorf("agent_id = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"actions": []map[string]any{
				{
					"id":          "pa1",
					"agent_id":    "a1",
					"action_type": "place_order",
					"status":      "pending",
					"created_at":  "2026-02-01T10:00:00Z",
					"expires_at":  "2026-02-02T10:00:00Z",
				},
			},
			"total":         1,
			"pending_count": 1,
		})
	})

	actions, err := c.ListPendingActions(context.Background(), ActionFilter{AgentID: "a1"})
	if err != nil {
		t.Fatalf("ListPendingActions: %v", err)
	}
	if len(actions) != 1 || actions[0].ActionType != "place_order" {
		t.Fatalf("actions = %+v", actions)
	}
}

func TestCancelOrder_MethodPathAndOwner(t *testing.T) {
	var gotMethod, gotPath, gotAgent string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotAgent = r.URL.Query().Get("agent_id")
		json.NewEncoder(w).Encode(map[string]any{"order_id": "o1", "status": "cancelled", "refunded": "4.20"})
	})

	if err := c.CancelOrder(context.Background(), "a1", "o1"); err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/orders/o1" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
	if gotAgent != "a1" {
		t.Fatalf("agent_id = %q", gotAgent)
	}
}

func TestRejectAction_SendsReasonAndOwner(t *testing.T) {
	var body map[string]string
	var gotAgent string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.URL.Query().Get("agent_id")
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	})

	if err := c.RejectAction(context.Background(), "a1", "pa1", "out of policy"); err != nil {
		t.Fatalf("RejectAction: %v", err)
	}
	if body["reason"] != "out of policy" {
		t.Fatalf("body = %v", body)
	}
	if gotAgent != "a1" {
		t.Fatalf("agent_id = %q", gotAgent)
	}
}

func TestActionMutations_CarryOwner(t *testing.T) {
	var gotMethod, gotPath, gotAgent string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotAgent = r.URL.Query().Get("agent_id")
		w.Write([]byte("{}"))
	})

	if err := c.ApproveAction(context.Background(), "a1", "pa1"); err != nil {
		t.Fatalf("ApproveAction: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/pending-actions/pa1/approve" || gotAgent != "a1" {
		t.Fatalf("approve request = %s %s agent_id=%q", gotMethod, gotPath, gotAgent)
	}

	if err := c.DeleteAction(context.Background(), "a1", "pa2"); err != nil {
		t.Fatalf("DeleteAction: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/pending-actions/pa2" || gotAgent != "a1" {
		t.Fatalf("delete request = %s %s agent_id=%q", gotMethod, gotPath, gotAgent)
	}
}

func TestAPIError_DetailString(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail": "Order cannot be cancelled: already filled"}`))
	})

	err := c.CancelOrder(context.Background(), "a1", "o1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "Order cannot be cancelled: already filled" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestAPIError_NonJSONBody(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timeout"))
	})

	_, err := c.ListMarkets(context.Background(), MarketFilter{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Detail != "upstream timeout" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
}

func TestDecimal_Roundtrip(t *testing.T) {
	var d Decimal
	if err := json.Unmarshal([]byte(`"0.42"`), &d); err != nil || float64(d) != 0.42 {
		t.Fatalf("string decimal: %v %v", d, err)
	}
	if err := json.Unmarshal([]byte(`0.42`), &d); err != nil || float64(d) != 0.42 {
		t.Fatalf("number decimal: %v %v", d, err)
	}
	if err := json.Unmarshal([]byte(`null`), &d); err != nil || float64(d) != 0 {
		t.Fatalf("null decimal: %v %v", d, err)
	}
	out, err := json.Marshal(Decimal(0.65))
	if err != nil || string(out) != "0.65" {
		t.Fatalf("marshal: %s %v", out, err)
	}
}
