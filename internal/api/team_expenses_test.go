package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTeamExpensePagination(t *testing.T) {
	server, store := newTestServer(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		_, err := store.TeamExpenses().Insert(context.Background(), bson.M{
			"description": fmt.Sprintf("expense-%02d", i),
			"amount":      float64(i),
			"teamId":      "t-1",
			"date":        base.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}

	seen := map[string]bool{}
	sizes := []int{10, 10, 5}
	for page := 1; page <= 3; page++ {
		url := fmt.Sprintf("%s/api/team-expenses/?page=%d&limit=10", server.URL, page)
		status, body := doJSON(t, http.MethodGet, url, "", nil)
		if status != http.StatusOK {
			t.Fatalf("page %d returned %d: %v", page, status, body)
		}
		m := asMap(t, body)
		if m["totalExpenses"] != float64(25) || m["totalPages"] != float64(3) {
			t.Errorf("page %d: expected totals 25/3, got %v/%v", page, m["totalExpenses"], m["totalPages"])
		}
		if m["currentPage"] != float64(page) {
			t.Errorf("expected currentPage %d, got %v", page, m["currentPage"])
		}
		expenses := asSlice(t, m["expenses"])
		if len(expenses) != sizes[page-1] {
			t.Errorf("page %d: expected %d expenses, got %d", page, sizes[page-1], len(expenses))
		}
		for _, e := range expenses {
			id := asMap(t, e)["id"].(string)
			if seen[id] {
				t.Errorf("expense %s returned on more than one page", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 25 {
		t.Errorf("expected 25 distinct expenses across pages, got %d", len(seen))
	}

	// Newest first.
	status, body := doJSON(t, http.MethodGet, server.URL+"/api/team-expenses/?limit=1", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d", status)
	}
	first := asMap(t, asSlice(t, asMap(t, body)["expenses"])[0])
	if first["description"] != "expense-24" {
		t.Errorf("expected newest expense first, got %v", first["description"])
	}
}

func TestTeamExpenseEmptyCollection(t *testing.T) {
	server, _ := newTestServer(t)

	status, body := doJSON(t, http.MethodGet, server.URL+"/api/team-expenses/", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d", status)
	}
	m := asMap(t, body)
	if m["totalExpenses"] != float64(0) || m["totalPages"] != float64(0) {
		t.Errorf("empty collection: expected totals 0/0, got %v/%v", m["totalExpenses"], m["totalPages"])
	}
	if len(asSlice(t, m["expenses"])) != 0 {
		t.Errorf("expected no expenses, got %v", m["expenses"])
	}
}

func TestTeamExpenseFilters(t *testing.T) {
	server, store := newTestServer(t)
	ctx := context.Background()

	seed := func(doc bson.M) {
		t.Helper()
		if _, err := store.TeamExpenses().Insert(ctx, doc); err != nil {
			t.Fatalf("seed insert failed: %v", err)
		}
	}
	seed(bson.M{"description": "a", "teamId": "t-1", "status": "approved", "category": "Food", "date": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	seed(bson.M{"description": "b", "teamId": "t-1", "status": "pending", "category": "Bills", "date": time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)})
	seed(bson.M{"description": "c", "teamId": "t-2", "status": "approved", "category": "Food", "date": time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)})

	status, body := doJSON(t, http.MethodGet, server.URL+"/api/team-expenses/team/t-1", "", nil)
	if status != http.StatusOK {
		t.Fatalf("team scope returned %d", status)
	}
	if n := asMap(t, body)["totalExpenses"]; n != float64(2) {
		t.Errorf("team scope: expected 2, got %v", n)
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/team-expenses/team/t-1?status=approved", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status filter returned %d", status)
	}
	m := asMap(t, body)
	if m["totalExpenses"] != float64(1) {
		t.Errorf("status filter: expected 1, got %v", m["totalExpenses"])
	}
	only := asMap(t, asSlice(t, m["expenses"])[0])
	if only["description"] != "a" {
		t.Errorf("expected expense a, got %v", only["description"])
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/team-expenses/?category=Food", "", nil)
	if status != http.StatusOK {
		t.Fatalf("category filter returned %d", status)
	}
	if n := asMap(t, body)["totalExpenses"]; n != float64(2) {
		t.Errorf("category filter: expected 2, got %v", n)
	}

	status, body = doJSON(t, http.MethodGet, server.URL+"/api/team-expenses/?startDate=2024-03-02&endDate=2024-03-31", "", nil)
	if status != http.StatusOK {
		t.Fatalf("date filter returned %d", status)
	}
	if n := asMap(t, body)["totalExpenses"]; n != float64(2) {
		t.Errorf("date range: expected 2, got %v", n)
	}
}

func TestTeamExpenseCreateNormalizesResponse(t *testing.T) {
	server, _ := newTestServer(t)

	status, body := doJSON(t, http.MethodPost, server.URL+"/api/team-expenses/", "", gin.H{
		"Subject":  "Team dinner",
		"Amount":   180,
		"Date":     "2024-05-01T19:00:00Z",
		"Category": "Food",
		"Team":     "t-1",
		"Status":   "pending",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", status, body)
	}
	m := asMap(t, body)
	if m["description"] != "Team dinner" || m["amount"] != float64(180) {
		t.Errorf("legacy keys must map to canonical fields, got %v", m)
	}
	if m["teamId"] != "t-1" || m["status"] != "pending" {
		t.Errorf("unexpected normalized record: %v", m)
	}
	if m["id"] == "" {
		t.Error("expected a generated id")
	}
}

func TestTeamExpenseLegacyDocNormalizedOnRead(t *testing.T) {
	server, store := newTestServer(t)

	_, err := store.TeamExpenses().Insert(context.Background(), bson.M{
		"Subject": "Taxi",
		"Amount":  "42.5",
		"Status":  "approved",
	})
	if err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	status, body := doJSON(t, http.MethodGet, server.URL+"/api/team-expenses/", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list returned %d", status)
	}
	expenses := asSlice(t, asMap(t, body)["expenses"])
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	rec := asMap(t, expenses[0])
	if rec["description"] != "Taxi" || rec["amount"] != 42.5 || rec["status"] != "approved" {
		t.Errorf("legacy document not normalized: %v", rec)
	}
	if rec["date"] != nil {
		t.Errorf("undated document must normalize to null date, got %v", rec["date"])
	}
}

func TestTeamExpenseUpdateMergesFields(t *testing.T) {
	server, _ := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, server.URL+"/api/team-expenses/", "", gin.H{
		"description": "Supplies",
		"amount":      30,
		"teamId":      "t-1",
	})
	id := asMap(t, body)["id"].(string)

	status, body := doJSON(t, http.MethodPut, server.URL+"/api/team-expenses/"+id, "", gin.H{
		"amount": 99,
	})
	if status != http.StatusOK {
		t.Fatalf("update returned %d: %v", status, body)
	}
	m := asMap(t, body)
	if m["amount"] != float64(99) || m["description"] != "Supplies" {
		t.Errorf("merge must keep untouched fields, got %v", m)
	}
	if m["id"] != id {
		t.Errorf("id must be immutable, got %v", m["id"])
	}
}

func TestTeamExpenseDeleteReturnsRecord(t *testing.T) {
	server, _ := newTestServer(t)

	_, body := doJSON(t, http.MethodPost, server.URL+"/api/team-expenses/", "", gin.H{
		"description": "Supplies",
		"amount":      30,
	})
	id := asMap(t, body)["id"].(string)

	status, body := doJSON(t, http.MethodDelete, server.URL+"/api/team-expenses/"+id, "", nil)
	if status != http.StatusOK {
		t.Fatalf("delete returned %d: %v", status, body)
	}
	m := asMap(t, body)
	if m["message"] != "Expense deleted successfully" {
		t.Errorf("unexpected delete message: %v", m["message"])
	}
	deleted := asMap(t, m["deletedExpense"])
	if deleted["id"] != id || deleted["description"] != "Supplies" {
		t.Errorf("expected deleted record back, got %v", deleted)
	}

	status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/team-expenses/"+id, "", nil)
	if status != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", status)
	}

	status, _ = doJSON(t, http.MethodDelete, server.URL+"/api/team-expenses/"+primitive.NewObjectID().Hex(), "", nil)
	if status != http.StatusNotFound {
		t.Errorf("absent id: expected 404, got %d", status)
	}
}
