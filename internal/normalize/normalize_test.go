package normalize

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func recordsEqual(a, b Record) bool {
	if a.Date == nil || b.Date == nil {
		if (a.Date == nil) != (b.Date == nil) {
			return false
		}
	} else if *a.Date != *b.Date {
		return false
	}
	a.Date, b.Date = nil, nil
	return a == b
}

func TestNormalizeLegacyKeys(t *testing.T) {
	id := primitive.NewObjectID()
	date := time.Date(2023, 4, 12, 10, 30, 0, 0, time.UTC)

	rec := Normalize(bson.M{
		"_id":      id,
		"Subject":  "Office chairs",
		"Amount":   249.99,
		"Date":     date,
		"Category": "Shopping",
		"Notes":    "two units",
		"Team":     "team-1",
		"User":     "user-1",
		"Status":   "approved",
		"Receipt":  "https://example.com/r.png",
	})

	if rec.ID != id.Hex() {
		t.Errorf("id: expected %q, got %q", id.Hex(), rec.ID)
	}
	if rec.Description != "Office chairs" {
		t.Errorf("description: got %q", rec.Description)
	}
	if rec.Amount != 249.99 {
		t.Errorf("amount: got %v", rec.Amount)
	}
	if rec.Date == nil || *rec.Date != "2023-04-12T10:30:00Z" {
		t.Errorf("date: got %v", rec.Date)
	}
	if rec.Category != "Shopping" || rec.Notes != "two units" {
		t.Errorf("category/notes: got %q/%q", rec.Category, rec.Notes)
	}
	if rec.TeamID != "team-1" || rec.UserID != "user-1" {
		t.Errorf("teamId/userId: got %q/%q", rec.TeamID, rec.UserID)
	}
	if rec.Status != "approved" || rec.Receipt != "https://example.com/r.png" {
		t.Errorf("status/receipt: got %q/%q", rec.Status, rec.Receipt)
	}
}

func TestNormalizeCanonicalKeys(t *testing.T) {
	rec := Normalize(bson.M{
		"_id":         "abc123",
		"description": "Team lunch",
		"amount":      54.2,
		"date":        "2024-01-05T00:00:00Z",
		"category":    "Food",
		"userId":      "u-9",
		"teamId":      "t-3",
		"status":      "pending",
	})

	if rec.ID != "abc123" || rec.Description != "Team lunch" || rec.Amount != 54.2 {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Date == nil || *rec.Date != "2024-01-05T00:00:00Z" {
		t.Errorf("date: got %v", rec.Date)
	}
	if rec.UserID != "u-9" || rec.TeamID != "t-3" || rec.Status != "pending" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	rec := Normalize(bson.M{})

	if rec.ID != "" || rec.Description != "" || rec.Category != "" || rec.Notes != "" ||
		rec.TeamID != "" || rec.UserID != "" || rec.Status != "" || rec.Receipt != "" {
		t.Errorf("expected empty string defaults, got %+v", rec)
	}
	if rec.Amount != 0 {
		t.Errorf("amount default: got %v", rec.Amount)
	}
	if rec.Date != nil {
		t.Errorf("date default: got %v", *rec.Date)
	}
}

func TestNormalizeLegacyPreferredOverCanonical(t *testing.T) {
	rec := Normalize(bson.M{
		"Subject":     "legacy",
		"description": "canonical",
	})
	if rec.Description != "legacy" {
		t.Errorf("expected legacy key to win, got %q", rec.Description)
	}

	// An empty legacy value falls through to the canonical key.
	rec = Normalize(bson.M{
		"Subject":     "",
		"description": "canonical",
	})
	if rec.Description != "canonical" {
		t.Errorf("expected canonical fallback, got %q", rec.Description)
	}
}

func TestNormalizeAmountCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"int32", int32(8), 8},
		{"int64", int64(9), 9},
		{"numeric string", "42.5", 42.5},
		{"garbage string", "soup", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Normalize(bson.M{"Amount": tc.in})
			if rec.Amount != tc.want {
				t.Errorf("amount: expected %v, got %v", tc.want, rec.Amount)
			}
		})
	}
}

func TestNormalizeDateCoercion(t *testing.T) {
	rec := Normalize(bson.M{"date": primitive.NewDateTimeFromTime(time.Date(2022, 7, 1, 9, 0, 0, 0, time.UTC))})
	if rec.Date == nil || *rec.Date != "2022-07-01T09:00:00Z" {
		t.Errorf("primitive.DateTime: got %v", rec.Date)
	}

	rec = Normalize(bson.M{"date": "2022-07-01"})
	if rec.Date == nil || *rec.Date != "2022-07-01T00:00:00Z" {
		t.Errorf("date-only string: got %v", rec.Date)
	}

	rec = Normalize(bson.M{"date": "not a date"})
	if rec.Date != nil {
		t.Errorf("unparseable string: got %v", *rec.Date)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	docs := []bson.M{
		{},
		{"Subject": "legacy", "Amount": "12.5", "Status": "approved", "Date": time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"_id": primitive.NewObjectID(), "description": "canonical", "amount": 3.5, "date": "2024-02-02T08:00:00Z"},
		{"Team": "t-1", "User": "u-1", "Notes": "n", "Receipt": "r"},
	}
	for i, doc := range docs {
		first := Normalize(doc)
		second := Normalize(first.Doc())
		if !recordsEqual(first, second) {
			t.Errorf("doc %d: normalize not idempotent:\n first=%+v\nsecond=%+v", i, first, second)
		}
	}
}
