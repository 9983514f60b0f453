// Package normalize maps heterogeneous stored expense documents to one
// canonical output shape.
//
// Legacy documents carry spreadsheet-style capitalized keys (Subject, Amount,
// Status, ...); canonical documents carry the lowercase keys this package
// emits. Resolution order per field: the legacy key when present and usable,
// then the canonical key, then a default (empty string for text fields, 0 for
// amount, null for date).
package normalize

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is the canonical expense shape emitted by the API.
type Record struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        *string `json:"date"`
	Category    string  `json:"category"`
	Notes       string  `json:"notes"`
	TeamID      string  `json:"teamId"`
	UserID      string  `json:"userId"`
	Status      string  `json:"status"`
	Receipt     string  `json:"receipt"`
}

// Normalize shapes a raw stored document into a Record. It is pure and
// idempotent: normalizing a record's own Doc yields an equal record.
func Normalize(raw bson.M) Record {
	return Record{
		ID:          idField(raw),
		Description: stringField(raw, "Subject", "description"),
		Amount:      amountField(raw),
		Date:        dateField(raw),
		Category:    stringField(raw, "Category", "category"),
		Notes:       stringField(raw, "Notes", "notes"),
		TeamID:      stringField(raw, "Team", "teamId"),
		UserID:      stringField(raw, "User", "userId"),
		Status:      stringField(raw, "Status", "status"),
		Receipt:     stringField(raw, "Receipt", "receipt"),
	}
}

// Doc renders the record back as a canonical document.
func (r Record) Doc() bson.M {
	doc := bson.M{
		"id":          r.ID,
		"description": r.Description,
		"amount":      r.Amount,
		"category":    r.Category,
		"notes":       r.Notes,
		"teamId":      r.TeamID,
		"userId":      r.UserID,
		"status":      r.Status,
		"receipt":     r.Receipt,
	}
	if r.Date != nil {
		doc["date"] = *r.Date
	}
	return doc
}

func idField(raw bson.M) string {
	switch v := raw["_id"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		if v != "" {
			return v
		}
	}
	if v, ok := raw["id"].(string); ok {
		return v
	}
	return ""
}

func stringField(raw bson.M, legacy, canonical string) string {
	for _, key := range []string{legacy, canonical} {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case primitive.ObjectID:
			if !v.IsZero() {
				return v.Hex()
			}
		}
	}
	return ""
}

func amountField(raw bson.M) float64 {
	for _, key := range []string{"Amount", "amount"} {
		if v, ok := raw[key]; ok && v != nil {
			if f, ok := toFloat(v); ok {
				return f
			}
		}
	}
	return 0
}

func dateField(raw bson.M) *string {
	for _, key := range []string{"Date", "date"} {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if t, ok := toTime(v); ok {
			s := t.UTC().Format(time.RFC3339)
			return &s
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case primitive.DateTime:
		return d.Time(), true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, d); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
