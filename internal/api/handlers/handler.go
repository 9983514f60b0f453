package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/storage"
)

// Handler carries the store handles injected at startup. Handlers keep no
// per-request state.
type Handler struct {
	store storage.Store
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

// currentUserID reads the authenticated user id set by the auth middleware.
// Writes the 401 response itself when the id is unusable.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// coerceDates parses date strings in a relaxed document so range filters and
// date sorting work against stored values.
func coerceDates(doc bson.M) {
	for _, key := range []string{"date", "Date"} {
		s, ok := doc[key].(string)
		if !ok {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			doc[key] = t.UTC()
			continue
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			doc[key] = t.UTC()
		}
	}
}

// parseDate accepts the timestamp and date-only forms used by query params.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
