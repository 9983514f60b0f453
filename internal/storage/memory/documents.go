package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendly-api/internal/storage"
)

// docCollection is a schema-less collection held as a slice so ties keep
// storage order under the stable sort.
type docCollection struct {
	mu   sync.RWMutex
	docs []bson.M
}

func (c *docCollection) Insert(ctx context.Context, doc bson.M) (bson.M, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clone := cloneDoc(doc)
	if _, ok := clone["_id"]; !ok {
		clone["_id"] = primitive.NewObjectID()
	}
	c.docs = append(c.docs, clone)
	return cloneDoc(clone), nil
}

func (c *docCollection) All(ctx context.Context) ([]bson.M, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]bson.M, 0, len(c.docs))
	for _, doc := range c.docs {
		out = append(out, cloneDoc(doc))
	}
	return out, nil
}

func (c *docCollection) Page(ctx context.Context, filter storage.DocumentFilter, page, limit int64) ([]bson.M, int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matched := []bson.M{}
	for _, doc := range c.docs {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		ti, iok := docDate(matched[i])
		tj, jok := docDate(matched[j])
		if iok != jok {
			return iok // dated documents before undated ones
		}
		return ti.After(tj)
	})

	count := int64(len(matched))
	start := (page - 1) * limit
	if start > count {
		start = count
	}
	end := start + limit
	if end > count {
		end = count
	}

	out := make([]bson.M, 0, end-start)
	for _, doc := range matched[start:end] {
		out = append(out, cloneDoc(doc))
	}
	return out, count, nil
}

func (c *docCollection) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) (bson.M, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, doc := range c.docs {
		if docID(doc) == id {
			for k, v := range patch {
				doc[k] = v
			}
			return cloneDoc(doc), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (c *docCollection) Delete(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, doc := range c.docs {
		if docID(doc) == id {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return cloneDoc(doc), nil
		}
	}
	return nil, storage.ErrNotFound
}

func matches(doc bson.M, f storage.DocumentFilter) bool {
	if f.TeamID != "" && stringVal(doc, "teamId") != f.TeamID {
		return false
	}
	if f.UserID != "" && stringVal(doc, "userId") != f.UserID {
		return false
	}
	if f.Status != "" && stringVal(doc, "status") != f.Status {
		return false
	}
	if f.Category != "" && stringVal(doc, "category") != f.Category {
		return false
	}
	if f.Start != nil || f.End != nil {
		t, ok := docDate(doc)
		if !ok {
			return false
		}
		if f.Start != nil && t.Before(*f.Start) {
			return false
		}
		if f.End != nil && t.After(*f.End) {
			return false
		}
	}
	return true
}

func docID(doc bson.M) primitive.ObjectID {
	id, _ := doc["_id"].(primitive.ObjectID)
	return id
}

func stringVal(doc bson.M, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docDate(doc bson.M) (time.Time, bool) {
	switch v := doc["date"].(type) {
	case time.Time:
		return v, true
	case primitive.DateTime:
		return v.Time(), true
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cloneDoc(doc bson.M) bson.M {
	clone := make(bson.M, len(doc))
	for k, v := range doc {
		clone[k] = v
	}
	return clone
}
