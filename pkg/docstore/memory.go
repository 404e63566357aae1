package docstore

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore is an in-process Store used by tests and `vastra serve
// --memory`. Documents are kept bson-encoded so reads hand out copies and
// decoding behaves exactly like the MongoDB implementation.
type MemoryStore struct {
	mu   sync.Mutex
	cols map[string]*memCollection
}

func NewMemory() *MemoryStore {
	return &MemoryStore{cols: make(map[string]*memCollection)}
}

func (s *MemoryStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.cols[name]
	if !ok {
		col = &memCollection{docs: make(map[string][]byte)}
		s.cols[name] = col
	}
	return col
}

type memCollection struct {
	mu    sync.RWMutex
	order []string // insertion order, so Find results are deterministic
	docs  map[string][]byte
}

func (c *memCollection) Get(_ context.Context, id string, dest interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, dest)
}

func (c *memCollection) Set(_ context.Context, id string, doc interface{}) error {
	raw, err := encodeWithID(id, doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(id, raw)
	return nil
}

func (c *memCollection) Merge(_ context.Context, id string, fields map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := bson.M{"_id": id}
	if raw, ok := c.docs[id]; ok {
		if err := bson.Unmarshal(raw, &current); err != nil {
			return err
		}
	}
	for k, v := range fields {
		current[k] = v
	}

	raw, err := bson.Marshal(current)
	if err != nil {
		return err
	}
	c.put(id, raw)
	return nil
}

func (c *memCollection) Add(_ context.Context, doc interface{}) (string, error) {
	id := uuid.NewString()
	raw, err := encodeWithID(id, doc)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.put(id, raw)
	return id, nil
}

func (c *memCollection) Update(_ context.Context, id string, fields map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.docs[id]
	if !ok {
		return ErrNotFound
	}

	var current bson.M
	if err := bson.Unmarshal(raw, &current); err != nil {
		return err
	}
	for k, v := range fields {
		current[k] = v
	}

	updated, err := bson.Marshal(current)
	if err != nil {
		return err
	}
	c.docs[id] = updated
	return nil
}

func (c *memCollection) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *memCollection) Find(_ context.Context, filters []Filter, dest interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var matched [][]byte
	for _, id := range c.order {
		raw := c.docs[id]
		ok, err := matches(raw, filters)
		if err != nil {
			return err
		}
		if ok {
			matched = append(matched, raw)
		}
	}
	return decodeList(matched, dest)
}

func (c *memCollection) GetMulti(_ context.Context, ids []string, dest interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var matched [][]byte
	for _, id := range c.order {
		if want[id] {
			matched = append(matched, c.docs[id])
		}
	}
	return decodeList(matched, dest)
}

// put must be called with c.mu held.
func (c *memCollection) put(id string, raw []byte) {
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = raw
}

func encodeWithID(id string, doc interface{}) ([]byte, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["_id"] = id
	return bson.Marshal(m)
}

func matches(raw []byte, filters []Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}

	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return false, err
	}

	for _, f := range filters {
		value, ok := m[f.Field]
		if !ok {
			return false, nil
		}

		switch f.Op {
		case OpEq:
			if !looseEqual(value, f.Value) {
				return false, nil
			}
		case OpGte, OpLte:
			a, aok := asFloat(value)
			b, bok := asFloat(f.Value)
			if !aok || !bok {
				return false, nil
			}
			if f.Op == OpGte && a < b {
				return false, nil
			}
			if f.Op == OpLte && a > b {
				return false, nil
			}
		default:
			return false, fmt.Errorf("docstore: unknown filter op %q", f.Op)
		}
	}
	return true, nil
}

func looseEqual(a, b interface{}) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v interface{}) (float64, bool) {
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
	}
	return 0, false
}

func decodeList(raws [][]byte, dest interface{}) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("docstore: dest must be a pointer to a slice, got %T", dest)
	}

	slice := v.Elem()
	slice.Set(reflect.MakeSlice(slice.Type(), 0, len(raws)))

	elemType := slice.Type().Elem()
	for _, raw := range raws {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}
