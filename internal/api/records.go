package api

import (
	"encoding/json"
	"strconv"
	"sync"
)

// Record is a subject as the client sent it. The stub does not validate or
// interpret records beyond their numeric "id".
type Record map[string]any

// id reports the record's numeric id, however it was decoded.
func (r Record) id() (int64, bool) {
	switch v := r["id"].(type) {
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	}
	return 0, false
}

// Records is the stub's in-memory subject list. It is lost on restart.
type Records struct {
	mu     sync.Mutex
	items  []any
	nextID int64
}

func NewRecords() *Records {
	return &Records{items: []any{}, nextID: 1}
}

// List returns a copy of the list.
func (rs *Records) List() []any {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]any, len(rs.items))
	copy(out, rs.items)
	return out
}

// Create stores fields under a fresh id, overriding any id the client sent.
func (rs *Records) Create(fields Record) Record {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	r := make(Record, len(fields)+1)
	for k, v := range fields {
		r[k] = v
	}
	r["id"] = rs.nextID
	rs.nextID++
	rs.items = append(rs.items, r)
	return r
}

// Replace puts v verbatim into every slot whose id is id. Nothing is merged,
// so a replacement without an "id" can never be matched again.
func (rs *Records) Replace(id int64, v any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for i, item := range rs.items {
		if matches(item, id) {
			rs.items[i] = v
		}
	}
}

func (rs *Records) Delete(id int64) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	kept := rs.items[:0]
	for _, item := range rs.items {
		if !matches(item, id) {
			kept = append(kept, item)
		}
	}
	rs.items = kept
}

func (rs *Records) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.items)
}

func matches(item any, id int64) bool {
	r, ok := item.(Record)
	if !ok {
		m, isMap := item.(map[string]any)
		if !isMap {
			return false
		}
		r = Record(m)
	}
	got, ok := r.id()
	return ok && got == id
}

// parseID reads a path id. Anything but a base 10 integer matches nothing.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}
