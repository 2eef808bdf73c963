package memory

import "sort"

type record[T any] struct {
	seq int64
	val T
}

// table filas por id que recuerdan su orden de inserción.
type table[T any] struct {
	rows map[string]record[T]
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]record[T])}
}

func (t *table[T]) put(id string, v T) {
	if r, ok := t.rows[id]; ok {
		r.val = v
		t.rows[id] = r
		return
	}
	t.next++
	t.rows[id] = record[T]{seq: t.next, val: v}
}

func (t *table[T]) get(id string) (T, bool) {
	r, ok := t.rows[id]
	return r.val, ok
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) del(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// all devuelve copias de las filas en orden de inserción.
func (t *table[T]) all() []T {
	recs := make([]record[T], 0, len(t.rows))
	for _, r := range t.rows {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]T, len(recs))
	for i, r := range recs {
		out[i] = r.val
	}
	return out
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[string]record[T], len(t.rows)), next: t.next}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}
