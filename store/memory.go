package store

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memEntry struct {
	data []byte
	exp  time.Time
}

func (e memEntry) alive(now time.Time) bool {
	return e.exp.IsZero() || now.Before(e.exp)
}

// Memory is the in-process Cache used when no Redis URL is configured and in
// tests. Expiry is lazy: dead entries are dropped when touched.
type Memory struct {
	mu    sync.Mutex
	items map[string]memEntry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return nil, false, nil
	}
	if !e.alive(m.now()) {
		delete(m.items, key)
		return nil, false, nil
	}
	out := make([]byte, len(e.data))
	copy(out, e.data)
	return out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memEntry{data: make([]byte, len(value))}
	copy(e.data, value)
	if ttl > 0 {
		e.exp = m.now().Add(ttl)
	}
	m.items[key] = e
	return nil
}

func (m *Memory) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exp, err := m.counter(key, ttl)
	if err != nil {
		return 0, err
	}
	n := int64(cur) + 1
	m.items[key] = memEntry{data: []byte(strconv.FormatInt(n, 10)), exp: exp}
	return n, nil
}

func (m *Memory) IncrFloat(_ context.Context, key string, delta float64, ttl time.Duration) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, exp, err := m.counter(key, ttl)
	if err != nil {
		return 0, err
	}
	n := cur + delta
	m.items[key] = memEntry{data: []byte(strconv.FormatFloat(n, 'f', -1, 64)), exp: exp}
	return n, nil
}

// counter reads the live numeric value for key and decides the expiry the
// updated entry keeps: the existing one, or now+ttl on first touch.
func (m *Memory) counter(key string, ttl time.Duration) (float64, time.Time, error) {
	now := m.now()

	e, ok := m.items[key]
	if ok && !e.alive(now) {
		delete(m.items, key)
		ok = false
	}
	if !ok {
		var exp time.Time
		if ttl > 0 {
			exp = now.Add(ttl)
		}
		return 0, exp, nil
	}
	cur, err := strconv.ParseFloat(string(e.data), 64)
	if err != nil {
		return 0, time.Time{}, err
	}
	return cur, e.exp, nil
}
