package counters

import (
	"strconv"
	"strings"
)

// Counter represents a number of counters of one kind.
type Counter struct {
	Type  CounterType
	Count int
}

// NewCounter creates a counter, defaulting to a count of one.
func NewCounter(kind CounterType, count int) *Counter {
	if count <= 0 {
		count = 1
	}
	return &Counter{Type: kind, Count: count}
}

// Add adds the specified amount to the counter.
func (c *Counter) Add(amount int) {
	if amount > 0 {
		c.Count += amount
	}
}

// Remove removes up to the specified amount, never going below zero.
func (c *Counter) Remove(amount int) {
	if amount <= 0 {
		return
	}
	if c.Count >= amount {
		c.Count -= amount
	} else {
		c.Count = 0
	}
}

// Copy creates a copy of the counter.
func (c *Counter) Copy() *Counter {
	cpy := *c
	return &cpy
}

// Counters manages the counters on one object.
type Counters struct {
	byType map[CounterType]int
}

// NewCounters creates an empty collection.
func NewCounters() *Counters {
	return &Counters{byType: make(map[CounterType]int)}
}

// Add adds counters of a kind to the collection.
func (cs *Counters) Add(kind CounterType, amount int) {
	if amount > 0 {
		cs.byType[kind] += amount
	}
}

// Remove removes up to amount counters of a kind. Reports whether any
// counters of the kind were present.
func (cs *Counters) Remove(kind CounterType, amount int) bool {
	have, ok := cs.byType[kind]
	if !ok || amount <= 0 {
		return false
	}
	if have > amount {
		cs.byType[kind] = have - amount
	} else {
		delete(cs.byType, kind)
	}
	return true
}

// GetCount returns the count of one counter kind.
func (cs *Counters) GetCount(kind CounterType) int {
	return cs.byType[kind]
}

// HasCounter reports whether any counters of the kind are present.
func (cs *Counters) HasCounter(kind CounterType) bool {
	return cs.byType[kind] > 0
}

// Total returns the total number of counters of all kinds.
func (cs *Counters) Total() int {
	total := 0
	for _, n := range cs.byType {
		total += n
	}
	return total
}

// AsMap returns the collection as a plain map, the shape the parser's token
// steps and the evaluator's permanent view use.
func (cs *Counters) AsMap() map[CounterType]int {
	out := make(map[CounterType]int, len(cs.byType))
	for k, v := range cs.byType {
		out[k] = v
	}
	return out
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() *Counters {
	cpy := NewCounters()
	for k, v := range cs.byType {
		cpy.byType[k] = v
	}
	return cpy
}

// ParseBoost parses a boost counter name such as "+1/+1" or "-1/-1" into its
// power and toughness deltas.
func ParseBoost(kind CounterType) (power, toughness int, ok bool) {
	left, right, found := strings.Cut(string(kind), "/")
	if !found {
		return 0, 0, false
	}
	power, ok = parseBoostValue(left)
	if !ok {
		return 0, 0, false
	}
	toughness, ok = parseBoostValue(right)
	if !ok {
		return 0, 0, false
	}
	return power, toughness, true
}

func parseBoostValue(s string) (int, bool) {
	s = strings.TrimPrefix(s, "+")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
