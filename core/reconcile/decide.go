package reconcile

import (
	"errors"
	"fmt"
)

// duplicates tracks natural keys claimed by earlier rows of the batch and
// decides insert or update against the persisted index.
// It is used sequentially, before any persistence starts.
type duplicates struct {
	keys    []NaturalKey
	seen    map[string]map[string]int
	claimed map[uint]int
}

func newDuplicates(keys []NaturalKey) *duplicates {
	seen := make(map[string]map[string]int, len(keys))
	for _, k := range keys {
		seen[k.Name] = make(map[string]int)
	}
	return &duplicates{keys: keys, seen: seen, claimed: make(map[uint]int)}
}

// primary returns the first applicable key of rec, used to name the row in messages.
func (d *duplicates) primary(rec Record) (KeyValue, bool) {
	for _, k := range d.keys {
		kv := k.evaluate(rec)
		if kv.Folded != "" {
			return kv, true
		}
	}
	return KeyValue{}, false
}

// decide classifies a validated record.
func (d *duplicates) decide(row Row, rec Record, cache *Cache) (Decision, error) {
	values := make([]KeyValue, 0, len(d.keys))
	for _, k := range d.keys {
		kv := k.evaluate(rec)
		if kv.Folded == "" {
			continue
		}
		if first, dup := d.seen[k.Name][kv.Folded]; dup {
			return Decision{}, Reject(k.Label, kv.Display,
				"Duplicate %s '%s' within this import (already on row %d)", k.Label, kv.Display, first)
		}
		values = append(values, kv)
	}
	if len(values) == 0 {
		return Decision{}, errors.New("row has no usable natural key")
	}
	for _, kv := range values {
		d.seen[kv.Key.Name][kv.Folded] = row.Number
	}

	for _, kv := range values {
		ex, ok := cache.Existing(kv)
		if !ok {
			continue
		}
		if ex.Protected {
			return Decision{}, Reject(kv.Key.Label, kv.Display,
				"%s '%s' originates from an upstream system and cannot be altered via import", kv.Key.Label, kv.Display)
		}
		if first, taken := d.claimed[ex.ID]; taken {
			return Decision{}, Reject(kv.Key.Label, kv.Display,
				"%s '%s' matches the same existing record as row %d", kv.Key.Label, kv.Display, first)
		}
		d.claimed[ex.ID] = row.Number
		return Decision{Row: row, Kind: DecisionUpdate, Record: rec, ExistingID: ex.ID}, nil
	}

	return Decision{Row: row, Kind: DecisionInsert, Record: rec}, nil
}

func describeKey(kv KeyValue) string {
	return fmt.Sprintf("%s '%s'", kv.Key.Label, kv.Display)
}
