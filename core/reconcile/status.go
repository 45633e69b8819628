package reconcile

import "strings"

// StatusIndex is the optional cache index mapping status names to codes.
const StatusIndex = "statuses"

// ResolveStatus maps the free-text status in label to a status code.
// ACTIVE and INACTIVE are built in; other values are looked up by name in the
// statuses index. A blank cell yields ok=false so callers can apply their default.
func ResolveStatus(row Row, label string, cache *Cache) (code int, ok bool, err error) {
	value, present := row.String(label)
	if !present {
		return 0, false, nil
	}

	switch strings.ToUpper(value) {
	case "ACTIVE":
		return StatusActive, true, nil
	case "INACTIVE":
		return StatusInactive, true, nil
	}

	code, found, err := Find[int](cache, StatusIndex, value)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, Reject(label, value, "Invalid %s '%s'", label, value)
	}
	return code, true, nil
}
