package utils

import "strconv"

// CoerceAdminID normalizes an admin identifier for ledger writes and
// lookups. A purely numeric, non-zero id is reduced to its canonical
// decimal form (so "007" and "7" address the same history); anything
// else passes through verbatim. The ledger schema keys history on this
// coerced value, which is why writes and reads must agree on it.
func CoerceAdminID(raw string) string {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n == 0 {
		return raw
	}
	return strconv.FormatInt(n, 10)
}
