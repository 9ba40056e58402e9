package service

import "strconv"

// ParseID coerces a raw path parameter into an integer id. Parsing takes an
// optional sign followed by the longest run of leading digits and discards
// the rest, so "1" and "1.5" both coerce to 1 while "abc" and "" fail.
// Zero and negative values parse fine; they simply never match a stored
// item.
func ParseID(raw string) (int, bool) {
	i := 0
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		i++
	}

	j := i
	for j < len(raw) && raw[j] >= '0' && raw[j] <= '9' {
		j++
	}

	if j == i {
		return 0, false
	}

	id, err := strconv.Atoi(raw[:j])
	if err != nil {
		// Digit run longer than an int; treat as unresolvable.
		return 0, false
	}

	return id, true
}
