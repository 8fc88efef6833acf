package rules

// RefineRangeConsistency reports whether a lower and an upper bound leave
// room for at least one value. With both bounds exclusive the gap must be at
// least 2, with one exclusive bound at least 1; inclusive bounds only need
// min <= max. A missing bound is always consistent.
func RefineRangeConsistency(min *float64, minExclusive bool, max *float64, maxExclusive bool) bool {
	if min == nil || max == nil {
		return true
	}
	lo, hi := *min, *max
	switch {
	case lo > hi:
		return false
	case minExclusive && maxExclusive && hi-lo < 2:
		return false
	case (minExclusive || maxExclusive) && hi-lo < 1:
		return false
	}
	return true
}
