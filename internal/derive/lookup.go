package derive

// statLookup reads named statistics out of a base feature map while
// tracking whether any requested key was absent. Stages use it to keep
// their all-or-nothing availability semantics: one missing statistic
// marks the whole stage unavailable.
type statLookup struct {
	stats   map[string]float64
	missing bool
}

func (l *statLookup) get(key string) float64 {
	v, ok := l.stats[key]
	if !ok {
		l.missing = true
	}
	return v
}
