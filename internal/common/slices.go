package common

// AppendUnique appends v to s unless s already contains it. Order of first insertion is kept.
func AppendUnique[S ~[]E, E comparable](s S, v E) S {
	for _, e := range s {
		if e == v {
			return s
		}
	}

	return append(s, v)
}

// ContainsAll reports whether every element of sub is present in set.
// An empty sub is trivially contained.
func ContainsAll[E comparable](set []E, sub []E) bool {
	lookup := make(map[E]struct{}, len(set))
	for _, e := range set {
		lookup[e] = struct{}{}
	}

	for _, e := range sub {
		if _, ok := lookup[e]; !ok {
			return false
		}
	}

	return true
}
