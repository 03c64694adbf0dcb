package analyze

import "strconv"

// newStem creates a name generator for prefix. A nil namespace is treated as
// free, meaning all names are available.
func newStem(prefix string, namespace map[string]struct{}) *stem {
	if namespace == nil {
		namespace = make(map[string]struct{})
	}

	return &stem{taken: namespace, prefix: prefix}
}

type stem struct {
	taken  map[string]struct{}
	prefix string
	last   int
}

// Next returns the first free name of the form stem1, stem2 and so on,
// and takes it.
func (s *stem) Next() string {
	for {
		s.last++
		name := s.prefix + strconv.Itoa(s.last)

		if _, ok := s.taken[name]; !ok {
			s.taken[name] = struct{}{}
			return name
		}
	}
}
