package entity

// ResultSet maps addresses to their latest FetchResult, keeping the order in
// which each address was first stored. It is not safe for concurrent use;
// Batch guards it.
type ResultSet struct {
	order     []string
	byAddress map[string]FetchResult
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{byAddress: make(map[string]FetchResult)}
}

// Set stores r under r.Address. A repeated address keeps its original
// position and its previous value is replaced, never merged.
func (s *ResultSet) Set(r FetchResult) {
	if _, exists := s.byAddress[r.Address]; !exists {
		s.order = append(s.order, r.Address)
	}
	s.byAddress[r.Address] = r
}

// Get returns the result stored for address.
func (s *ResultSet) Get(address string) (FetchResult, bool) {
	r, ok := s.byAddress[address]
	return r, ok
}

// Len returns the number of distinct addresses stored.
func (s *ResultSet) Len() int {
	return len(s.order)
}

// Results returns a copy of the stored results in insertion order.
func (s *ResultSet) Results() []FetchResult {
	out := make([]FetchResult, 0, len(s.order))
	for _, addr := range s.order {
		out = append(out, s.byAddress[addr])
	}
	return out
}

// HasSuccess reports whether any stored result succeeded.
func (s *ResultSet) HasSuccess() bool {
	for _, r := range s.byAddress {
		if r.OK() {
			return true
		}
	}
	return false
}
