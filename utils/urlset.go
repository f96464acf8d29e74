package utils

// URLSet tracks URLs seen during link collection. It never filters anything;
// collection keeps duplicates, the set only counts them for reporting.
type URLSet struct {
	seen       map[string]struct{}
	duplicates int
}

// NewURLSet creates an empty URLSet.
func NewURLSet() *URLSet {
	return &URLSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL was newly added, false if already present.
func (s *URLSet) Add(url string) bool {
	if _, exists := s.seen[url]; exists {
		s.duplicates++
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Contains returns true if the URL has been added.
func (s *URLSet) Contains(url string) bool {
	_, exists := s.seen[url]
	return exists
}

// Size returns the number of unique URLs tracked.
func (s *URLSet) Size() int {
	return len(s.seen)
}

// Duplicates returns how many Add calls hit an already known URL.
func (s *URLSet) Duplicates() int {
	return s.duplicates
}
