package services

import "strings"

// pathStack is the ordered list of items currently open on the recursion path,
// with an index for O(1) membership. Frames push on entry and pop on return.
type pathStack struct {
	items []string
	open  map[string]int
}

func newPathStack() *pathStack {
	return &pathStack{
		items: make([]string, 0),
		open:  make(map[string]int),
	}
}

func (s *pathStack) push(item string) {
	s.open[item] = len(s.items)
	s.items = append(s.items, item)
}

func (s *pathStack) pop() {
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	delete(s.open, last)
}

func (s *pathStack) contains(item string) bool {
	_, ok := s.open[item]
	return ok
}

// top returns the innermost open item, or "" when the stack is empty
func (s *pathStack) top() string {
	if len(s.items) == 0 {
		return ""
	}
	return s.items[len(s.items)-1]
}

func (s *pathStack) depth() int {
	return len(s.items)
}

// key encodes the open path for memoization
func (s *pathStack) key() string {
	return strings.Join(s.items, "\x1f")
}
