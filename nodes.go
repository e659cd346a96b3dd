package msgformat

import (
	"strconv"
	"strings"
)

// Plural category tags.
const (
	CategoryZero  = "zero"
	CategoryOne   = "one"
	CategoryTwo   = "two"
	CategoryFew   = "few"
	CategoryMany  = "many"
	CategoryOther = "other"
)

// Node is one element of a parsed message. The set of implementations is closed.
//
// Nodes are values and are never modified after the parser returns them, so a
// parsed AST can be shared by any number of concurrent renders.
type Node interface {
	node()
}

// AST is the ordered sequence of top-level nodes of one parsed pattern.
type AST []Node

// Text is a literal run of text, already unescaped.
type Text struct {
	Value string
}

// Argument is a bare placeholder: {name}.
type Argument struct {
	Name string
}

// NumberFormat is {name, number} or {name, number, style}. Style is empty when unset.
type NumberFormat struct {
	Name  string
	Style string
}

// DateFormat is {name, date} or {name, date, style}. Style is empty when unset.
type DateFormat struct {
	Name  string
	Style string
}

// TimeFormat is {name, time} or {name, time, style}. Style is empty when unset.
type TimeFormat struct {
	Name  string
	Style string
}

// Plural is {name, plural, [offset:N] key {message} ...}.
type Plural struct {
	Name     string
	Offset   int
	Branches Branches
}

// Select is {name, select, key {message} ...}.
type Select struct {
	Name     string
	Branches Branches
}

// SelectOrdinal is {name, selectordinal, [offset:N] key {message} ...}.
type SelectOrdinal struct {
	Name     string
	Offset   int
	Branches Branches
}

func (Text) node()          {}
func (Argument) node()      {}
func (NumberFormat) node()  {}
func (DateFormat) node()    {}
func (TimeFormat) node()    {}
func (Plural) node()        {}
func (Select) node()        {}
func (SelectOrdinal) node() {}

// BranchKey selects a branch: a category or selector identifier such as
// "one" or "male", or an exact-value key such as "=0".
type BranchKey string

// ExactKey returns the exact-match key for n.
func ExactKey(n int64) BranchKey {
	return BranchKey("=" + strconv.FormatInt(n, 10))
}

// IsExact reports whether k is an exact-value key.
func (k BranchKey) IsExact() bool {
	return strings.HasPrefix(string(k), "=")
}

// Branch is one key and its sub-message.
type Branch struct {
	Key  BranchKey
	Body []Node
}

// Branches is an immutable key to sub-message table that remembers the order
// in which keys were first declared. Lookups are always by key.
type Branches struct {
	keys   []BranchKey
	bodies map[BranchKey][]Node
}

// NewBranches builds a table from pairs. A repeated key keeps its first
// position and its last body.
func NewBranches(pairs ...Branch) Branches {
	b := Branches{bodies: make(map[BranchKey][]Node, len(pairs))}
	for _, p := range pairs {
		if _, exists := b.bodies[p.Key]; !exists {
			b.keys = append(b.keys, p.Key)
		}
		b.bodies[p.Key] = p.Body
	}
	return b
}

// Get returns the body registered under key.
func (b Branches) Get(key BranchKey) ([]Node, bool) {
	body, ok := b.bodies[key]
	return body, ok
}

// Has reports whether key is declared.
func (b Branches) Has(key BranchKey) bool {
	_, ok := b.bodies[key]
	return ok
}

// Keys returns the declared keys in declaration order.
func (b Branches) Keys() []BranchKey {
	out := make([]BranchKey, len(b.keys))
	copy(out, b.keys)
	return out
}

// Len returns the number of declared keys.
func (b Branches) Len() int {
	return len(b.keys)
}

// mergeText returns a fresh sequence in which consecutive Text nodes are
// collapsed into one. Empty text never produces a node.
func mergeText(nodes []Node) []Node {
	merged := make([]Node, 0, len(nodes))
	var pending strings.Builder
	hasPending := false
	flush := func() {
		if hasPending && pending.Len() > 0 {
			merged = append(merged, Text{Value: pending.String()})
		}
		pending.Reset()
		hasPending = false
	}
	for _, n := range nodes {
		if t, ok := n.(Text); ok {
			pending.WriteString(t.Value)
			hasPending = true
			continue
		}
		flush()
		merged = append(merged, n)
	}
	flush()
	return merged
}
