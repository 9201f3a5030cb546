/*
Package dotchart implements the Earley-style dot chart: per-grammar
advancement of partial rule matches through a grammar trie across lattice
arcs and SuperItems of completed nonterminals, following the classic
Scanner/Predictor/Completer loop, adapted from "advance over a flat
token stream" to "advance over a lattice DAG and a 2-D span grid".
*/
package dotchart

import (
	"reflect"

	"github.com/cnf/structhash"

	"github.com/jrs026/joshua/grammar"
	"github.com/jrs026/joshua/hypergraph"
)

// antecedents is a persistent, tail-appended singly-linked list of
// SuperItems, one per nonterminal slot matched so far. Representing it
// this way (rather than as a slice) lets many DotItems share the same
// prefix without copying.
type antecedents struct {
	item *hypergraph.SuperItem
	prev *antecedents
	len  int
}

// appended returns a new antecedents list with item appended after the
// receiver (nil receiver means "the empty list").
func (a *antecedents) appended(item *hypergraph.SuperItem) *antecedents {
	n := 1
	if a != nil {
		n = a.len + 1
	}
	return &antecedents{item: item, prev: a, len: n}
}

// Len reports how many SuperItems are in the list; a nil receiver has
// length 0.
func (a *antecedents) Len() int {
	if a == nil {
		return 0
	}
	return a.len
}

// Slice materializes the list in match order (oldest first). Used only
// when handing antecedents off to the bin package for rule completion,
// where a concrete, ordered slice is the natural shape.
func (a *antecedents) Slice() []*hypergraph.SuperItem {
	out := make([]*hypergraph.SuperItem, a.Len())
	for n, cur := a.Len()-1, a; cur != nil; n, cur = n-1, cur.prev {
		out[n] = cur.item
	}
	return out
}

// DotItem is a partial match of a rule against a span: a trie position, the
// ordered SuperItems already consumed for its nonterminal slots, and the
// accumulated lattice cost of the terminals already consumed.
type DotItem struct {
	TNode       grammar.TrieNode
	ants        *antecedents
	LatticeCost float64
}

// Antecedents returns the SuperItems matched so far, in slot order.
func (d DotItem) Antecedents() []*hypergraph.SuperItem {
	return d.ants.Slice()
}

// Arity reports how many nonterminal advances produced d, i.e. the
// number of SuperItems already consumed.
func (d DotItem) Arity() int {
	return d.ants.Len()
}

// key is the hash-consing key for de-duplicating DotItems: two items are
// equivalent iff their trie node, antecedent list, and lattice cost
// agree. Pointers are reduced to their numeric identity before hashing
// so that structhash, which otherwise follows pointers and hashes
// pointee *contents*, compares identity, not a SuperItem's (mutable,
// growing) Nodes slice.
func (d DotItem) key() string {
	ants := d.ants.Slice()
	ptrs := make([]uintptr, len(ants))
	for i, a := range ants {
		ptrs[i] = reflect.ValueOf(a).Pointer()
	}
	h, err := structhash.Hash(struct {
		TNode uintptr
		Ants  []uintptr
		Cost  float64
	}{
		TNode: reflect.ValueOf(d.TNode).Pointer(),
		Ants:  ptrs,
		Cost:  d.LatticeCost,
	}, 1)
	if err != nil {
		panic(err) // structhash only fails on unhashable types, which we do not feed it
	}
	return h
}
