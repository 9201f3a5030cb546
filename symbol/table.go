/*
Package symbol implements a shared table of terminal and nonterminal ids.

Terminals and nonterminals share one integer id-space, distinguished by
sign: nonterminal ids are negative, terminal ids are zero or positive.
This mirrors the convention used by LR-item symbol tables, where a
symbol carries a signed token-type value, adapted here to a single flat
table instead of a per-grammar one, since several grammars and the
lattice must agree on ids within one sentence.

A Table may be shared across concurrently decoded sentences. Minting a
new id (for a user-supplied goal symbol, or for a previously unseen
terminal) mutates the table, so all mutating methods are guarded by a
mutex; the read-only lookup GetWord takes the same mutex.
*/
package symbol

import (
	"fmt"
	"sync"
)

// ID identifies a terminal or a nonterminal within a Table.
// Nonterminal ids are negative, terminal ids are >= 0.
type ID int32

// IsTerminal reports whether id denotes a terminal.
func (id ID) IsTerminal() bool {
	return id >= 0
}

// IsNonterminal reports whether id denotes a nonterminal.
func (id ID) IsNonterminal() bool {
	return id < 0
}

// Untranslated is the reserved nonterminal marking an untranslated OOV
// span bridging directly to the goal. It always exists in a fresh Table.
const Untranslated ID = -1

// Table interns terminal and nonterminal names into ids. The zero value
// is not usable; create one with NewTable.
type Table struct {
	mu         sync.Mutex
	termByName map[string]ID
	termNames  []string // index by id
	ntByName   map[string]ID
	ntNames    []string // index by -(id+1)
}

// NewTable creates a Table pre-seeded with the Untranslated nonterminal.
func NewTable() *Table {
	t := &Table{
		termByName: make(map[string]ID),
		ntByName:   make(map[string]ID),
	}
	t.ntNames = append(t.ntNames, "<untranslated>") // occupies Untranslated = -1
	t.ntByName["<untranslated>"] = Untranslated
	return t
}

// AddTerminal interns a single terminal, minting a new id if needed.
func (t *Table) AddTerminal(word string) ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addTerminalLocked(word)
}

func (t *Table) addTerminalLocked(word string) ID {
	if id, ok := t.termByName[word]; ok {
		return id
	}
	id := ID(len(t.termNames))
	t.termNames = append(t.termNames, word)
	t.termByName[word] = id
	return id
}

// AddTerminals interns a sequence of terminals, in order, returning their ids.
func (t *Table) AddTerminals(words []string) []ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]ID, len(words))
	for i, w := range words {
		ids[i] = t.addTerminalLocked(w)
	}
	return ids
}

// AddNonterminal interns a nonterminal name, minting a new id if needed.
// Used both for grammar-declared nonterminals and for a user-supplied
// goal symbol that does not already appear in any grammar.
func (t *Table) AddNonterminal(name string) ID {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ntByName[name]; ok {
		return id
	}
	id := ID(-(len(t.ntNames) + 1))
	t.ntNames = append(t.ntNames, name)
	t.ntByName[name] = id
	return id
}

// GetWord returns the interned name for id, or an empty string if id is
// not known to this table.
func (t *Table) GetWord(id ID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id.IsTerminal() {
		if int(id) < len(t.termNames) {
			return t.termNames[id]
		}
		return ""
	}
	idx := int(-(id + 1))
	if idx >= 0 && idx < len(t.ntNames) {
		return t.ntNames[idx]
	}
	return ""
}

func (id ID) String() string {
	return fmt.Sprintf("#%d", int32(id))
}
