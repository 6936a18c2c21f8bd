package asm

import "github.com/wordasm/wordasm/isa"

// PrimaryKind classifies where a symbol was defined.
type PrimaryKind int

const (
	PrimaryNone PrimaryKind = iota
	PrimaryCode
	PrimaryData
)

// SecondaryKind classifies a symbol's import/export status.
type SecondaryKind int

const (
	SecondaryNone SecondaryKind = iota
	SecondaryEntry
	SecondaryExternal
)

// Symbol is one row of the symbol table.
type Symbol struct {
	Name      string
	Address   int
	Primary   PrimaryKind
	Secondary SecondaryKind
}

// symbolTable is an append-only, name-unique table of symbols.
type symbolTable struct {
	rows  []Symbol
	index map[string]int
}

func newSymbolTable() *symbolTable {
	return &symbolTable{index: make(map[string]int)}
}

// add inserts a new symbol. It returns false if name is already defined
// (the reference semantics: kind 11, the duplicate is rejected and the
// existing row is left untouched).
func (t *symbolTable) add(name string, address int, primary PrimaryKind) bool {
	if _, ok := t.index[name]; ok {
		return false
	}
	t.index[name] = len(t.rows)
	t.rows = append(t.rows, Symbol{Name: name, Address: address, Primary: primary})
	return true
}

// addExtern inserts an extern symbol at address 0. Like add, it reports
// whether the insertion happened.
func (t *symbolTable) addExtern(name string) bool {
	if _, ok := t.index[name]; ok {
		return false
	}
	t.index[name] = len(t.rows)
	t.rows = append(t.rows, Symbol{Name: name, Address: 0, Secondary: SecondaryExternal})
	return true
}

func (t *symbolTable) find(name string) *Symbol {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return &t.rows[i]
}

// shiftData adds shift to the address of every data-kind symbol. Called
// once at the end of pass 1 with shift = ICF.
func (t *symbolTable) shiftData(shift int) {
	for i := range t.rows {
		if t.rows[i].Primary == PrimaryData {
			t.rows[i].Address += shift
		}
	}
}

// Slot is one row of the code or data table: either a fully-encoded word,
// or a placeholder awaiting pass-2 fixup (see isa.Word and §9's
// PendingDirect/PendingRelative sum-type suggestion — represented here as
// an encoded word of zero plus a non-empty pending label, since a real
// zero-valued first word never legitimately needs fixup).
type Slot struct {
	Address    int
	Word       isa.Word
	Pending    string // raw operand text (including leading '&'), or ""
	LineNumber int
}

func (s *Slot) needsFixup() bool {
	return s.Pending != ""
}

// codeDataTable is an append-only table of code or data slots.
type codeDataTable struct {
	rows []Slot
}

func (t *codeDataTable) append(word isa.Word, pending string, line int, addr int) {
	t.rows = append(t.rows, Slot{Address: addr, Word: word, Pending: pending, LineNumber: line})
}

func (t *codeDataTable) len() int {
	return len(t.rows)
}

// refRow is one row of the entries or externals table: a label and the
// address associated with that row (the symbol's own address for
// entries, the referencing code slot's address for externs).
type refRow struct {
	Name    string
	Address int
}

// refTable is an append-only table that tolerates duplicate names (one
// row per reference site, for externs; one row per exported symbol, for
// entries).
type refTable struct {
	rows []refRow
}

func (t *refTable) append(name string, address int) {
	t.rows = append(t.rows, refRow{name, address})
}
