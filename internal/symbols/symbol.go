package symbols

import (
	"sync"

	"stackless/internal/source"
)

// Symbol is an interned identifier. Two symbols from the same pool are
// equal exactly when their IDs are equal.
type Symbol uint32

// NoSymbol marks the absence of a symbol.
const NoSymbol Symbol = 0

// IsValid reports whether the symbol refers to an interned name.
func (s Symbol) IsValid() bool { return s != NoSymbol }

// Pool interns identifiers for one module. Symbols are only meaningful
// relative to the pool that produced them. Safe for concurrent use: the
// driver processes independent functions of one module in parallel, and
// generated temporary names are interned lazily.
type Pool struct {
	mu      sync.RWMutex
	strings *source.Interner
}

// NewPool builds an empty pool.
func NewPool() *Pool {
	return &Pool{strings: source.NewInterner()}
}

// Make interns name and returns its symbol.
func (p *Pool) Make(name string) Symbol {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Symbol(p.strings.Intern(name))
}

// Display returns the textual form of sym.
// The zero symbol displays as the empty string.
func (p *Pool) Display(sym Symbol) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.strings.MustLookup(source.StringID(sym))
}

// Find returns the symbol for name without interning it.
func (p *Pool) Find(name string) (Symbol, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	id, ok := p.strings.Find(name)
	if !ok {
		return NoSymbol, false
	}
	return Symbol(id), true
}

// Len reports the number of interned symbols, counting NoSymbol.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.strings.Len()
}
