package core

import (
	"sort"
	"strings"
)

// TokenKind which side of a loan a token may serve
type TokenKind string

const (
	// TokenKindCollateral token accepted as collateral
	TokenKindCollateral TokenKind = "collateral"
	// TokenKindLoan token that can be borrowed
	TokenKindLoan TokenKind = "loan"
)

// Token registered token, immutable once registered
type Token struct {
	Symbol      string    `json:"symbol"`
	Address     string    `json:"address,omitempty"`
	Decimals    int32     `json:"decimals"`
	Kind        TokenKind `json:"kind"`
	PriceSource string    `json:"price_source,omitempty"`
}

// TokenRegistry the registered collateral and loan token sets.
// It is built once at start up and only read afterwards.
type TokenRegistry struct {
	collaterals map[string]Token
	loans       map[string]Token
}

// NewTokenRegistry build registry from token list
func NewTokenRegistry(tokens []Token) *TokenRegistry {
	r := &TokenRegistry{
		collaterals: make(map[string]Token),
		loans:       make(map[string]Token),
	}

	for _, t := range tokens {
		t.Symbol = NormalizeSymbol(t.Symbol)
		switch t.Kind {
		case TokenKindCollateral:
			r.collaterals[t.Symbol] = t
		case TokenKindLoan:
			r.loans[t.Symbol] = t
		}
	}

	return r
}

// NormalizeSymbol upper cased, trimmed symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Collateral find a registered collateral token
func (r *TokenRegistry) Collateral(symbol string) (Token, bool) {
	t, ok := r.collaterals[NormalizeSymbol(symbol)]
	return t, ok
}

// Loan find a registered loan token
func (r *TokenRegistry) Loan(symbol string) (Token, bool) {
	t, ok := r.loans[NormalizeSymbol(symbol)]
	return t, ok
}

// Find find a token in either set, collateral first
func (r *TokenRegistry) Find(symbol string) (Token, bool) {
	if t, ok := r.Collateral(symbol); ok {
		return t, true
	}

	return r.Loan(symbol)
}

// Symbols all distinct registered symbols, sorted
func (r *TokenRegistry) Symbols() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, set := range []map[string]Token{r.collaterals, r.loans} {
		for s := range set {
			if !seen[s] {
				seen[s] = true
				symbols = append(symbols, s)
			}
		}
	}

	sort.Strings(symbols)
	return symbols
}

// All all registered tokens, collateral tokens first, each group sorted by symbol
func (r *TokenRegistry) All() []Token {
	tokens := make([]Token, 0, len(r.collaterals)+len(r.loans))
	for _, set := range []map[string]Token{r.collaterals, r.loans} {
		group := make([]Token, 0, len(set))
		for _, t := range set {
			group = append(group, t)
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Symbol < group[j].Symbol })
		tokens = append(tokens, group...)
	}

	return tokens
}
