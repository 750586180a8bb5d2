// Package sema holds the per-node analytical state passes accumulate while
// walking a Module. The source language's dynamic per-node meta map is
// replaced here by one typed side-table per well-known attribute; the set
// is closed and small: sub-node index, resolved symbol, generated code
// fragment, and a completion flag. Diagnostics are collected by
// pass.Context rather than indexed per node, since a node may carry zero,
// one, or several.
package sema

import (
	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/symtab"
)

// Info is the analytical state attached to one Module and everything
// reachable from it. A fresh Info is created per compilation unit; nothing
// in it outlives a recompile of that module.
type Info struct {
	// SubNodes[n][k] is the document-order list of n's descendants of kind
	// k, populated by the SubNodeTable pass.
	SubNodes map[ast.Node]map[ast.Kind][]ast.Node

	// Sym[n] is the symbol n resolves to: for a declaring node, the symbol
	// it declares (set by the Symbol Table pass); for a reference node, the
	// symbol it was bound to (set by DefUse: every reference ends up with
	// exactly a symbol or a diagnostic, never neither and never both).
	Sym map[ast.Node]*symtab.Symbol

	// Scope[n] is the lexical scope a scope-creating node owns.
	Scope map[ast.Node]*symtab.Table

	// PyCode[n] is the generated target-language fragment for n, populated
	// by the PyAST Gen pass.
	PyCode map[ast.Node]string

	// Incomplete marks a node whose handler reported "feature not
	// implemented" — implementations must not treat an absent PyCode entry
	// as license to assume "emit nothing" — an unimplemented handler still
	// owes a diagnostic, not silent output. Incomplete is the explicit marker
	// for that case.
	Incomplete map[ast.Node]bool
}

// New creates an empty Info ready for a fresh compilation.
func New() *Info {
	return &Info{
		SubNodes:   make(map[ast.Node]map[ast.Kind][]ast.Node),
		Sym:        make(map[ast.Node]*symtab.Symbol),
		Scope:      make(map[ast.Node]*symtab.Table),
		PyCode:     make(map[ast.Node]string),
		Incomplete: make(map[ast.Node]bool),
	}
}

// SubNodesOf returns n's descendants of kind k in document order, or nil if
// the SubNodeTable pass hasn't run (or n has none).
func (info *Info) SubNodesOf(n ast.Node, k ast.Kind) []ast.Node {
	tab, ok := info.SubNodes[n]
	if !ok {
		return nil
	}
	return tab[k]
}

// SetSubNodeTable records the full per-kind index for n.
func (info *Info) SetSubNodeTable(n ast.Node, tab map[ast.Kind][]ast.Node) {
	info.SubNodes[n] = tab
}

// SetSymbol records the symbol a declaring or reference node resolved to.
func (info *Info) SetSymbol(n ast.Node, sym *symtab.Symbol) { info.Sym[n] = sym }

// Symbol returns the symbol attached to n, if any.
func (info *Info) Symbol(n ast.Node) (*symtab.Symbol, bool) {
	s, ok := info.Sym[n]
	return s, ok
}

// SetScope records the scope a scope-creating node owns.
func (info *Info) SetScope(n ast.Node, t *symtab.Table) { info.Scope[n] = t }

// ScopeOf returns the scope owned by n, if any.
func (info *Info) ScopeOf(n ast.Node) (*symtab.Table, bool) {
	s, ok := info.Scope[n]
	return s, ok
}

// AppendCode appends s to n's generated fragment (used by a parent node to
// accumulate its children's contributions in document order).
func (info *Info) AppendCode(n ast.Node, s string) {
	info.PyCode[n] += s
}

// SetCode replaces n's generated fragment outright.
func (info *Info) SetCode(n ast.Node, s string) { info.PyCode[n] = s }

// Code returns n's generated fragment, or "" if PyAST Gen hasn't visited it.
func (info *Info) Code(n ast.Node) string { return info.PyCode[n] }

// MarkIncomplete records that n's handler could not fully lower it.
func (info *Info) MarkIncomplete(n ast.Node) { info.Incomplete[n] = true }

// IsIncomplete reports whether n was marked incomplete.
func (info *Info) IsIncomplete(n ast.Node) bool { return info.Incomplete[n] }
