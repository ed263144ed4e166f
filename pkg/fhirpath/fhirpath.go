// Package fhirpath is the public facade over the tokenizer, parser, error
// reporter, and AST services: Parse, ClearCache, and the re-exported AST/
// token types tests and callers inspect Binary.Op against.
package fhirpath

import (
	"sync"

	"github.com/atomic-ehr/fhirpath-go/internal/parser"
	"github.com/atomic-ehr/fhirpath-go/pkg/ast"
	"github.com/atomic-ehr/fhirpath-go/pkg/perror"
	"github.com/atomic-ehr/fhirpath-go/pkg/printer"
	"github.com/atomic-ehr/fhirpath-go/pkg/token"
)

// Re-exports so callers never need to import internal/parser or reach
// into pkg/ast and pkg/token directly for the common path.
type (
	Node       = ast.Node
	Expression = ast.Expression
	TokenType  = token.TokenType
	ParseError = perror.ParseError
)

// maxCacheEntries bounds the parse cache; once full, the oldest-inserted
// entry is evicted to make room — a simple policy, not a true LRU, matching
// the scale this module needs (not large enough to justify pulling in a
// third-party cache library).
const maxCacheEntries = 2048

var cache = newParseCache(maxCacheEntries)

type parseCache struct {
	mu      sync.Mutex
	entries map[string]ast.Node
	order   []string
	cap     int
}

func newParseCache(capacity int) *parseCache {
	return &parseCache{
		entries: make(map[string]ast.Node),
		cap:     capacity,
	}
}

func (c *parseCache) get(source string) (ast.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[source]
	return n, ok
}

func (c *parseCache) put(source string, node ast.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[source]; exists {
		return
	}
	if len(c.entries) >= c.cap && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[source] = node
	c.order = append(c.order, source)
}

func (c *parseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ast.Node)
	c.order = nil
}

// Parse tokenizes and parses source into an AST, returning a memoized
// result for source strings seen before. A failed parse is never cached —
// only successful trees are memoized, since AST nodes are immutable and
// safe to share.
func Parse(source string) (ast.Node, error) {
	if n, ok := cache.get(source); ok {
		return n, nil
	}
	node, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	cache.put(source, node)
	return node, nil
}

// ClearCache empties the parse cache.
func ClearCache() {
	cache.clear()
}

// AstToString renders node as a source-equivalent, reparseable string.
func AstToString(node ast.Node) string { return printer.AstToString(node) }

// PrettyPrint renders an indented tree view of node.
func PrettyPrint(node ast.Node, depth int) string { return printer.PrettyPrint(node, depth) }

// PrintAST writes PrettyPrint(node, 0) to stdout.
func PrintAST(node ast.Node) { printer.PrintAST(node) }
