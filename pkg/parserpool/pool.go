// Package parserpool provides a pool of gnparser instances for concurrent name parsing.
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"fmt"
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides a pool of gnparser instances for concurrent parsing.
// It maintains a separate pool per nomenclatural code, so botanical and
// zoological names can be parsed side by side.
type Pool interface {
	// Parse parses a scientific name string using the specified nomenclatural code.
	// It retrieves a parser from the matching pool, parses the name, and returns
	// the parser to the pool. This method is safe for concurrent use.
	Parse(nameString string, code nomcode.Code) (parsed.Parsed, error)

	// Close shuts down the parser pools and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	pools    map[nomcode.Code]chan gnparser.GNparser
	poolSize int
}

// NewPool creates a parser pool with poolSize workers per nomenclatural
// code. If poolSize is 0, it defaults to runtime.NumCPU(). Without
// explicit codes it creates botanical and zoological pools, the two
// codes needed for checklist names.
func NewPool(poolSize int, codes ...nomcode.Code) Pool {
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}
	if len(codes) == 0 {
		codes = []nomcode.Code{nomcode.Botanical, nomcode.Zoological}
	}

	pools := make(map[nomcode.Code]chan gnparser.GNparser)
	for _, code := range codes {
		cfg := gnparser.NewConfig(gnparser.OptCode(code))
		pools[code] = gnparser.NewPool(cfg, poolSize)
	}

	return &PoolImpl{
		pools:    pools,
		poolSize: poolSize,
	}
}

// Parse parses a scientific name string using the specified nomenclatural code.
// It selects the parser pool for the code, retrieves a parser, parses the
// name, returns the parser to the pool, and returns the parsed result.
func (p *PoolImpl) Parse(nameString string, code nomcode.Code) (parsed.Parsed, error) {
	ch, ok := p.pools[code]
	if !ok {
		return parsed.Parsed{}, fmt.Errorf("no parser pool for nomenclatural code: %v", code)
	}

	// Get a parser from the pool (blocks if all parsers are busy)
	parser := <-ch

	// Parse the name string
	result := parser.ParseName(nameString)

	// Return the parser to the pool
	ch <- parser

	return result, nil
}

// Close shuts down all parser pools and releases resources.
// It closes the channels and drains any remaining parsers.
func (p *PoolImpl) Close() {
	for _, ch := range p.pools {
		close(ch)
		// Drain the channel
		for range ch {
		}
	}
	p.pools = nil
}
