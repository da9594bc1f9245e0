package exponents

import (
	"math/big"
	"sort"

	"github.com/mmcloughlin/addchain/acc"
	"github.com/mmcloughlin/addchain/acc/printer"
	"github.com/mmcloughlin/addchain/alg"
	"github.com/mmcloughlin/addchain/alg/ensemble"
	"github.com/mmcloughlin/addchain/alg/exec"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// This file connects compiled chains to the tooling of the addchain module:
// rendering as an acc script and comparison against addchain's search algorithms.
// Neither is needed for arithmetic; both serve diagnostics (see cmd/pmfield).

// Script renders the chain in the acc language of the addchain module.
func (c *Chain) Script() (string, error) {
	p, err := acc.Decompile(c.program)
	if err != nil {
		return "", errors.Wrapf(err, ErrorPrefix+"could not decompile chain %v", c.name)
	}
	script, err := acc.Build(p)
	if err != nil {
		return "", errors.Wrapf(err, ErrorPrefix+"could not build acc script for chain %v", c.name)
	}
	s, err := printer.String(script)
	if err != nil {
		return "", errors.Wrapf(err, ErrorPrefix+"could not print acc script for chain %v", c.name)
	}
	return s, nil
}

// SearchResult is the outcome of one algorithm in [Search].
type SearchResult struct {
	Algorithm       string
	Squarings       int
	Multiplications int
	Err             error
}

// Total is the total number of operations.
func (r SearchResult) Total() int {
	return r.Squarings + r.Multiplications
}

// Search runs addchain's default ensemble of search algorithms together with our sliding window compiler for the given window
// on the exponent e and returns the results, sorted by total number of operations. Failed algorithms are sorted last.
//
// This can take a long time for exponents of several hundred bits.
func Search(e *big.Int, window uint) []SearchResult {
	algorithms := append([]alg.ChainAlgorithm{SlidingWindow{Window: window}}, ensemble.Ensemble()...)
	logger.Info("searching addition chains", zap.Int("bits", e.BitLen()), zap.Int("algorithms", len(algorithms)))
	results := exec.NewParallel().Execute(e, algorithms)

	ret := make([]SearchResult, len(results))
	for i, r := range results {
		ret[i] = SearchResult{Algorithm: r.Algorithm.String(), Err: r.Err}
		if r.Err == nil {
			ret[i].Squarings, ret[i].Multiplications = r.Program.Count()
		}
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if (ret[i].Err == nil) != (ret[j].Err == nil) {
			return ret[i].Err == nil
		}
		return ret[i].Total() < ret[j].Total()
	})
	return ret
}
