//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package stat implements the statistical decision rules of the
// assignment engine: the one-sided exact binomial test used by the CTA
// variants and the Monte-Carlo Beta posterior check used by GTA.
package stat

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// BinomPValueGreater returns the exact one-sided p-value P(X >= k) for
// X ~ Binomial(n, p). n == 0 or k <= 0 yields 1.
func BinomPValueGreater(k, n int, p float64) float64 {
	if n <= 0 || k <= 0 {
		return 1
	}
	if k > n {
		return 0
	}
	b := distuv.Binomial{N: float64(n), P: p}
	// 1 - CDF(k-1) = P(X >= k).
	return 1 - b.CDF(float64(k-1))
}

// ClusterSample is one task cluster's agreement record entering the
// posterior check.
type ClusterSample struct {
	Correct   int
	Incorrect int
	Size      int
}

// mcChunk is the number of Monte-Carlo iterations handed to one pool
// task.
const mcChunk = 256

// ApprovalProbability estimates P(weighted mean quality >= q) over the
// joint Beta posterior of clusters with iters Monte-Carlo iterations.
// Each iteration draws one Beta(correct+1, incorrect+1) sample per
// cluster and weights it by cluster size. Iterations are spread over an
// ants goroutine pool; every chunk owns an independent rand stream
// seeded from src, so results are reproducible for a fixed source.
func ApprovalProbability(clusters []ClusterSample, q float64, iters int, src xrand.Source) float64 {
	if iters <= 0 || len(clusters) == 0 {
		return 0
	}
	seeder := xrand.New(src)
	var success int64
	var wg sync.WaitGroup
	pool, err := ants.NewPool(runtime.GOMAXPROCS(0))
	if err != nil {
		pool = nil
	} else {
		defer pool.Release()
	}
	for start := 0; start < iters; start += mcChunk {
		n := mcChunk
		if start+n > iters {
			n = iters - start
		}
		seed := seeder.Uint64()
		wg.Add(1)
		task := func() {
			defer wg.Done()
			rng := xrand.New(xrand.NewSource(seed))
			local := 0
			for i := 0; i < n; i++ {
				if weightedMean(clusters, rng) >= q {
					local++
				}
			}
			atomic.AddInt64(&success, int64(local))
		}
		if pool == nil || pool.Submit(task) != nil {
			task()
		}
	}
	wg.Wait()
	return float64(success) / float64(iters)
}

// weightedMean draws one posterior quality sample per cluster and
// returns the size-weighted mean.
func weightedMean(clusters []ClusterSample, rng *xrand.Rand) float64 {
	var numerator float64
	var denominator int
	for _, c := range clusters {
		beta := distuv.Beta{
			Alpha: float64(c.Correct) + 1,
			Beta:  float64(c.Incorrect) + 1,
			Src:   rng,
		}
		numerator += beta.Rand() * float64(c.Size)
		denominator += c.Size
	}
	if denominator == 0 {
		return 0
	}
	return numerator / float64(denominator)
}
