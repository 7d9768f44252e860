//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	xrand "golang.org/x/exp/rand"
)

func TestBinomPValueGreater(t *testing.T) {
	tests := []struct {
		name string
		k, n int
		p    float64
		want float64
	}{
		{"no successes", 0, 5, 0.5, 1},
		{"empty sample", 0, 0, 0.5, 1},
		{"one of one at p 0.9", 1, 1, 0.9, 0.9},
		{"one of one at p 0.2", 1, 1, 0.2, 0.2},
		{"all of two at p 0.5", 2, 2, 0.5, 0.25},
		{"k exceeds n", 3, 2, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BinomPValueGreater(tt.k, tt.n, tt.p)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBinomPValueGreaterMonotoneInK(t *testing.T) {
	// More successes out of the same sample can only shrink the
	// p-value.
	prev := 1.0
	for k := 1; k <= 10; k++ {
		p := BinomPValueGreater(k, 10, 0.7)
		assert.LessOrEqual(t, p, prev)
		prev = p
	}
}

func TestApprovalProbabilityExtremes(t *testing.T) {
	src := xrand.NewSource(1)

	// A cluster with overwhelming agreement almost always clears a low
	// requirement.
	high := ApprovalProbability([]ClusterSample{
		{Correct: 100, Incorrect: 0, Size: 10},
	}, 0.5, 2000, src)
	assert.Greater(t, high, 0.99)

	// A cluster with overwhelming disagreement almost never clears a
	// high requirement.
	low := ApprovalProbability([]ClusterSample{
		{Correct: 0, Incorrect: 100, Size: 10},
	}, 0.9, 2000, xrand.NewSource(2))
	assert.Less(t, low, 0.01)
}

func TestApprovalProbabilityWeighting(t *testing.T) {
	// A big accurate cluster dominates the weighted mean over a small
	// inaccurate candidate.
	p := ApprovalProbability([]ClusterSample{
		{Correct: 200, Incorrect: 0, Size: 90},
		{Correct: 0, Incorrect: 20, Size: 10},
	}, 0.6, 2000, xrand.NewSource(3))
	assert.Greater(t, p, 0.95)
}

func TestApprovalProbabilityRange(t *testing.T) {
	p := ApprovalProbability([]ClusterSample{
		{Correct: 3, Incorrect: 2, Size: 5},
	}, 0.5, 500, xrand.NewSource(4))
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}
