//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package haio

import (
	"context"

	xrand "golang.org/x/exp/rand"

	"trpc.group/trpc-go/trpc-haio-go/internal/stat"
	"trpc.group/trpc-go/trpc-haio-go/log"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// runGTA is the Bayesian generalisation of runCTA. Instead of testing
// each cluster in isolation it estimates, by Monte-Carlo over Beta
// posteriors, the probability that the size-weighted mean quality of
// the approved clusters plus one candidate meets the quality
// requirement.
func (c *Client) runGTA(ctx context.Context, asks []AskedQuestion, cfg Config) ([]string, error) {
	n := len(asks)
	t := asks[0].Template
	alpha := cfg.significanceLevel()
	iters := cfg.iteration()

	clusters := newClusterSet()
	if _, err := c.collectCandidates(ctx, asks, clusters, 0); err != nil {
		return nil, err
	}
	var approved []*taskCluster
	unapproved := append([]*taskCluster(nil), clusters.order...)

	outputs := make([]answerSlot, n)
	for _, i := range c.rng.Perm(n) {
		if outputs[i].set {
			continue
		}
		h, err := c.askAndWait(ctx, t, asks[i].Data, worker.Human)
		if err != nil {
			return nil, err
		}
		outputs[i] = answerSlot{value: h, set: true}

		// The human sample updates every cluster containing the task,
		// approved ones included.
		for _, tc := range clusters.order {
			if !tc.contains(i) {
				continue
			}
			if tc.answer == h {
				tc.correct++
			} else {
				tc.incorrect++
			}
		}

		// Approvals made earlier in this pass enlarge the approved set
		// seen by the remaining candidates.
		var remaining []*taskCluster
		for _, u := range unapproved {
			samples := make([]stat.ClusterSample, 0, len(approved)+1)
			for _, a := range approved {
				samples = append(samples, clusterSample(a))
			}
			samples = append(samples, clusterSample(u))
			pHat := stat.ApprovalProbability(samples, cfg.QualityRequirement, iters,
				xrand.NewSource(c.rng.Uint64()))
			if 1-pHat < alpha {
				u.approved = true
				approved = append(approved, u)
				log.Debugf("gta: approved cluster kind=%s answer=%q correct=%d incorrect=%d phat=%v",
					u.kind, u.answer, u.correct, u.incorrect, pHat)
				for j := range outputs {
					if !outputs[j].set && u.contains(j) {
						outputs[j] = answerSlot{value: u.answer, set: true}
					}
				}
			} else {
				remaining = append(remaining, u)
			}
		}
		unapproved = remaining
	}
	return finalize(outputs), nil
}

func clusterSample(tc *taskCluster) stat.ClusterSample {
	return stat.ClusterSample{
		Correct:   tc.correct,
		Incorrect: tc.incorrect,
		Size:      tc.size(),
	}
}
