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

	"trpc.group/trpc-go/trpc-haio-go/internal/stat"
	"trpc.group/trpc-go/trpc-haio-go/log"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// runCTA is the batch task-cluster approval engine. Phase 1 asks every
// AI worker about every task and clusters tasks by (kind, answer).
// Phase 2 samples human answers over a random permutation; a cluster
// whose agreement passes the one-sided binomial test is approved and its
// AI answer fills every still-unset task it contains.
func (c *Client) runCTA(ctx context.Context, asks []AskedQuestion, cfg Config) ([]string, error) {
	n := len(asks)
	t := asks[0].Template
	alpha := cfg.significanceLevel()

	clusters := newClusterSet()
	candidates, err := c.collectCandidates(ctx, asks, clusters, 0)
	if err != nil {
		return nil, err
	}

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

		for _, tc := range clusters.order {
			if tc.approved || !tc.contains(i) {
				continue
			}
			if candidates[tc.kind][i] == h {
				tc.correct++
			} else {
				tc.incorrect++
			}
			p := stat.BinomPValueGreater(tc.correct, tc.correct+tc.incorrect, cfg.QualityRequirement)
			if p < alpha {
				tc.approved = true
				log.Debugf("cta: approved cluster kind=%s answer=%q correct=%d incorrect=%d",
					tc.kind, tc.answer, tc.correct, tc.incorrect)
				for j := range outputs {
					if !outputs[j].set && tc.contains(j) {
						outputs[j] = answerSlot{value: candidates[tc.kind][j], set: true}
					}
				}
			}
		}
	}
	return finalize(outputs), nil
}

// collectCandidates asks every registered AI worker about every task,
// records the answers per kind indexed by task, and files each task
// into its (kind, answer) cluster at offset+i.
func (c *Client) collectCandidates(
	ctx context.Context,
	asks []AskedQuestion,
	clusters *clusterSet,
	offset int,
) (map[worker.Kind][]string, error) {
	candidates := map[worker.Kind][]string{}
	for _, kind := range c.aiOrder {
		candidates[kind] = make([]string, len(asks))
	}
	for i, ask := range asks {
		for _, kind := range c.aiOrder {
			a, err := c.askAndWait(ctx, ask.Template, ask.Data, kind)
			if err != nil {
				return nil, err
			}
			candidates[kind][i] = a
			clusters.ensure(kind, a).add(offset + i)
		}
	}
	return candidates, nil
}
