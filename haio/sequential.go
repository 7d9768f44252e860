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
	"math/rand"
	"sort"
	"strconv"

	"trpc.group/trpc-go/trpc-haio-go/fingerprint"
	"trpc.group/trpc-go/trpc-haio-go/internal/stat"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// sequentialState is the cross-call state of the sequential engines,
// one instance per (method, template, parameters). Task indices in
// clusters and candidate lists are global: they count from the first
// task ever submitted under this state.
type sequentialState struct {
	taskNumber int
	clusters   *clusterSet
	candidates map[worker.Kind][]string

	// sequential_cta_3 only.
	template        question.Template
	dataLists       []question.DataList
	humanCandidates []answerSlot
	phases          *taskPhases
}

// seqState returns the persistent state for the parameter signature,
// creating it on first use.
func (c *Client) seqState(method Method, t question.Template, cfg Config) (*sequentialState, error) {
	tfp, err := fingerprint.Of(t)
	if err != nil {
		return nil, err
	}
	key := string(method) + "|" + tfp +
		"," + strconv.FormatFloat(cfg.QualityRequirement, 'g', -1, 64) +
		"," + strconv.FormatFloat(cfg.significanceLevel(), 'g', -1, 64)
	if method == MethodSequentialCTA2 {
		key += "," + strconv.Itoa(cfg.SampleSize)
	}
	st, ok := c.seq[key]
	if !ok {
		st = &sequentialState{
			clusters:   newClusterSet(),
			candidates: map[worker.Kind][]string{},
		}
		if method == MethodSequentialCTA3 {
			st.template = t
			st.phases = newTaskPhases()
		}
		c.seq[key] = st
	}
	return st, nil
}

// runSequential1 approves as it goes: each new task first consults the
// clusters built so far; an approved cluster answers it outright,
// otherwise a human sample updates and re-tests every unapproved
// cluster the task fell into.
func (c *Client) runSequential1(ctx context.Context, asks []AskedQuestion, cfg Config) ([]string, error) {
	t := asks[0].Template
	st, err := c.seqState(MethodSequentialCTA1, t, cfg)
	if err != nil {
		return nil, err
	}
	alpha := cfg.significanceLevel()

	outputs := make([]answerSlot, len(asks))
	for i, ask := range asks {
		g := st.taskNumber + i
		for _, kind := range c.aiOrder {
			a, err := c.askAndWait(ctx, t, ask.Data, kind)
			if err != nil {
				return nil, err
			}
			st.candidates[kind] = append(st.candidates[kind], a)
			tc := st.clusters.ensure(kind, a)
			if tc.approved {
				if !outputs[i].set {
					outputs[i] = answerSlot{value: a, set: true}
				}
			} else {
				tc.add(g)
			}
		}
		if outputs[i].set {
			continue
		}
		h, err := c.askAndWait(ctx, t, ask.Data, worker.Human)
		if err != nil {
			return nil, err
		}
		outputs[i] = answerSlot{value: h, set: true}
		for _, tc := range st.clusters.order {
			if tc.approved || !tc.contains(g) {
				continue
			}
			if st.candidates[tc.kind][g] == h {
				tc.correct++
			} else {
				tc.incorrect++
			}
			p := stat.BinomPValueGreater(tc.correct, tc.correct+tc.incorrect, cfg.QualityRequirement)
			if p < alpha {
				tc.approved = true
			}
		}
	}
	st.taskNumber += len(asks)
	return finalize(outputs), nil
}

// runSequential2 delays approval until a cluster has accumulated
// SampleSize human comparisons; the single test then freezes the
// cluster whatever the outcome.
func (c *Client) runSequential2(ctx context.Context, asks []AskedQuestion, cfg Config) ([]string, error) {
	t := asks[0].Template
	st, err := c.seqState(MethodSequentialCTA2, t, cfg)
	if err != nil {
		return nil, err
	}
	alpha := cfg.significanceLevel()

	outputs := make([]answerSlot, len(asks))
	for i, ask := range asks {
		g := st.taskNumber + i
		for _, kind := range c.aiOrder {
			a, err := c.askAndWait(ctx, t, ask.Data, kind)
			if err != nil {
				return nil, err
			}
			st.candidates[kind] = append(st.candidates[kind], a)
			tc := st.clusters.ensure(kind, a)
			if tc.approved {
				if !outputs[i].set {
					outputs[i] = answerSlot{value: a, set: true}
				}
			} else {
				tc.add(g)
			}
		}
		if outputs[i].set {
			continue
		}
		h, err := c.askAndWait(ctx, t, ask.Data, worker.Human)
		if err != nil {
			return nil, err
		}
		outputs[i] = answerSlot{value: h, set: true}
		for _, tc := range st.clusters.order {
			if tc.checked || !tc.contains(g) {
				continue
			}
			if st.candidates[tc.kind][g] == h {
				tc.correct++
			} else {
				tc.incorrect++
			}
			if tc.correct+tc.incorrect >= cfg.SampleSize {
				p := stat.BinomPValueGreater(tc.correct, tc.correct+tc.incorrect, cfg.QualityRequirement)
				if p < alpha {
					tc.approved = true
				}
				tc.checked = true
			}
		}
	}
	st.taskNumber += len(asks)
	return finalize(outputs), nil
}

// runSequential3 is phase-aware: every call closes a phase over the
// newly submitted tasks, and within one resolution pass a human answer
// drawn for a phase may be reused once per other task of the same
// phase. Cluster statistics are rebuilt per call from a copy of the
// cumulative state; only the human draws and the phase reuse pools
// persist.
func (c *Client) runSequential3(ctx context.Context, asks []AskedQuestion, cfg Config) ([]string, error) {
	t := asks[0].Template
	st, err := c.seqState(MethodSequentialCTA3, t, cfg)
	if err != nil {
		return nil, err
	}
	alpha := cfg.significanceLevel()
	n := len(asks)

	// Ingest the new tasks into the cumulative state.
	for i, ask := range asks {
		g := st.taskNumber + i
		for _, kind := range c.aiOrder {
			a, err := c.askAndWait(ctx, t, ask.Data, kind)
			if err != nil {
				return nil, err
			}
			st.candidates[kind] = append(st.candidates[kind], a)
			st.clusters.ensure(kind, a).add(g)
		}
		st.humanCandidates = append(st.humanCandidates, answerSlot{})
		st.dataLists = append(st.dataLists, ask.Data)
	}
	st.taskNumber += n
	st.phases.addBoundary(st.taskNumber)

	// Resolve over the whole population with per-call copies of the
	// clusters and the reuse pools.
	outputs := make([]answerSlot, st.taskNumber)
	clusters := st.clusters.clone()
	phases := st.phases.clone()
	incomplete := make([]int, st.taskNumber)
	for i := range incomplete {
		incomplete[i] = i
	}

	for len(incomplete) > 0 {
		cand := incomplete[c.rng.Intn(len(incomplete))]
		boundary := phases.boundaryFor(cand)
		pool := phases.sets[boundary]

		var taskIndex int
		var h string
		if len(pool) > 0 {
			if _, ok := pool[cand]; ok {
				taskIndex = cand
			} else {
				taskIndex = randomMember(pool, c.rng)
			}
			delete(pool, taskIndex)
			h = st.humanCandidates[taskIndex].value
		} else {
			taskIndex = cand
			h, err = c.askAndWait(ctx, st.template, st.dataLists[taskIndex], worker.Human)
			if err != nil {
				return nil, err
			}
			st.humanCandidates[taskIndex] = answerSlot{value: h, set: true}
			st.dataLists[taskIndex] = nil
			// The fresh draw joins the persistent pool only; within
			// this pass it already answered its own task.
			st.phases.sets[boundary][taskIndex] = struct{}{}
		}

		incomplete = removeInt(incomplete, taskIndex)
		outputs[taskIndex] = answerSlot{value: h, set: true}

		for _, tc := range clusters.order {
			if tc.approved || !tc.contains(taskIndex) {
				continue
			}
			if st.candidates[tc.kind][taskIndex] == h {
				tc.correct++
			} else {
				tc.incorrect++
			}
			p := stat.BinomPValueGreater(tc.correct, tc.correct+tc.incorrect, cfg.QualityRequirement)
			if p < alpha {
				tc.approved = true
				for g := range tc.taskIndexes {
					if !outputs[g].set {
						outputs[g] = answerSlot{value: st.candidates[tc.kind][g], set: true}
					}
				}
			}
		}

		if allSet(outputs[st.taskNumber-n:]) {
			break
		}
	}
	return finalize(outputs[st.taskNumber-n:]), nil
}

// taskPhases maps phase boundaries to reuse pools. A task with global
// index i belongs to the phase of the smallest boundary strictly
// greater than i.
type taskPhases struct {
	boundaries []int
	sets       map[int]map[int]struct{}
}

func newTaskPhases() *taskPhases {
	return &taskPhases{sets: map[int]map[int]struct{}{}}
}

// addBoundary closes a phase at b with an empty reuse pool.
func (p *taskPhases) addBoundary(b int) {
	if _, ok := p.sets[b]; ok {
		return
	}
	at := sort.SearchInts(p.boundaries, b)
	p.boundaries = append(p.boundaries, 0)
	copy(p.boundaries[at+1:], p.boundaries[at:])
	p.boundaries[at] = b
	p.sets[b] = map[int]struct{}{}
}

// boundaryFor returns the boundary of the phase containing idx. The
// caller guarantees idx is below the last boundary.
func (p *taskPhases) boundaryFor(idx int) int {
	return p.boundaries[sort.SearchInts(p.boundaries, idx+1)]
}

// clone deep-copies the phase map.
func (p *taskPhases) clone() *taskPhases {
	cp := newTaskPhases()
	cp.boundaries = append([]int(nil), p.boundaries...)
	for b, set := range p.sets {
		s := make(map[int]struct{}, len(set))
		for i := range set {
			s[i] = struct{}{}
		}
		cp.sets[b] = s
	}
	return cp
}

// randomMember picks a uniformly random element of set. Keys are sorted
// first so the draw depends only on the session's random source.
func randomMember(set map[int]struct{}, rng *rand.Rand) int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys[rng.Intn(len(keys))]
}

// removeInt deletes the first occurrence of v from s.
func removeInt(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// allSet reports whether every slot is filled.
func allSet(slots []answerSlot) bool {
	for _, s := range slots {
		if !s.set {
			return false
		}
	}
	return true
}
