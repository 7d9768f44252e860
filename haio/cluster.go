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
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// taskCluster groups the tasks for which one AI worker gave one answer.
type taskCluster struct {
	kind   worker.Kind
	answer string

	taskIndexes map[int]struct{}

	approved bool
	// checked marks a cluster whose single fixed-size test already ran
	// (sequential_cta_2 only).
	checked bool

	correct   int
	incorrect int
}

func (tc *taskCluster) add(i int)           { tc.taskIndexes[i] = struct{}{} }
func (tc *taskCluster) contains(i int) bool { _, ok := tc.taskIndexes[i]; return ok }
func (tc *taskCluster) size() int           { return len(tc.taskIndexes) }

// clone returns a deep copy of the cluster.
func (tc *taskCluster) clone() *taskCluster {
	cp := *tc
	cp.taskIndexes = make(map[int]struct{}, len(tc.taskIndexes))
	for i := range tc.taskIndexes {
		cp.taskIndexes[i] = struct{}{}
	}
	return &cp
}

// clusterSet is an insertion-ordered collection of clusters keyed by
// (worker kind, answer).
type clusterSet struct {
	byKey map[string]*taskCluster
	order []*taskCluster
}

func newClusterSet() *clusterSet {
	return &clusterSet{byKey: map[string]*taskCluster{}}
}

// clusterKey builds the (kind, answer) map key. The NUL separator keeps
// distinct pairs from colliding.
func clusterKey(kind worker.Kind, answer string) string {
	return string(kind) + "\x00" + answer
}

// ensure returns the cluster for (kind, answer), creating it if absent.
func (s *clusterSet) ensure(kind worker.Kind, answer string) *taskCluster {
	key := clusterKey(kind, answer)
	if tc, ok := s.byKey[key]; ok {
		return tc
	}
	tc := &taskCluster{
		kind:        kind,
		answer:      answer,
		taskIndexes: map[int]struct{}{},
	}
	s.byKey[key] = tc
	s.order = append(s.order, tc)
	return tc
}

// clone returns a deep copy preserving insertion order.
func (s *clusterSet) clone() *clusterSet {
	cp := newClusterSet()
	for _, tc := range s.order {
		c := tc.clone()
		cp.byKey[clusterKey(c.kind, c.answer)] = c
		cp.order = append(cp.order, c)
	}
	return cp
}

// answerSlot is one output position; set distinguishes an empty answer
// from an unset one.
type answerSlot struct {
	value string
	set   bool
}

// finalize converts filled slots to the plain answer list.
func finalize(slots []answerSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.value
	}
	return out
}
