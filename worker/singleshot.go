//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package worker

import "sync"

// SingleShot is the pending-answer map embedded by synchronous AI
// workers: at most one outstanding query per question fingerprint. The
// map is empty iff no query is outstanding.
type SingleShot struct {
	mu      sync.Mutex
	pending map[string]string
}

// Begin rejects a duplicate outstanding fingerprint with
// ErrAlreadyAsking. The entry is created by Complete once the answer is
// available, so a failed query leaves no trace.
func (s *SingleShot) Begin(fp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[fp]; ok {
		return ErrAlreadyAsking
	}
	return nil
}

// Complete publishes the answer for fp.
func (s *SingleShot) Complete(fp, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		s.pending = make(map[string]string)
	}
	s.pending[fp] = answer
}

// Done reports whether fp has a published answer; an unknown fingerprint
// fails with ErrNeverAsked.
func (s *SingleShot) Done(fp string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[fp]; !ok {
		return false, ErrNeverAsked
	}
	return true, nil
}

// Take removes and returns the answer for fp; taking twice fails with
// ErrNeverAsked.
func (s *SingleShot) Take(fp string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answer, ok := s.pending[fp]
	if !ok {
		return "", ErrNeverAsked
	}
	delete(s.pending, fp)
	return answer, nil
}
