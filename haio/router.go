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
	"time"

	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-haio-go/fingerprint"
	"trpc.group/trpc-go/trpc-haio-go/log"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/telemetry"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// requestedQuestion binds one logical ask to either a cache reservation
// or an outstanding worker handle.
type requestedQuestion struct {
	template question.Template
	data     question.DataList
	kind     worker.Kind
	cacheID  string
	handle   string
	// hasHandle is false for cache hits; the answer is read at cacheID.
	hasHandle bool
}

// ask resolves (t, d, kind) into a requestedQuestion: a cache hit
// reserves the record, a miss dispatches to the worker. The cache id is
// always added to the session reservation set.
func (c *Client) ask(ctx context.Context, t question.Template, d question.DataList, kind worker.Kind) (*requestedQuestion, error) {
	w, err := c.workerFor(kind)
	if err != nil {
		return nil, err
	}
	reserved, err := c.reservations(t, d)
	if err != nil {
		return nil, err
	}
	rq := &requestedQuestion{template: t, data: d, kind: kind}
	id, rec, err := c.store.FindUnused(t, d, kind, reserved)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		rq.cacheID = id
		log.Debugf("ask: cache hit for kind=%s id=%s", kind, id)
	} else {
		rq.cacheID = fingerprint.UID()
		qc, err := question.InsertData(t, d)
		if err != nil {
			return nil, err
		}
		rq.handle, err = w.Submit(ctx, qc)
		if err != nil {
			return nil, err
		}
		rq.hasHandle = true
	}
	reserved[rq.cacheID] = struct{}{}
	return rq, nil
}

// getAnswer collects the answer bound to rq. Cache hits read the
// reserved record; worker dispatches poll until done, then persist the
// fresh answer under the reserved id.
func (c *Client) getAnswer(ctx context.Context, rq *requestedQuestion) (string, error) {
	if !rq.hasHandle {
		return c.store.Get(rq.template, rq.data, rq.cacheID)
	}
	w, err := c.workerFor(rq.kind)
	if err != nil {
		return "", err
	}
	for {
		done, err := w.IsDone(ctx, rq.handle)
		if err != nil {
			return "", err
		}
		if done {
			break
		}
		if err := pollSleep(ctx, c.pollInterval); err != nil {
			return "", err
		}
	}
	answer, err := w.Take(ctx, rq.handle)
	if err != nil {
		return "", err
	}
	if err := c.store.Put(rq.template, rq.data, rq.kind, rq.cacheID, answer); err != nil {
		return "", err
	}
	return answer, nil
}

// askAndWait is the route-then-collect composition used by the engines.
func (c *Client) askAndWait(ctx context.Context, t question.Template, d question.DataList, kind worker.Kind) (string, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "haio.ask",
		trace.WithAttributes(telemetry.KeyWorkerKind.String(string(kind))))
	defer span.End()
	rq, err := c.ask(ctx, t, d, kind)
	if err != nil {
		return "", err
	}
	span.SetAttributes(telemetry.KeyCacheHit.Bool(!rq.hasHandle))
	return c.getAnswer(ctx, rq)
}

// pollSleep waits for d or until ctx is cancelled.
func pollSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
