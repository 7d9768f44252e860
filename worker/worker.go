//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package worker defines the uniform asynchronous contract over the
// heterogeneous answer back-ends: a human crowdsourcing marketplace and
// one or more AI model workers.
package worker

import (
	"context"
	"time"

	"trpc.group/trpc-go/trpc-haio-go/question"
)

// Kind is the discriminated identity of a back-end.
type Kind string

// Registered worker kinds. Every session holds exactly one Human worker;
// the AI kinds are optional.
const (
	Human  Kind = "human"
	OpenAI Kind = "openai"
	Gemini Kind = "gemini"
	Llama  Kind = "llama"
	Claude Kind = "claude"
)

// DefaultPollInterval is the cooperative delay between IsDone polls while
// waiting for an asynchronous worker. Tests drive it to zero.
const DefaultPollInterval = 5 * time.Second

// Worker is a question back-end. Submit dispatches a task and returns an
// opaque handle; IsDone reports completion; Take removes and returns the
// result. A second Take on the same handle fails with ErrNeverAsked.
type Worker interface {
	Kind() Kind
	Submit(ctx context.Context, qc *question.Config) (string, error)
	IsDone(ctx context.Context, handle string) (bool, error)
	Take(ctx context.Context, handle string) (string, error)
}

// AskAndWait submits qc to w and polls until the answer is available,
// sleeping pollInterval between polls.
func AskAndWait(ctx context.Context, w Worker, qc *question.Config, pollInterval time.Duration) (string, error) {
	handle, err := w.Submit(ctx, qc)
	if err != nil {
		return "", err
	}
	for {
		done, err := w.IsDone(ctx, handle)
		if err != nil {
			return "", err
		}
		if done {
			break
		}
		if err := sleep(ctx, pollInterval); err != nil {
			return "", err
		}
	}
	return w.Take(ctx, handle)
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
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
