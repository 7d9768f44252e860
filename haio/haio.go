//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package haio is the session façade of the hybrid Human+AI
// question-answering orchestrator. A Client binds one human worker and
// any number of AI workers to a persistent answer cache and runs
// batches of questions under an execution policy that decides, per
// task, whether an AI answer may stand in for a human one.
package haio

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-haio-go/cache"
	"trpc.group/trpc-go/trpc-haio-go/fingerprint"
	"trpc.group/trpc-go/trpc-haio-go/log"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/telemetry"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// AskedQuestion is one registered question: a template plus the data
// list that instantiates it.
type AskedQuestion struct {
	Template question.Template
	Data     question.DataList
}

// MakeAsk builds an AskedQuestion record. It performs no I/O.
func MakeAsk(t question.Template, d question.DataList) AskedQuestion {
	return AskedQuestion{Template: t, Data: d}
}

// Client is a single-caller session. It is not safe for concurrent use;
// the engines are sequential by design.
type Client struct {
	human   worker.Worker
	ai      map[worker.Kind]worker.Worker
	aiOrder []worker.Kind

	store        *cache.Store
	pollInterval time.Duration
	rng          *rand.Rand

	// used holds the session's cache reservations,
	// template fp -> data fp -> reserved record ids.
	used map[string]map[string]map[string]struct{}

	// seq holds the persistent engine state of the sequential methods,
	// keyed by method and parameter signature.
	seq map[string]*sequentialState
}

// New creates a session around the required human worker.
func New(human worker.Worker, opts ...Option) (*Client, error) {
	if human == nil || human.Kind() != worker.Human {
		return nil, fmt.Errorf("%w: a human worker is required", ErrInvalidClient)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Client{
		human:        human,
		ai:           map[worker.Kind]worker.Worker{},
		store:        cache.NewStore(o.cacheDir),
		pollInterval: o.pollInterval,
		rng:          rand.New(o.randSource),
		used:         map[string]map[string]map[string]struct{}{},
		seq:          map[string]*sequentialState{},
	}
	for _, w := range o.aiWorkers {
		kind := w.Kind()
		if kind == worker.Human {
			return nil, fmt.Errorf("%w: %s is not an AI worker kind", ErrInvalidClient, kind)
		}
		if _, dup := c.ai[kind]; dup {
			return nil, fmt.Errorf("%w: duplicate AI worker kind %s", ErrInvalidClient, kind)
		}
		c.ai[kind] = w
		c.aiOrder = append(c.aiOrder, kind)
	}
	return c, nil
}

// AIKinds returns the registered AI worker kinds in registration order.
func (c *Client) AIKinds() []worker.Kind {
	return append([]worker.Kind(nil), c.aiOrder...)
}

// SubmitOne asks one question to one worker kind and waits for the
// answer, going through the cache.
func (c *Client) SubmitOne(ctx context.Context, t question.Template, d question.DataList, kind worker.Kind) (string, error) {
	return c.askAndWait(ctx, t, d, kind)
}

// WaitOne resolves a single ask with cfg.Client.
func (c *Client) WaitOne(ctx context.Context, ask AskedQuestion, cfg Config) (string, error) {
	return c.askAndWait(ctx, ask.Template, ask.Data, cfg.Client)
}

// Wait resolves a batch of asks under the configured execution policy
// and returns one answer per ask, in registration order.
func (c *Client) Wait(ctx context.Context, asks []AskedQuestion, cfg Config) ([]string, error) {
	if len(asks) == 0 {
		return nil, nil
	}
	if err := c.checkSameTemplate(asks); err != nil {
		return nil, err
	}
	method := cfg.method()

	ctx, span := telemetry.Tracer.Start(ctx, "haio.wait", trace.WithAttributes(
		telemetry.KeyMethod.String(string(method)),
		telemetry.KeyBatchSize.Int(len(asks)),
	))
	defer span.End()
	log.Debugf("wait: method=%s batch=%d", method, len(asks))

	switch method {
	case MethodSimple:
		if _, err := c.workerFor(cfg.Client); err != nil {
			return nil, err
		}
		return c.runSimple(ctx, asks, cfg.Client)
	case MethodCTA:
		if err := cfg.validateStatistical(asks[0].Template); err != nil {
			return nil, err
		}
		return c.runCTA(ctx, asks, cfg)
	case MethodGTA:
		if err := cfg.validateStatistical(asks[0].Template); err != nil {
			return nil, err
		}
		if cfg.iteration() <= 0 {
			return nil, fmt.Errorf("%w: iteration must be positive", ErrInvalidParameter)
		}
		return c.runGTA(ctx, asks, cfg)
	case MethodSequentialCTA1:
		if err := cfg.validateStatistical(asks[0].Template); err != nil {
			return nil, err
		}
		return c.runSequential1(ctx, asks, cfg)
	case MethodSequentialCTA2:
		if err := cfg.validateStatistical(asks[0].Template); err != nil {
			return nil, err
		}
		if cfg.SampleSize <= 0 {
			return nil, fmt.Errorf("%w: sample size must be positive", ErrInvalidParameter)
		}
		return c.runSequential2(ctx, asks, cfg)
	case MethodSequentialCTA3:
		if err := cfg.validateStatistical(asks[0].Template); err != nil {
			return nil, err
		}
		return c.runSequential3(ctx, asks, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
}

// checkSameTemplate verifies every ask shares the first ask's template.
func (c *Client) checkSameTemplate(asks []AskedQuestion) error {
	first, err := fingerprint.Of(asks[0].Template)
	if err != nil {
		return err
	}
	for i := 1; i < len(asks); i++ {
		fp, err := fingerprint.Of(asks[i].Template)
		if err != nil {
			return err
		}
		if fp != first {
			return ErrMixedTemplates
		}
	}
	return nil
}

// workerFor resolves a worker kind against the session's registry.
func (c *Client) workerFor(kind worker.Kind) (worker.Worker, error) {
	if kind == worker.Human {
		return c.human, nil
	}
	if w, ok := c.ai[kind]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: no worker registered for kind %q", ErrInvalidClient, kind)
}

// reservations returns the session reservation set for (t, d), creating
// it on first use.
func (c *Client) reservations(t question.Template, d question.DataList) (map[string]struct{}, error) {
	tfp, err := fingerprint.Of(t)
	if err != nil {
		return nil, err
	}
	dfp, err := fingerprint.Of(d)
	if err != nil {
		return nil, err
	}
	byData, ok := c.used[tfp]
	if !ok {
		byData = map[string]map[string]struct{}{}
		c.used[tfp] = byData
	}
	set, ok := byData[dfp]
	if !ok {
		set = map[string]struct{}{}
		byData[dfp] = set
	}
	return set, nil
}
