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

	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// runSimple routes every ask up front so worker clients can overlap
// request emission, then collects in registration order.
func (c *Client) runSimple(ctx context.Context, asks []AskedQuestion, kind worker.Kind) ([]string, error) {
	rqs := make([]*requestedQuestion, len(asks))
	for i, ask := range asks {
		rq, err := c.ask(ctx, ask.Template, ask.Data, kind)
		if err != nil {
			return nil, err
		}
		rqs[i] = rq
	}
	out := make([]string, len(asks))
	for i, rq := range rqs {
		answer, err := c.getAnswer(ctx, rq)
		if err != nil {
			return nil, err
		}
		out[i] = answer
	}
	return out, nil
}
