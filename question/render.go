//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package question

import (
	"fmt"
	"strings"
)

// Markdown renders the question body as markdown text. Image sources are
// not inlined; they are returned separately so each worker can pack them
// in its own transport format.
func (c Config) Markdown() (body string, images []string, err error) {
	var sb strings.Builder
	for _, n := range c.Question {
		switch {
		case n.Tag == TagP:
			sb.WriteString(n.Value.Literal())
			sb.WriteByte('\n')
		case n.Tag == TagImg:
			images = append(images, n.Src.Literal())
		default:
			level, ok := headingLevels[n.Tag]
			if !ok {
				return "", nil, fmt.Errorf("%w: unknown tag %q", ErrInvalidQuestion, n.Tag)
			}
			sb.WriteString(strings.Repeat("#", level))
			sb.WriteByte(' ')
			sb.WriteString(n.Value.Literal())
			sb.WriteByte('\n')
		}
	}
	return sb.String(), images, nil
}
