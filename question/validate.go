//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package question

import "fmt"

// Validate checks the template structure: node tags, answer type and
// select options. Returned errors wrap ErrInvalidQuestion.
func (t Template) Validate() error {
	for _, n := range t.Question {
		if err := n.validate(); err != nil {
			return err
		}
	}
	return t.Answer.validate()
}

// Validate checks an instantiated config the same way Template.Validate
// does, and additionally rejects unresolved slots.
func (c Config) Validate() error {
	for _, n := range c.Question {
		if err := n.validate(); err != nil {
			return err
		}
		if n.Value.IsSlot() || n.Src.IsSlot() {
			return fmt.Errorf("%w: config contains an unresolved slot", ErrInvalidQuestion)
		}
	}
	return c.Answer.validate()
}

func (n Node) validate() error {
	switch n.Tag {
	case TagH1, TagH2, TagH3, TagH4, TagH5, TagH6, TagP:
		if n.Value.IsZero() {
			return fmt.Errorf("%w: node %q has no value", ErrInvalidQuestion, n.Tag)
		}
	case TagImg:
		if n.Src.IsZero() {
			return fmt.Errorf("%w: img node has no src", ErrInvalidQuestion)
		}
	default:
		return fmt.Errorf("%w: unknown tag %q", ErrInvalidQuestion, n.Tag)
	}
	return nil
}

func (a AnswerSpec) validate() error {
	switch a.Type {
	case AnswerNumber, AnswerText:
		return nil
	case AnswerSelect:
		if len(a.Options) == 0 {
			return fmt.Errorf("%w: select answer has no options", ErrInvalidQuestion)
		}
		seen := make(map[string]struct{}, len(a.Options))
		for _, opt := range a.Options {
			if _, ok := seen[opt]; ok {
				return fmt.Errorf("%w: duplicate select option %q", ErrInvalidQuestion, opt)
			}
			seen[opt] = struct{}{}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown answer type %q", ErrInvalidQuestion, a.Type)
	}
}
