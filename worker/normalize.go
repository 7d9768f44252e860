//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package worker

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"trpc.group/trpc-go/trpc-haio-go/question"
)

// forceChoiceThreshold is the minimum similarity for a fuzzy option
// match; below it the first option is used.
const forceChoiceThreshold = 0.6

// Normalize coerces a raw worker answer to the template's answer spec:
// select answers snap to the closest option, number answers must parse as
// a finite decimal, text answers pass through verbatim.
func Normalize(raw string, spec question.AnswerSpec) (string, error) {
	if raw == "" {
		return "", ErrEmptyResponse
	}
	switch spec.Type {
	case question.AnswerSelect:
		return ForceChoice(raw, spec.Options), nil
	case question.AnswerNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return "", fmt.Errorf("answer %q is not a number: %w", raw, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", fmt.Errorf("answer %q is not a finite number", raw)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case question.AnswerText:
		return raw, nil
	default:
		return "", fmt.Errorf("%w: unknown answer type %q", question.ErrInvalidQuestion, spec.Type)
	}
}

// ForceChoice snaps input to the closest option by edit-distance
// similarity, falling back to the first option when nothing passes the
// threshold.
func ForceChoice(input string, options []string) string {
	if len(options) == 0 {
		return input
	}
	best := options[0]
	bestScore := 0.0
	for _, opt := range options {
		if s := similarity(input, opt); s > bestScore {
			best, bestScore = opt, s
		}
	}
	if bestScore < forceChoiceThreshold {
		return options[0]
	}
	return best
}

// similarity maps levenshtein distance to [0,1]; 1 is an exact match.
func similarity(a, b string) float64 {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return 1
	}
	longest := max(len([]rune(la)), len([]rune(lb)))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(la, lb)
	return 1 - float64(d)/float64(longest)
}
