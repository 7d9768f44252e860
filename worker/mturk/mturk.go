//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package mturk implements the human worker backed by Amazon Mechanical
// Turk. Submit publishes a HIT, IsDone reports whether it has been
// worked on, and Take extracts the submitted answer.
package mturk

import (
	"context"
	"encoding/xml"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awsmturk "github.com/aws/aws-sdk-go/service/mturk"
	"github.com/aws/aws-sdk-go/service/mturk/mturkiface"

	"trpc.group/trpc-go/trpc-haio-go/log"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// Worker posts questions to Mechanical Turk. The handle returned by
// Submit is the HIT id. Unlike the AI workers the same question may be
// in flight several times at once.
type Worker struct {
	api  mturkiface.MTurkAPI
	opts options

	mu    sync.Mutex
	asked map[string]struct{}
}

var _ worker.Worker = (*Worker)(nil)

// New creates a Mechanical Turk worker. Credentials come from the
// AWS_ACCESS_KEY and AWS_SECRET_ACCESS_KEY environment variables unless
// overridden by options.
func New(opts ...Option) (*Worker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	w := &Worker{
		api:   o.api,
		opts:  o,
		asked: make(map[string]struct{}),
	}
	if w.api == nil {
		cfg := &aws.Config{
			Region:   aws.String(o.region),
			Endpoint: aws.String(o.endpoint),
		}
		if o.accessKey != "" {
			cfg.Credentials = credentials.NewStaticCredentials(o.accessKey, o.secretKey, "")
		}
		sess, err := session.NewSession(cfg)
		if err != nil {
			return nil, fmt.Errorf("mturk: create session: %w", err)
		}
		w.api = awsmturk.New(sess)
	}
	return w, nil
}

// Kind implements worker.Worker.
func (w *Worker) Kind() worker.Kind { return worker.Human }

// Submit publishes the question as a HIT and returns the HIT id.
func (w *Worker) Submit(ctx context.Context, qc *question.Config) (string, error) {
	if err := qc.Validate(); err != nil {
		return "", err
	}
	form, err := renderForm(qc)
	if err != nil {
		return "", err
	}
	out, err := w.api.CreateHITWithContext(ctx, &awsmturk.CreateHITInput{
		Title:                       aws.String(qc.Title),
		Description:                 aws.String(qc.Description),
		Question:                    aws.String(wrapHTMLQuestion(form)),
		Reward:                      aws.String(w.opts.reward),
		MaxAssignments:              aws.Int64(w.opts.maxAssignments),
		LifetimeInSeconds:           aws.Int64(w.opts.lifetimeSeconds),
		AssignmentDurationInSeconds: aws.Int64(w.opts.assignmentSeconds),
	})
	if err != nil {
		return "", fmt.Errorf("mturk: create HIT: %w", err)
	}
	hitID := aws.StringValue(out.HIT.HITId)
	w.mu.Lock()
	w.asked[hitID] = struct{}{}
	w.mu.Unlock()
	log.Debugf("mturk worker created HIT %s", hitID)
	return hitID, nil
}

// IsDone reports whether the HIT has been completed by a crowd worker.
func (w *Worker) IsDone(ctx context.Context, handle string) (bool, error) {
	if err := w.known(handle); err != nil {
		return false, err
	}
	out, err := w.api.GetHITWithContext(ctx, &awsmturk.GetHITInput{
		HITId: aws.String(handle),
	})
	if err != nil {
		return false, fmt.Errorf("mturk: get HIT %s: %w", handle, err)
	}
	switch aws.StringValue(out.HIT.HITStatus) {
	case awsmturk.HITStatusReviewable, awsmturk.HITStatusReviewing:
		return true, nil
	}
	return false, nil
}

// Take returns the submitted answer for a completed HIT. The answer is
// returned verbatim as typed by the crowd worker.
func (w *Worker) Take(ctx context.Context, handle string) (string, error) {
	if err := w.known(handle); err != nil {
		return "", err
	}
	out, err := w.api.ListAssignmentsForHITWithContext(ctx, &awsmturk.ListAssignmentsForHITInput{
		HITId: aws.String(handle),
	})
	if err != nil {
		return "", fmt.Errorf("mturk: list assignments for HIT %s: %w", handle, err)
	}
	for _, a := range out.Assignments {
		answer, err := parseAnswer(aws.StringValue(a.Answer))
		if err != nil {
			return "", err
		}
		w.mu.Lock()
		delete(w.asked, handle)
		w.mu.Unlock()
		return answer, nil
	}
	return "", worker.ErrMissingAnswer
}

func (w *Worker) known(handle string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.asked[handle]; !ok {
		return worker.ErrNeverAsked
	}
	return nil
}

// questionFormAnswers mirrors the answer document attached to an
// assignment.
type questionFormAnswers struct {
	Answers []struct {
		QuestionIdentifier string `xml:"QuestionIdentifier"`
		FreeText           string `xml:"FreeText"`
	} `xml:"Answer"`
}

// parseAnswer extracts the first free-text field from the assignment's
// answer document.
func parseAnswer(doc string) (string, error) {
	var parsed questionFormAnswers
	if err := xml.Unmarshal([]byte(doc), &parsed); err != nil {
		return "", fmt.Errorf("mturk: parse answer document: %w", err)
	}
	if len(parsed.Answers) == 0 {
		return "", worker.ErrMissingAnswer
	}
	return parsed.Answers[0].FreeText, nil
}
