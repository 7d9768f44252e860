//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package gemini implements the AI worker backed by the Gemini API.
// Select answers use an enum response schema; number and text answers
// use typed JSON schemas.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"google.golang.org/genai"

	"trpc.group/trpc-go/trpc-haio-go/fingerprint"
	"trpc.group/trpc-go/trpc-haio-go/log"
	"trpc.group/trpc-go/trpc-haio-go/question"
	"trpc.group/trpc-go/trpc-haio-go/worker"
)

// defaultModel is the model queried when none is configured.
const defaultModel = "gemini-1.5-flash-latest"

// generateFunc issues one content-generation call. It is a field so
// tests can stub the API.
type generateFunc func(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error)

// Worker answers questions through the Gemini API. It is single-shot:
// Submit completes the query synchronously and the handle is the
// question fingerprint.
type Worker struct {
	worker.SingleShot

	generate   generateFunc
	model      string
	httpClient *http.Client
}

var _ worker.Worker = (*Worker)(nil)

// New creates a Gemini worker. Credentials come from the environment
// (GEMINI_API_KEY / GOOGLE_API_KEY) unless overridden by options.
func New(ctx context.Context, opts ...Option) (*Worker, error) {
	o := defaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	w := &Worker{
		generate:   o.generate,
		model:      o.model,
		httpClient: o.httpClient,
	}
	if w.generate == nil {
		client, err := genai.NewClient(ctx, o.clientConfig)
		if err != nil {
			return nil, fmt.Errorf("gemini: create client: %w", err)
		}
		w.generate = func(
			ctx context.Context,
			model string,
			contents []*genai.Content,
			config *genai.GenerateContentConfig,
		) (*genai.GenerateContentResponse, error) {
			return client.Models.GenerateContent(ctx, model, contents, config)
		}
	}
	return w, nil
}

// Kind implements worker.Worker.
func (w *Worker) Kind() worker.Kind { return worker.Gemini }

// Submit dispatches the question and returns its fingerprint as the
// handle.
func (w *Worker) Submit(ctx context.Context, qc *question.Config) (string, error) {
	if err := qc.Validate(); err != nil {
		return "", err
	}
	fp, err := fingerprint.Of(qc)
	if err != nil {
		return "", err
	}
	if err := w.Begin(fp); err != nil {
		return "", err
	}
	contents, config, err := w.buildRequest(ctx, qc)
	if err != nil {
		return "", err
	}
	resp, err := w.generate(ctx, w.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", worker.ErrEmptyResponse
	}
	answer, err := decodeAnswer(text, qc.Answer)
	if err != nil {
		return "", err
	}
	normalized, err := worker.Normalize(answer, qc.Answer)
	if err != nil {
		return "", err
	}
	log.Debugf("gemini worker answered question %s", fp)
	w.Complete(fp, normalized)
	return fp, nil
}

// IsDone implements worker.Worker; always true for a known handle.
func (w *Worker) IsDone(_ context.Context, handle string) (bool, error) {
	return w.Done(handle)
}

// Take implements worker.Worker.
func (w *Worker) Take(_ context.Context, handle string) (string, error) {
	return w.SingleShot.Take(handle)
}

// buildRequest assembles the content parts and generation config for
// the question.
func (w *Worker) buildRequest(ctx context.Context, qc *question.Config) ([]*genai.Content, *genai.GenerateContentConfig, error) {
	body, images, err := qc.Markdown()
	if err != nil {
		return nil, nil, err
	}
	format, config, err := answerConfig(qc.Answer)
	if err != nil {
		return nil, nil, err
	}
	config.SystemInstruction = genai.NewContentFromText(worker.Instruction(format), genai.RoleUser)

	parts := []*genai.Part{genai.NewPartFromText(body)}
	for _, src := range images {
		data, mime, err := w.fetchImage(ctx, src)
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, genai.NewPartFromBytes(data, mime))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	return contents, config, nil
}

// answerConfig maps an answer spec to the prompt's format description
// and the typed response schema.
func answerConfig(spec question.AnswerSpec) (string, *genai.GenerateContentConfig, error) {
	switch spec.Type {
	case question.AnswerNumber:
		return "number", &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   &genai.Schema{Type: genai.TypeNumber},
		}, nil
	case question.AnswerText:
		return "string", &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   &genai.Schema{Type: genai.TypeString},
		}, nil
	case question.AnswerSelect:
		return worker.SelectFormat(spec.Options), &genai.GenerateContentConfig{
			ResponseMIMEType: "text/x.enum",
			ResponseSchema:   &genai.Schema{Type: genai.TypeString, Enum: spec.Options},
		}, nil
	default:
		return "", nil, fmt.Errorf("%w: unknown answer type %q", question.ErrInvalidQuestion, spec.Type)
	}
}

// fetchImage downloads an image source so it can be inlined in the
// request.
func (w *Worker) fetchImage(ctx context.Context, src string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", fmt.Errorf("gemini: fetch image %s: %w", src, err)
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("gemini: fetch image %s: %w", src, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("gemini: read image %s: %w", src, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// decodeAnswer unwraps the typed JSON payloads; enum responses arrive
// as plain text.
func decodeAnswer(text string, spec question.AnswerSpec) (string, error) {
	switch spec.Type {
	case question.AnswerNumber:
		var f float64
		if err := json.Unmarshal([]byte(text), &f); err != nil {
			return "", fmt.Errorf("gemini: decode number answer %q: %w", text, err)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case question.AnswerText:
		var s string
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			// Some models reply with the bare string.
			return text, nil
		}
		return s, nil
	default:
		return text, nil
	}
}
