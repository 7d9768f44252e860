//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

package mturk

import (
	"fmt"
	"html"
	"strings"

	"trpc.group/trpc-go/trpc-haio-go/question"
)

const crowdElementsScript = `<script src="https://assets.crowd.aws/crowd-html-elements.js"></script>`

// htmlQuestionEnvelope is the XML wrapper MTurk expects around an HTML
// question. The %s receives the already escaped HTML content.
const htmlQuestionEnvelope = `<HTMLQuestion xmlns="http://mechanicalturk.amazonaws.com/AWSMechanicalTurkDataSchemas/2011-11-11/HTMLQuestion.xsd">
<HTMLContent><![CDATA[%s]]></HTMLContent>
<FrameHeight>0</FrameHeight>
</HTMLQuestion>`

// renderForm builds the crowd-html-elements form for the question.
func renderForm(qc *question.Config) (string, error) {
	var b strings.Builder
	b.WriteString(crowdElementsScript)
	b.WriteString("\n<crowd-form answer-format=\"flatten-objects\">\n")
	for _, node := range qc.Question {
		line, err := renderNode(node)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	input, err := renderInput(qc.Answer)
	if err != nil {
		return "", err
	}
	b.WriteString(input)
	b.WriteString("\n</crowd-form>")
	return b.String(), nil
}

func renderNode(node question.Node) (string, error) {
	if node.Tag == question.TagImg {
		return fmt.Sprintf(`<img src=%q style="max-width: 100%%">`, node.Src.Literal()), nil
	}
	text := html.EscapeString(node.Value.Literal())
	return fmt.Sprintf("<%s>%s</%s>", node.Tag, text, node.Tag), nil
}

func renderInput(spec question.AnswerSpec) (string, error) {
	switch spec.Type {
	case question.AnswerText:
		return `<crowd-input name="answer" placeholder="type your answer here" required></crowd-input>`, nil
	case question.AnswerNumber:
		return `<crowd-input name="answer" type="number" placeholder="type your answer here" required></crowd-input>`, nil
	case question.AnswerSelect:
		var b strings.Builder
		b.WriteString(`<select name="answer" required>`)
		b.WriteString("\n")
		for _, opt := range spec.Options {
			escaped := html.EscapeString(opt)
			fmt.Fprintf(&b, "<option value=%q>%s</option>\n", escaped, escaped)
		}
		b.WriteString("</select>")
		return b.String(), nil
	default:
		return "", fmt.Errorf("%w: unknown answer type %q", question.ErrInvalidQuestion, spec.Type)
	}
}

// wrapHTMLQuestion embeds the form in the HTMLQuestion XML envelope.
func wrapHTMLQuestion(form string) string {
	return fmt.Sprintf(htmlQuestionEnvelope, form)
}
