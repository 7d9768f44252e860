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
	"strings"
)

// instructionPreamble is shared by every AI worker so that models answer
// the way a crowdsourcing worker would.
const instructionPreamble = "Respond to questions in Markdown format in the same way as a crowdsourcing worker would, " +
	"providing accurate and concise answers according to the answer format below.\n" +
	"Write only the answer and no explanation, semicolon, etc. is needed.\n" +
	"You do not need to rely on crowdworkers for the accuracy of your answers, " +
	"so please provide answers of the highest possible standard.\n" +
	"answer format: "

// Instruction builds the system prompt for an AI worker given the answer
// format description, e.g. "number" or "select from [a b]".
func Instruction(format string) string {
	return instructionPreamble + format
}

// SelectFormat renders the answer-format description for select options.
func SelectFormat(options []string) string {
	return fmt.Sprintf("select from [%s]", strings.Join(options, ", "))
}
