//
// Tencent is pleased to support the open source community by making trpc-haio-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-haio-go is licensed under the Apache License Version 2.0.
//
//

// Package question defines question templates, their data-bound
// instantiation and the JSON wire shape shared with the answer cache.
package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidQuestion reports a malformed template or config: an unknown
// node tag, an unknown answer type, or empty/duplicate select options.
var ErrInvalidQuestion = errors.New("invalid question")

// NodeTag identifies a question node variant.
type NodeTag string

// Node tags. h1..h6 render as markdown headings, p as a paragraph and
// img as an inline image reference.
const (
	TagH1  NodeTag = "h1"
	TagH2  NodeTag = "h2"
	TagH3  NodeTag = "h3"
	TagH4  NodeTag = "h4"
	TagH5  NodeTag = "h5"
	TagH6  NodeTag = "h6"
	TagP   NodeTag = "p"
	TagImg NodeTag = "img"
)

// headingLevels maps heading tags to their markdown prefix length.
var headingLevels = map[NodeTag]int{
	TagH1: 1, TagH2: 2, TagH3: 3, TagH4: 4, TagH5: 5, TagH6: 6,
}

// Value is either a literal string or an integer slot index into a
// DataList. On the wire it is a JSON string or a JSON number.
type Value struct {
	literal string
	slot    int
	isSlot  bool
	present bool
}

// String returns a literal value.
func String(s string) Value {
	return Value{literal: s, present: true}
}

// Slot returns a slot-index value resolved at instantiation time.
func Slot(i int) Value {
	return Value{slot: i, isSlot: true, present: true}
}

// IsSlot reports whether the value is an unresolved slot index.
func (v Value) IsSlot() bool { return v.isSlot }

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return !v.present }

// Literal returns the literal string; empty for slot values.
func (v Value) Literal() string { return v.literal }

// SlotIndex returns the slot index; only meaningful when IsSlot is true.
func (v Value) SlotIndex() int { return v.slot }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isSlot {
		return json.Marshal(v.slot)
	}
	return json.Marshal(v.literal)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = String(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return fmt.Errorf("%w: slot index %q is not an integer", ErrInvalidQuestion, t.String())
		}
		*v = Slot(int(i))
	default:
		return fmt.Errorf("%w: value must be a string or a slot index", ErrInvalidQuestion)
	}
	return nil
}

// Node is one element of a question body. Heading and paragraph nodes
// carry Value; image nodes carry Src.
type Node struct {
	Tag   NodeTag
	Value Value
	Src   Value
}

// Heading builds a heading node of the given level (1..6).
func Heading(level int, v Value) Node {
	tag := NodeTag(fmt.Sprintf("h%d", level))
	return Node{Tag: tag, Value: v}
}

// Paragraph builds a paragraph node.
func Paragraph(v Value) Node { return Node{Tag: TagP, Value: v} }

// Image builds an image node referencing src.
func Image(src Value) Node { return Node{Tag: TagImg, Src: src} }

// nodeJSON is the wire form of a Node.
type nodeJSON struct {
	Tag   NodeTag `json:"tag"`
	Value *Value  `json:"value,omitempty"`
	Src   *Value  `json:"src,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	aux := nodeJSON{Tag: n.Tag}
	if n.Tag == TagImg {
		src := n.Src
		aux.Src = &src
	} else {
		value := n.Value
		aux.Value = &value
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var aux nodeJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.Tag = aux.Tag
	if aux.Value != nil {
		n.Value = *aux.Value
	} else {
		n.Value = Value{}
	}
	if aux.Src != nil {
		n.Src = *aux.Src
	} else {
		n.Src = Value{}
	}
	return nil
}

// AnswerType identifies the expected answer shape.
type AnswerType string

// Answer types.
const (
	AnswerNumber AnswerType = "number"
	AnswerText   AnswerType = "text"
	AnswerSelect AnswerType = "select"
)

// AnswerSpec describes the answer a question expects. Options is only
// meaningful for AnswerSelect.
type AnswerSpec struct {
	Type    AnswerType `json:"type"`
	Options []string   `json:"options,omitempty"`
}

// DataList is an ordered sequence of strings bound to slot indexes.
type DataList []string

// Template is an immutable description of a question. Slot values are
// resolved against a DataList by InsertData.
type Template struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Question    []Node     `json:"question"`
	Answer      AnswerSpec `json:"answer"`
}

// Config is a fully concrete question: a Template whose slots have all
// been resolved.
type Config Template

// clone returns a deep copy of the template.
func (t Template) clone() Template {
	out := t
	out.Question = make([]Node, len(t.Question))
	copy(out.Question, t.Question)
	if t.Answer.Options != nil {
		out.Answer.Options = make([]string, len(t.Answer.Options))
		copy(out.Answer.Options, t.Answer.Options)
	}
	return out
}

// InsertData instantiates t with d, replacing every slot index i with
// d[i]. The template itself is never mutated.
func InsertData(t Template, d DataList) (*Config, error) {
	cp := t.clone()
	for i := range cp.Question {
		var err error
		if cp.Question[i].Value, err = resolve(cp.Question[i].Value, d); err != nil {
			return nil, err
		}
		if cp.Question[i].Src, err = resolve(cp.Question[i].Src, d); err != nil {
			return nil, err
		}
	}
	cfg := Config(cp)
	return &cfg, nil
}

// resolve replaces a slot value with the referenced data-list entry.
func resolve(v Value, d DataList) (Value, error) {
	if !v.IsSlot() {
		return v, nil
	}
	if v.slot < 0 || v.slot >= len(d) {
		return Value{}, fmt.Errorf("%w: slot index %d out of range for data list of length %d",
			ErrInvalidQuestion, v.slot, len(d))
	}
	return String(d[v.slot]), nil
}
