// Package puzzle defines the puzzle contract, answer payloads, and the
// registry of built-in expedition puzzles.
package puzzle

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"
)

// Description is the metadata a puzzle exposes for listing.
type Description struct {
	Name    string `json:"name"`
	Summary string `json:"description"`
}

// Result is the outcome of a solve attempt. Message is always set, solved
// or not, so callers can surface the hint text.
type Result struct {
	Solved  bool   `json:"ok"`
	Message string `json:"message"`
}

// Puzzle is implemented by every registered challenge.
type Puzzle interface {
	Name() string
	Describe() Description
	Solve(ctx context.Context, answer Answer) (Result, error)
}

// AnswerKind discriminates the payload kinds an answer can carry.
type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerInt
	AnswerBytes
	AnswerString
)

// Answer is a solve payload: an int, a byte string, a text string, or
// nothing at all. Puzzles switch on the kind; the CLI and HTTP layers do
// the coercion from raw input.
type Answer struct {
	kind AnswerKind
	n    int
	b    []byte
	s    string
}

// IntAnswer wraps an integer payload.
func IntAnswer(n int) Answer { return Answer{kind: AnswerInt, n: n} }

// BytesAnswer wraps a byte payload.
func BytesAnswer(b []byte) Answer { return Answer{kind: AnswerBytes, b: b} }

// StringAnswer wraps a text payload.
func StringAnswer(s string) Answer { return Answer{kind: AnswerString, s: s} }

// Kind returns the payload kind.
func (a Answer) Kind() AnswerKind { return a.kind }

// Int returns the integer payload, if present.
func (a Answer) Int() (int, bool) { return a.n, a.kind == AnswerInt }

// Bytes returns the byte payload, if present.
func (a Answer) Bytes() ([]byte, bool) { return a.b, a.kind == AnswerBytes }

// Str returns the text payload, if present.
func (a Answer) Str() (string, bool) { return a.s, a.kind == AnswerString }

// String renders the answer for display and persistence.
func (a Answer) String() string {
	switch a.kind {
	case AnswerInt:
		return strconv.Itoa(a.n)
	case AnswerBytes:
		return hex.EncodeToString(a.b)
	case AnswerString:
		return a.s
	default:
		return "<none>"
	}
}

// ParseAnswer coerces raw CLI/HTTP input into an answer: integer first,
// then even-length hex into bytes, otherwise the raw string survives.
func ParseAnswer(raw string) Answer {
	if n, err := strconv.Atoi(raw); err == nil {
		return IntAnswer(n)
	}
	s := strings.TrimSpace(raw)
	if len(s) > 0 && len(s)%2 == 0 && isHex(s) {
		if b, err := hex.DecodeString(s); err == nil {
			return BytesAnswer(b)
		}
	}
	return StringAnswer(raw)
}

func isHex(s string) bool {
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

// unsupported builds the standard refusal for an answer kind a puzzle does
// not accept.
func unsupported() Result {
	return Result{Solved: false, Message: "Unsupported answer type"}
}
