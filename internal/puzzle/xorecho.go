package puzzle

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"finaltrace/internal/cryptoutil"
)

func init() {
	defaultRegistry.MustRegister(&XOREchoPuzzle{})
}

// xorEchoBlob is the base64 challenge blob players XOR against their key.
const xorEchoBlob = "SGVsbG8sIEV4cGVkaXRpb24gMzMh"

// XOREchoPuzzle reveals a phrase when the challenge blob is XORed with the
// right repeating key. Keys arrive as raw bytes or as hex strings.
type XOREchoPuzzle struct{}

func (p *XOREchoPuzzle) Name() string { return "xor-echo" }

func (p *XOREchoPuzzle) Describe() Description {
	return Description{
		Name:    p.Name(),
		Summary: "XOR the provided key with the challenge blob to reveal a phrase.",
	}
}

func (p *XOREchoPuzzle) Solve(ctx context.Context, answer Answer) (Result, error) {
	blob, err := base64.StdEncoding.DecodeString(xorEchoBlob)
	if err != nil {
		return Result{Solved: false, Message: "corrupt blob"}, nil
	}

	var key []byte
	if b, ok := answer.Bytes(); ok {
		key = b
	} else if s, ok := answer.Str(); ok {
		if len(s) > 0 && len(s)%2 == 0 && isHex(s) {
			key, _ = hex.DecodeString(s)
		}
	}
	if len(key) == 0 {
		return Result{Solved: false, Message: "provide hex key"}, nil
	}

	out, err := cryptoutil.XORBytes(blob, key)
	if err != nil {
		return Result{Solved: false, Message: "provide hex key"}, nil
	}

	text := string(out)
	if !utf8.Valid(out) {
		text = fmt.Sprintf("%q", out)
	}

	if containsExpedition(text) {
		return Result{Solved: true, Message: "Revealed: " + text}, nil
	}
	return Result{Solved: false, Message: "Revealed but not expected: " + text}, nil
}
