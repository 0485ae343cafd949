package puzzle

import (
	"context"
	"strings"
)

func init() {
	defaultRegistry.MustRegister(&ShiftPuzzle{})
}

// shiftCipherText is the scrambled expedition log line handed to players.
const shiftCipherText = "Guvf vf gur racenpgvba bs Rkqvgrra 33"

// ShiftPuzzle expects either the numeric shift that makes the scrambled
// phrase readable, or the decoded phrase itself.
type ShiftPuzzle struct{}

func (p *ShiftPuzzle) Name() string { return "cryptic-shift" }

func (p *ShiftPuzzle) Describe() Description {
	return Description{
		Name:    p.Name(),
		Summary: "Decode the expedition log by applying the correct shift.",
	}
}

func (p *ShiftPuzzle) Solve(ctx context.Context, answer Answer) (Result, error) {
	if n, ok := answer.Int(); ok {
		decoded := rotN(shiftCipherText, n)
		if containsExpedition(decoded) {
			return Result{Solved: true, Message: "Decoded: " + decoded}, nil
		}
		return Result{Solved: false, Message: "Decoded but not recognizable: " + decoded}, nil
	}

	if s, ok := answer.Str(); ok {
		normalized := strings.TrimSpace(s)
		if containsExpedition(normalized) {
			return Result{Solved: true, Message: "Nice! Looks like the phrase is present."}, nil
		}
		return Result{Solved: false, Message: "String provided but not correct."}, nil
	}

	return unsupported(), nil
}

func containsExpedition(s string) bool {
	return strings.Contains(strings.ToLower(s), "expedition")
}

// rotN shifts ASCII letters by n positions, wrapping within each case.
// Negative shifts rotate backwards.
func rotN(s string, n int) string {
	shift := ((n % 26) + 26) % 26
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			out[i] = 'a' + (ch-'a'+byte(shift))%26
		case ch >= 'A' && ch <= 'Z':
			out[i] = 'A' + (ch-'A'+byte(shift))%26
		default:
			out[i] = ch
		}
	}
	return string(out)
}
