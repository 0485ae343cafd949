package puzzle

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"finaltrace/internal/textutil"
)

func init() {
	defaultRegistry.MustRegister(&ChecksumPuzzle{})
}

// checksumSeed offsets the checksum rule; the target remainder is 33.
const checksumSeed = 331

// ChecksumPuzzle accepts a numeric seed whose digit checksum satisfies the
// expedition rule: (checksum + seed%100) % 100 == 33.
type ChecksumPuzzle struct{}

func (p *ChecksumPuzzle) Name() string { return "echo-checksum" }

func (p *ChecksumPuzzle) Describe() Description {
	return Description{
		Name:    p.Name(),
		Summary: "Supply the right numeric seed which yields a matching checksum.",
	}
}

func (p *ChecksumPuzzle) Solve(ctx context.Context, answer Answer) (Result, error) {
	val, ok := answer.Int()
	if !ok {
		// String payloads that parse as integers still count.
		s, isStr := answer.Str()
		if !isStr {
			return Result{Solved: false, Message: "please provide an integer"}, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return Result{Solved: false, Message: "please provide an integer"}, nil
		}
		val = n
	}

	calc := textutil.ChecksumDigits(val)
	if (calc+checksumSeed%100)%100 == 33 {
		return Result{Solved: true, Message: fmt.Sprintf("Valid seed - checksum %d", calc)}, nil
	}
	return Result{Solved: false, Message: fmt.Sprintf("Checksum %d not matching", calc)}, nil
}
