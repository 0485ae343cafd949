// Package textutil collects small text and number helpers shared by puzzles
// and reporting.
package textutil

import (
	"math"
	"strconv"
)

// ChecksumDigits computes a decimal digit checksum: sum of digits, folded
// while >= 100, then taken modulo 100. Negative input is treated as its
// absolute value. The result is always in [0, 100).
func ChecksumDigits(n int) int {
	if n < 0 {
		n = -n
	}
	s := digitSum(n)
	for s >= 100 {
		s = digitSum(s)
	}
	return s % 100
}

func digitSum(n int) int {
	sum := 0
	for _, ch := range strconv.Itoa(n) {
		sum += int(ch - '0')
	}
	return sum
}

// Entropy estimates the Shannon entropy of a string from character
// frequencies. Heuristic only; deterministic for a given input. Empty
// input yields 0.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}
	freq := make(map[rune]int)
	length := 0
	for _, ch := range s {
		freq[ch]++
		length++
	}
	h := 0.0
	for _, v := range freq {
		p := float64(v) / float64(length)
		h -= p * math.Log2(p)
	}
	return h
}

// Flatten concatenates a slice of slices into one slice.
func Flatten[T any](parts [][]T) []T {
	var out []T
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}
