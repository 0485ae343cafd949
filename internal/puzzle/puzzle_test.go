package puzzle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswer(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind AnswerKind
	}{
		{"plain integer", "13", AnswerInt},
		{"zero padded integer still int", "00", AnswerInt},
		{"negative integer", "-7", AnswerInt},
		{"even hex becomes bytes", "deadbeef", AnswerBytes},
		{"odd hex stays string", "abc", AnswerString},
		{"mixed case hex", "DEadBEef", AnswerBytes},
		{"plain text", "Expedition 33", AnswerString},
		{"empty string", "", AnswerString},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, ParseAnswer(tc.raw).Kind())
		})
	}
}

func TestParseAnswerValues(t *testing.T) {
	n, ok := ParseAnswer("42").Int()
	require.True(t, ok)
	assert.Equal(t, 42, n)

	b, ok := ParseAnswer("ff00").Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0x00}, b)

	s, ok := ParseAnswer("hello world").Str()
	require.True(t, ok)
	assert.Equal(t, "hello world", s)
}

func TestAnswerString(t *testing.T) {
	assert.Equal(t, "42", IntAnswer(42).String())
	assert.Equal(t, "ff00", BytesAnswer([]byte{0xff, 0x00}).String())
	assert.Equal(t, "raw", StringAnswer("raw").String())
	assert.Equal(t, "<none>", Answer{}.String())
}

func TestShiftPuzzle(t *testing.T) {
	p := &ShiftPuzzle{}
	ctx := context.Background()

	t.Run("numeric shift decodes but stays scrambled", func(t *testing.T) {
		// The cipher text deliberately does not rot back to the phrase.
		res, err := p.Solve(ctx, IntAnswer(13))
		require.NoError(t, err)
		assert.False(t, res.Solved)
		assert.Contains(t, res.Message, "Decoded")
	})

	t.Run("phrase string solves", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("  the Expedition 33 log  "))
		require.NoError(t, err)
		assert.True(t, res.Solved)
	})

	t.Run("wrong string fails", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("crater"))
		require.NoError(t, err)
		assert.False(t, res.Solved)
		assert.Equal(t, "String provided but not correct.", res.Message)
	})

	t.Run("bytes unsupported", func(t *testing.T) {
		res, err := p.Solve(ctx, BytesAnswer([]byte{1}))
		require.NoError(t, err)
		assert.False(t, res.Solved)
		assert.Equal(t, "Unsupported answer type", res.Message)
	})
}

func TestRotN(t *testing.T) {
	assert.Equal(t, "nOp!", rotN("aBc!", 13))
	assert.Equal(t, "aBc!", rotN(rotN("aBc!", 13), 13))
	assert.Equal(t, "zab", rotN("abc", -1))
}

func TestXOREchoPuzzle(t *testing.T) {
	p := &XOREchoPuzzle{}
	ctx := context.Background()

	t.Run("zero key reveals the phrase", func(t *testing.T) {
		res, err := p.Solve(ctx, BytesAnswer([]byte{0x00}))
		require.NoError(t, err)
		assert.True(t, res.Solved)
		assert.Contains(t, res.Message, "Hello, Expedition 33!")
	})

	t.Run("hex string key accepted", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("00"))
		require.NoError(t, err)
		assert.True(t, res.Solved)
	})

	t.Run("wrong key reveals garbage", func(t *testing.T) {
		res, err := p.Solve(ctx, BytesAnswer([]byte{0x55}))
		require.NoError(t, err)
		assert.False(t, res.Solved)
		assert.Contains(t, res.Message, "Revealed but not expected")
	})

	t.Run("non hex string rejected", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("not-a-key"))
		require.NoError(t, err)
		assert.False(t, res.Solved)
		assert.Equal(t, "provide hex key", res.Message)
	})

	t.Run("int answers rejected", func(t *testing.T) {
		res, err := p.Solve(ctx, IntAnswer(33))
		require.NoError(t, err)
		assert.Equal(t, "provide hex key", res.Message)
	})
}

func TestChecksumPuzzle(t *testing.T) {
	p := &ChecksumPuzzle{}
	ctx := context.Background()

	t.Run("matching seed solves", func(t *testing.T) {
		// ChecksumDigits(2) == 2 and (2 + 331%100) % 100 == 33.
		res, err := p.Solve(ctx, IntAnswer(2))
		require.NoError(t, err)
		assert.True(t, res.Solved)
		assert.Contains(t, res.Message, "checksum 2")
	})

	t.Run("numeric string accepted", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer(" 11 "))
		require.NoError(t, err)
		assert.True(t, res.Solved)
	})

	t.Run("mismatching seed fails", func(t *testing.T) {
		res, err := p.Solve(ctx, IntAnswer(3))
		require.NoError(t, err)
		assert.False(t, res.Solved)
		assert.Contains(t, res.Message, "not matching")
	})

	t.Run("non numeric input refused", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("badanswer"))
		require.NoError(t, err)
		assert.Equal(t, "please provide an integer", res.Message)
	})

	t.Run("bytes refused", func(t *testing.T) {
		res, err := p.Solve(ctx, BytesAnswer([]byte{2}))
		require.NoError(t, err)
		assert.Equal(t, "please provide an integer", res.Message)
	})
}

func TestLogFSPuzzle(t *testing.T) {
	p := &LogFSPuzzle{}
	ctx := context.Background()

	t.Run("note path solves", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("/expedition/logs/day02.txt"))
		require.NoError(t, err)
		assert.True(t, res.Solved)
		assert.Contains(t, res.Message, "station 33")
	})

	t.Run("other file is not the note", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("/expedition/logs/day01.txt"))
		require.NoError(t, err)
		assert.False(t, res.Solved)
		assert.Contains(t, res.Message, "not expected")
	})

	t.Run("directory is not a file", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("/expedition"))
		require.NoError(t, err)
		assert.Equal(t, "no such file or not a file", res.Message)
	})

	t.Run("missing path", func(t *testing.T) {
		res, err := p.Solve(ctx, StringAnswer("/nope"))
		require.NoError(t, err)
		assert.False(t, res.Solved)
	})

	t.Run("non string answer", func(t *testing.T) {
		res, err := p.Solve(ctx, IntAnswer(33))
		require.NoError(t, err)
		assert.Equal(t, "path must be a string", res.Message)
	})

	t.Run("directory listing helper", func(t *testing.T) {
		entries, ok := p.Entries("/expedition/logs")
		require.True(t, ok)
		assert.Equal(t, []string{"day01.txt", "day02.txt"}, entries)
	})
}

func TestDescribeStable(t *testing.T) {
	reg := Default()
	for _, name := range reg.Names() {
		p := reg.Get(name)
		require.NotNil(t, p)
		d1 := p.Describe()
		d2 := p.Describe()
		assert.Equal(t, d1, d2)
		assert.Equal(t, name, d1.Name)
		assert.NotEmpty(t, d1.Summary)
	}
}
