// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tokenizer

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCodec is a greedy longest-match codec over a fixed vocabulary.
type fakeCodec struct {
	vocab []string
}

func (c *fakeCodec) Encode(text string, allowedSpecial, _ []string) []int {
	var ids []int
	for text != "" {
		best, bestLen := -1, 0
		for id, piece := range c.vocab {
			if piece == EndOfText && !slices.Contains(allowedSpecial, EndOfText) {
				continue
			}
			if len(piece) > bestLen && strings.HasPrefix(text, piece) {
				best, bestLen = id, len(piece)
			}
		}
		if best < 0 {
			text = text[1:]
			continue
		}
		ids = append(ids, best)
		text = text[bestLen:]
	}
	return ids
}

func (c *fakeCodec) Decode(tokens []int) string {
	var b strings.Builder
	for _, id := range tokens {
		if id >= 0 && id < len(c.vocab) {
			b.WriteString(c.vocab[id])
		}
	}
	return b.String()
}

func newFake(withEOS bool) *Tokenizer {
	vocab := []string{"h", "e", "l", "o", " ", "he", "llo", " w", "orld"}
	if withEOS {
		vocab = append(vocab, EndOfText)
	}
	return New("fake", &fakeCodec{vocab: vocab})
}

func TestEncodeDecode(t *testing.T) {
	tk := newFake(true)
	ids := tk.Encode("hello world")
	require.Equal(t, []int{5, 6, 7, 8}, ids)
	require.Equal(t, "hello world", tk.Decode(ids))
}

func TestPieces(t *testing.T) {
	tk := newFake(true)
	pieces := tk.EncodeAsPieces("hello world")
	require.Equal(t, []string{"he", "llo", "▁w", "orld"}, pieces)
	require.Equal(t, "hello world", tk.DecodePieces(pieces))

	require.Equal(t, 7, tk.PieceToID("▁w"))
	require.Equal(t, -1, tk.PieceToID("hello"))
	require.Equal(t, "▁w", tk.IDToPiece(7))
}

func TestWhitespacePieces(t *testing.T) {
	tk := New("fake", &fakeCodec{vocab: []string{"a", "b", "\t", "\r\n", " \t", "\v\f"}})
	const text = "a\tb\r\n \t\v\f"
	pieces := tk.EncodeAsPieces(text)
	require.Equal(t, []string{"a", "<0x09>", "b", "<0x0D><0x0A>", "▁<0x09>", "<0x0B><0x0C>"}, pieces)
	for _, p := range pieces {
		require.Equal(t, []string{p}, strings.Fields(p))
	}

	line := strings.Join(pieces, " ")
	require.Equal(t, text, tk.DecodePieces(strings.Split(line, " ")))
	require.Equal(t, 2, tk.PieceToID("<0x09>"))
	require.Equal(t, 4, tk.PieceToID("▁<0x09>"))
}

func TestEOS(t *testing.T) {
	id, ok := newFake(true).EOS()
	require.True(t, ok)
	require.Equal(t, 9, id)
	require.Equal(t, 9, newFake(true).PieceToID(EndOfText))

	_, ok = newFake(false).EOS()
	require.False(t, ok)
	require.Equal(t, -1, newFake(false).PieceToID(EndOfText))
}

func TestSpecialTokenEncodedAsText(t *testing.T) {
	tk := newFake(true)
	require.NotContains(t, tk.Encode("he"+EndOfText), 9)
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		in      string
		want    Options
		wantErr bool
	}{
		{in: "", want: Options{}},
		{in: "eos", want: Options{EOS: true}},
		{in: "reverse:eos", want: Options{Reverse: true, EOS: true}},
		{in: "bos", wantErr: true},
		{in: "eos:bogus", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOptions(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeWith(t *testing.T) {
	tk := newFake(true)

	ids, err := tk.EncodeWith("hello world", Options{Reverse: true, EOS: true})
	require.NoError(t, err)
	require.Equal(t, []int{8, 7, 6, 5, 9}, ids)

	pieces, err := tk.EncodeAsPiecesWith("hello world", Options{EOS: true})
	require.NoError(t, err)
	require.Equal(t, []string{"he", "llo", "▁w", "orld", EndOfText}, pieces)

	_, err = newFake(false).EncodeWith("hello", Options{EOS: true})
	require.ErrorContains(t, err, EndOfText)
}
