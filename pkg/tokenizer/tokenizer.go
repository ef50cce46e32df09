// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tokenizer wraps a BPE encoding with the id and piece operations
// used by the spm command.
package tokenizer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// EndOfText is the special token appended by the eos option.
const EndOfText = "<|endoftext|>"

// Space replaces ' ' inside pieces so that pieces can be joined with spaces.
const Space = "▁"

// Other whitespace bytes are written as <0xHH> byte pieces so that a piece
// line splits back on ' ' alone.
var (
	pieceEscaper = strings.NewReplacer(
		" ", Space,
		"\t", "<0x09>",
		"\n", "<0x0A>",
		"\v", "<0x0B>",
		"\f", "<0x0C>",
		"\r", "<0x0D>",
	)
	pieceUnescaper = strings.NewReplacer(
		Space, " ",
		"<0x09>", "\t",
		"<0x0A>", "\n",
		"<0x0B>", "\v",
		"<0x0C>", "\f",
		"<0x0D>", "\r",
	)
)

// Codec is the subset of *tiktoken.Tiktoken used by Tokenizer.
type Codec interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

var _ Codec = (*tiktoken.Tiktoken)(nil)

// Tokenizer encodes text to token ids or pieces and back.
type Tokenizer struct {
	name  string
	codec Codec
	eos   int
}

// Load returns a Tokenizer for the named tiktoken encoding, such as
// "cl100k_base".
func Load(encoding string) (*Tokenizer, error) {
	tke, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding %q: %w", encoding, err)
	}
	return New(encoding, tke), nil
}

// New returns a Tokenizer backed by c.
func New(name string, c Codec) *Tokenizer {
	t := &Tokenizer{name: name, codec: c, eos: -1}
	if ids := c.Encode(EndOfText, []string{EndOfText}, nil); len(ids) == 1 {
		t.eos = ids[0]
	}
	return t
}

func (t *Tokenizer) Name() string { return t.name }

// EOS returns the id of EndOfText, if the encoding has it.
func (t *Tokenizer) EOS() (int, bool) {
	return t.eos, t.eos >= 0
}

// Encode returns the ids for text. Special tokens in text are encoded as
// ordinary text.
func (t *Tokenizer) Encode(text string) []int {
	return t.codec.Encode(text, nil, nil)
}

// EncodeAsPieces returns the piece for every id of text.
func (t *Tokenizer) EncodeAsPieces(text string) []string {
	ids := t.Encode(text)
	pieces := make([]string, len(ids))
	for i, id := range ids {
		pieces[i] = t.IDToPiece(id)
	}
	return pieces
}

// Decode returns the text for ids.
func (t *Tokenizer) Decode(ids []int) string {
	return t.codec.Decode(ids)
}

// DecodePieces joins pieces back into text, undoing the escapes of IDToPiece.
func (t *Tokenizer) DecodePieces(pieces []string) string {
	return pieceUnescaper.Replace(strings.Join(pieces, ""))
}

// IDToPiece returns the text of a single id with spaces shown as Space and
// the other whitespace bytes as <0xHH>. The result never contains whitespace.
func (t *Tokenizer) IDToPiece(id int) string {
	return pieceEscaper.Replace(t.codec.Decode([]int{id}))
}

// PieceToID returns the id of piece, or -1 if piece is not a single token.
func (t *Tokenizer) PieceToID(piece string) int {
	if piece == EndOfText {
		return t.eos
	}
	ids := t.Encode(pieceUnescaper.Replace(piece))
	if len(ids) != 1 {
		return -1
	}
	return ids[0]
}

// Options are the extra encoding options accepted by ParseOptions.
type Options struct {
	Reverse bool
	EOS     bool
}

// ParseOptions parses a ':' separated list of "reverse" and "eos".
func ParseOptions(s string) (Options, error) {
	var o Options
	if s == "" {
		return o, nil
	}
	for opt := range strings.SplitSeq(s, ":") {
		switch opt {
		case "reverse":
			o.Reverse = true
		case "eos":
			o.EOS = true
		case "bos":
			return o, fmt.Errorf("extra option %q is not supported: encodings have no begin-of-sequence token", opt)
		default:
			return o, fmt.Errorf("unknown extra option %q", opt)
		}
	}
	return o, nil
}

// EncodeWith encodes text and applies o to the ids.
func (t *Tokenizer) EncodeWith(text string, o Options) ([]int, error) {
	ids := t.Encode(text)
	if o.Reverse {
		slices.Reverse(ids)
	}
	if o.EOS {
		eos, ok := t.EOS()
		if !ok {
			return nil, fmt.Errorf("encoding %s has no %s token", t.name, EndOfText)
		}
		ids = append(ids, eos)
	}
	return ids, nil
}

// EncodeAsPiecesWith is EncodeWith returning pieces.
func (t *Tokenizer) EncodeAsPiecesWith(text string, o Options) ([]string, error) {
	ids, err := t.EncodeWith(text, o)
	if err != nil {
		return nil, err
	}
	pieces := make([]string, len(ids))
	for i, id := range ids {
		if o.EOS && i == len(ids)-1 {
			pieces[i] = EndOfText
			continue
		}
		pieces[i] = t.IDToPiece(id)
	}
	return pieces, nil
}
