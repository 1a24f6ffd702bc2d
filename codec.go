package push

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Parse errors, wrapped by ParseError.
var (
	ErrUnknownToken = errors.New("unknown token")
	ErrUnbalanced   = errors.New("unbalanced parenthesis")
	ErrEmpty        = errors.New("no program")
	ErrTrailing     = errors.New("trailing input")
)

// ParseError locates a failure in program text; Pos is a byte offset.
type ParseError struct {
	Pos   int
	Token string
	Err   error
}

func (pe *ParseError) Error() string {
	if pe.Token == "" {
		return fmt.Sprintf("parse error at %v: %v", pe.Pos, pe.Err)
	}
	return fmt.Sprintf("parse error at %v: %v %q", pe.Pos, pe.Err, pe.Token)
}

func (pe *ParseError) Unwrap() error { return pe.Err }

// Parse reads a single program written as in "(1 2 INTEGER.SUM)". Tokens are
// instruction names first, then whatever the registered literals accept, in
// registration order.
func (reg *Registry) Parse(text string) (Code, error) {
	var (
		frames [][]Code
		opens  []int
		prog   Code
		done   bool
	)
	emit := func(node Code) {
		if n := len(frames); n > 0 {
			frames[n-1] = append(frames[n-1], node)
		} else {
			prog, done = node, true
		}
	}
	for pos, tok := range tokens(text) {
		if done {
			return Code{}, &ParseError{pos, tok, ErrTrailing}
		}
		switch tok {
		case "(":
			frames = append(frames, nil)
			opens = append(opens, pos)
		case ")":
			n := len(frames)
			if n == 0 {
				return Code{}, &ParseError{pos, tok, ErrUnbalanced}
			}
			items := frames[n-1]
			frames, opens = frames[:n-1], opens[:n-1]
			emit(block(items))
		default:
			node, ok := reg.parseAtom(tok)
			if !ok {
				return Code{}, &ParseError{pos, tok, ErrUnknownToken}
			}
			emit(node)
		}
	}
	if n := len(opens); n > 0 {
		return Code{}, &ParseError{opens[n-1], "(", ErrUnbalanced}
	}
	if !done {
		return Code{}, &ParseError{len(text), "", ErrEmpty}
	}
	return prog, nil
}

// MustParse is Parse that panics on error.
func (reg *Registry) MustParse(text string) Code {
	prog, err := reg.Parse(text)
	if err != nil {
		panic(err)
	}
	return prog
}

func (reg *Registry) parseAtom(tok string) (Code, bool) {
	if ins, ok := reg.byName[tok]; ok && ins.Literal == nil {
		return Code{op: ins}, true
	}
	for _, ins := range reg.literals {
		if v, ok := ins.Literal.Parse(tok); ok {
			return Code{op: ins, lit: v}, true
		}
	}
	return Code{}, false
}

// tokens yields each token with its byte offset; parentheses are tokens of
// their own, anything else runs until space or a parenthesis.
func tokens(text string) func(yield func(int, string) bool) {
	return func(yield func(int, string) bool) {
		start := -1
		for i := 0; i < len(text); {
			r, n := utf8.DecodeRuneInString(text[i:])
			switch {
			case r == '(' || r == ')' || unicode.IsSpace(r):
				if start >= 0 {
					if !yield(start, text[start:i]) {
						return
					}
					start = -1
				}
				if !unicode.IsSpace(r) {
					if !yield(i, text[i:i+n]) {
						return
					}
				}
			case start < 0:
				start = i
			}
			i += n
		}
		if start >= 0 {
			yield(start, text[start:])
		}
	}
}
