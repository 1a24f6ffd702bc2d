// Package wire encodes programs as canonical CBOR, for storing or shipping
// evolved programs between hosts that share an instruction set.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	push "github.com/jcorbin/gopush"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	encMode = em

	dm, err := cbor.DecOptions{MaxNestedLevels: 65535}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR dec mode: %v", err))
	}
	decMode = dm
}

// node is the encoded form of push.Code: an atom names its instruction and
// carries literal payloads in their text form; a block has no Op.
type node struct {
	Op    string `cbor:"1,keyasint,omitempty"`
	Lit   string `cbor:"2,keyasint,omitempty"`
	Items []node `cbor:"3,keyasint,omitempty"`
}

func encode(code push.Code) node {
	ins := code.Instruction()
	if ins == nil {
		items := code.Items()
		n := node{Items: make([]node, len(items))}
		for i, item := range items {
			n.Items[i] = encode(item)
		}
		return n
	}
	n := node{Op: ins.Name}
	if lit := ins.Literal; lit != nil {
		n.Lit = lit.Render(code.Literal())
	}
	return n
}

func decode(reg *push.Registry, n node) (push.Code, error) {
	if n.Op == "" {
		items := make([]push.Code, len(n.Items))
		for i, item := range n.Items {
			code, err := decode(reg, item)
			if err != nil {
				return push.Code{}, err
			}
			items[i] = code
		}
		return push.Block(items...), nil
	}
	ins, ok := reg.Lookup(n.Op)
	if !ok {
		return push.Code{}, fmt.Errorf("unknown instruction %q", n.Op)
	}
	if lit := ins.Literal; lit != nil {
		v, ok := lit.Parse(n.Lit)
		if !ok {
			return push.Code{}, fmt.Errorf("invalid %v literal %q", lit.Kind, n.Lit)
		}
		return push.NewAtom(ins, v), nil
	}
	return push.NewAtom(ins, nil), nil
}

// Marshal encodes a program.
func Marshal(code push.Code) ([]byte, error) {
	return encMode.Marshal(encode(code))
}

// Unmarshal decodes a program, resolving instructions by name in reg.
func Unmarshal(reg *push.Registry, data []byte) (push.Code, error) {
	var n node
	if err := decMode.Unmarshal(data, &n); err != nil {
		return push.Code{}, fmt.Errorf("wire: unmarshal program: %w", err)
	}
	code, err := decode(reg, n)
	if err != nil {
		return push.Code{}, fmt.Errorf("wire: decode program: %w", err)
	}
	return code, nil
}

// MarshalPrograms encodes a set of programs, such as a population.
func MarshalPrograms(codes []push.Code) ([]byte, error) {
	ns := make([]node, len(codes))
	for i, code := range codes {
		ns[i] = encode(code)
	}
	return encMode.Marshal(ns)
}

// UnmarshalPrograms decodes what MarshalPrograms encoded.
func UnmarshalPrograms(reg *push.Registry, data []byte) ([]push.Code, error) {
	var ns []node
	if err := decMode.Unmarshal(data, &ns); err != nil {
		return nil, fmt.Errorf("wire: unmarshal programs: %w", err)
	}
	codes := make([]push.Code, len(ns))
	for i, n := range ns {
		code, err := decode(reg, n)
		if err != nil {
			return nil, fmt.Errorf("wire: decode program %v: %w", i, err)
		}
		codes[i] = code
	}
	return codes, nil
}
