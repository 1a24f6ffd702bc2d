package wire

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	push "github.com/jcorbin/gopush"
)

func TestMarshal(t *testing.T) {
	reg := push.MustRegistry(push.WithInstructions(push.BaseInstructions()...))
	for _, src := range []string{
		"5",
		"( )",
		"( 1 -2.5 true foo ( INTEGER.SUM ( ) ) EXEC.Y )",
	} {
		t.Run(src, func(t *testing.T) {
			prog := reg.MustParse(src)
			data, err := Marshal(prog)
			require.NoError(t, err)
			back, err := Unmarshal(reg, data)
			require.NoError(t, err)
			assert.True(t, prog.Equal(back), "got %v", back)

			again, err := Marshal(back)
			require.NoError(t, err)
			assert.Equal(t, data, again, "encoding must be canonical")
		})
	}
}

func TestMarshalPrograms(t *testing.T) {
	reg := push.MustRegistry(push.WithInstructions(push.BaseInstructions()...))
	rnd := rand.New(rand.NewSource(1))
	progs := make([]push.Code, 50)
	for i := range progs {
		progs[i] = reg.Generate(rnd, 40, 6)
	}
	data, err := MarshalPrograms(progs)
	require.NoError(t, err)
	back, err := UnmarshalPrograms(reg, data)
	require.NoError(t, err)
	require.Len(t, back, len(progs))
	for i := range progs {
		assert.True(t, progs[i].Equal(back[i]), "program %v: %v != %v", i, progs[i], back[i])
	}
}

func TestUnmarshal_errors(t *testing.T) {
	full := push.MustRegistry(push.WithInstructions(push.BaseInstructions()...))
	ints := push.MustRegistry(push.WithInstructions(push.IntegerInstructions()...))

	data, err := Marshal(full.MustParse("( 1 FLOAT.SUM )"))
	require.NoError(t, err)
	_, err = Unmarshal(ints, data)
	assert.ErrorContains(t, err, `unknown instruction "FLOAT.SUM"`)

	_, err = Unmarshal(full, []byte{0xff})
	assert.ErrorContains(t, err, "wire: unmarshal program")

	bad, err := encMode.Marshal(node{Op: "INTEGER.LITERAL", Lit: "one"})
	require.NoError(t, err)
	_, err = Unmarshal(full, bad)
	assert.ErrorContains(t, err, `invalid integer literal "one"`)

	progs, err := MarshalPrograms([]push.Code{full.MustParse("1"), full.MustParse("2.0")})
	require.NoError(t, err)
	_, err = UnmarshalPrograms(ints, progs)
	assert.ErrorContains(t, err, "decode program 1")
}
