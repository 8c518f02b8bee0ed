package textlit_test

import (
	"testing"

	"github.com/on-the-ground/closure_ive_go/textlit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moku = []byte{
	227, 130, 130, 227, 129, 143, 227, 130, 130, 227, 129, 143, 227, 129, 151, 227, 129,
	190, 227, 129, 153,
}

func TestDecode(t *testing.T) {
	s, err := textlit.Decode(moku)
	require.NoError(t, err)
	assert.Equal(t, "もくもくします", s)

	s, err = textlit.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string][]byte{
		"stray continuation": {'a', 0x80, 'b'},
		"truncated sequence": moku[:len(moku)-1],
		"overlong encoding":  {0xc0, 0xaf},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := textlit.Decode(b)
			assert.ErrorIs(t, err, textlit.ErrInvalidText)
			assert.Panics(t, func() { textlit.MustDecode(b) })
		})
	}
}

func TestDecodeUnchecked(t *testing.T) {
	assert.Equal(t, "もくもくします", textlit.DecodeUnchecked(moku))

	bad := []byte{'a', 0xff}
	assert.Equal(t, "a\xff", textlit.DecodeUnchecked(bad))
}

func TestNormalize(t *testing.T) {
	composed := "\u3077"
	decomposed := "\u3075\u309a"
	require.NotEqual(t, composed, decomposed)
	assert.Equal(t, composed, textlit.Normalize(decomposed))
	assert.Equal(t, composed, textlit.Normalize(composed))
}
