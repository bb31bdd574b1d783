package sharecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, id := range []uint64{1, 42, 2015344440675143680} {
		code, err := Encode(id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(code), 8)

		back, err := Decode(code)
		require.NoError(t, err)
		assert.Equal(t, id, back)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not a code!")
	assert.Error(t, err)
}

func TestCodesAvoidConfusableCharacters(t *testing.T) {
	code, err := Encode(123456)
	require.NoError(t, err)
	assert.NotContains(t, code, "0")
	assert.NotContains(t, code, "1")
	assert.NotContains(t, code, "l")
	assert.NotContains(t, code, "O")
}
