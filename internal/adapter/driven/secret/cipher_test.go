package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

func TestCipher_RoundTrip(t *testing.T) {
	c, err := NewCipher("test-passphrase")
	require.NoError(t, err)

	inputs := []string{
		"",
		"sk-ant-api03-abcdef",
		"日本語のキー",
		"with spaces and\nnewlines\t",
	}
	for _, in := range inputs {
		enc, err := c.Encrypt(in)
		require.NoError(t, err)
		assert.NotEqual(t, in, enc)

		dec, err := c.Decrypt(enc)
		require.NoError(t, err)
		assert.Equal(t, in, dec)
	}
}

func TestCipher_NonceIsRandom(t *testing.T) {
	c, err := NewCipher("test-passphrase")
	require.NoError(t, err)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCipher_SamePassphraseAcrossInstances(t *testing.T) {
	c1, err := NewCipher("shared")
	require.NoError(t, err)
	c2, err := NewCipher("shared")
	require.NoError(t, err)

	enc, err := c1.Encrypt("value")
	require.NoError(t, err)

	dec, err := c2.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "value", dec)
}

func TestCipher_WrongPassphraseFails(t *testing.T) {
	c1, err := NewCipher("one")
	require.NoError(t, err)
	c2, err := NewCipher("two")
	require.NoError(t, err)

	enc, err := c1.Encrypt("value")
	require.NoError(t, err)

	_, err = c2.Decrypt(enc)
	assert.ErrorIs(t, err, model.ErrDecryption)
}

func TestCipher_EmptyPassphraseUsesDefault(t *testing.T) {
	c1, err := NewCipher("")
	require.NoError(t, err)
	c2, err := NewCipher(DefaultPassphrase)
	require.NoError(t, err)

	enc, err := c1.Encrypt("value")
	require.NoError(t, err)

	dec, err := c2.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "value", dec)
}

func TestCipher_MalformedInput(t *testing.T) {
	c, err := NewCipher("p")
	require.NoError(t, err)

	for _, in := range []string{"not base64 !!", "", "YWJj"} {
		_, err := c.Decrypt(in)
		assert.ErrorIs(t, err, model.ErrDecryption, "input %q", in)
	}
}
