package qrcode_test

import (
	"strings"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emrys-Org/loyalmint/pkg/qrcode"
)

func testAddress(t *testing.T) string {
	t.Helper()
	return crypto.GenerateAccount().Address.String()
}

func TestConnectURI(t *testing.T) {
	t.Parallel()

	t.Run("address only", func(t *testing.T) {
		t.Parallel()

		addr := testAddress(t)
		uri, err := qrcode.ConnectURI(addr, 0, "")
		require.NoError(t, err)
		assert.Equal(t, "algorand://"+addr, uri)
	})

	t.Run("with amount and label", func(t *testing.T) {
		t.Parallel()

		addr := testAddress(t)
		uri, err := qrcode.ConnectURI(addr, 10_000_000, "LoyalMint Pro")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "algorand://"+addr+"?"))
		assert.Contains(t, uri, "amount=10000000")
		assert.Contains(t, uri, "label=LoyalMint+Pro")
	})

	t.Run("invalid address", func(t *testing.T) {
		t.Parallel()

		_, err := qrcode.ConnectURI("not-an-address", 0, "")
		require.ErrorIs(t, err, qrcode.ErrInvalidAddress)
	})
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("returns PNG bytes", func(t *testing.T) {
		t.Parallel()

		png, err := qrcode.Generate("algorand://"+testAddress(t), 256)
		require.NoError(t, err)
		require.NotEmpty(t, png)
		// PNG magic bytes
		assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
	})

	t.Run("defaults size when non-positive", func(t *testing.T) {
		t.Parallel()

		png, err := qrcode.Generate("hello", 0)
		require.NoError(t, err)
		assert.NotEmpty(t, png)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		_, err := qrcode.Generate("   ", 256)
		require.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})
}

func TestGenerateBase64Image(t *testing.T) {
	t.Parallel()

	img, err := qrcode.GenerateBase64Image("algorand://"+testAddress(t), 128)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img, "data:image/png;base64,"))

	_, err = qrcode.GenerateBase64Image("", 128)
	require.ErrorIs(t, err, qrcode.ErrEmptyContent)
}
