package imaging

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowed = []string{"jpeg", "png", "jpg"}

func encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
}

func jpegBytes() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
}

func TestDecodePNG(t *testing.T) {
	img, err := DecodeBase64Image(encode(pngBytes()), allowed)
	require.NoError(t, err)

	assert.Equal(t, "png", img.Format)
	assert.Equal(t, pngBytes(), img.Data)
}

func TestDecodeJPEG(t *testing.T) {
	img, err := DecodeBase64Image(encode(jpegBytes()), allowed)
	require.NoError(t, err)

	assert.Equal(t, "jpeg", img.Format)
}

func TestDecodeDataURIPrefix(t *testing.T) {
	payload := "data:image/png;base64," + encode(pngBytes())

	img, err := DecodeBase64Image(payload, allowed)
	require.NoError(t, err)
	assert.Equal(t, "png", img.Format)
}

func TestDecodeRejectsOtherFormats(t *testing.T) {
	gif := append([]byte("GIF89a"), make([]byte, 16)...)

	_, err := DecodeBase64Image(encode(gif), allowed)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeRejectsDisallowedFormat(t *testing.T) {
	_, err := DecodeBase64Image(encode(pngBytes()), []string{"jpeg", "jpg"})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJPEGSatisfiesJPGAllowance(t *testing.T) {
	img, err := DecodeBase64Image(encode(jpegBytes()), []string{"jpg"})
	require.NoError(t, err)
	assert.Equal(t, "jpeg", img.Format)
}

func TestDecodeRejectsBadBase64(t *testing.T) {
	_, err := DecodeBase64Image("%%%not base64%%%", allowed)
	require.ErrorIs(t, err, ErrInvalidEncoding)
}
