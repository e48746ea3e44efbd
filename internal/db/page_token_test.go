package db

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageToken_RoundTrip(t *testing.T) {
	for _, pos := range []int32{0, 1, 19, 123456} {
		got, err := DecodePageToken(EncodePageToken(pos))
		require.NoError(t, err)
		require.Equal(t, pos, got)
	}
}

func TestDecodePageToken_EmptyStartsAtBeginning(t *testing.T) {
	got, err := DecodePageToken("")
	require.NoError(t, err)
	require.Equal(t, int32(-1), got)
}

func TestDecodePageToken_Invalid(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString
	for _, tok := range []string{
		"%%%",
		enc([]byte("x:12")),
		enc([]byte("p:abc")),
		enc([]byte("p:-4")),
		enc([]byte("p:99999999999")),
	} {
		_, err := DecodePageToken(tok)
		require.ErrorIs(t, err, ErrInvalidPageToken, tok)
	}
}
