package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHint_EncodeDecodeRoundTrip(t *testing.T) {
	h := &Hint{
		Key:    []byte("member1"),
		FileID: 9,
		Offset: 4096,
		Header: Header{KeySize: 7, BucketSize: 6, TxID: 11},
	}
	buf := h.Encode([]byte("bucket"))

	decoded, bucket, err := DecodeHint(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), decoded.FileID)
	assert.Equal(t, uint64(4096), decoded.Offset)
	assert.Equal(t, []byte("member1"), decoded.Key)
	assert.Equal(t, []byte("bucket"), bucket)
}
