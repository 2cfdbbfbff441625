package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_EncodeDecodeRoundTrip(t *testing.T) {
	e := NewEntry([]byte("mylist"), nil, []byte("value1"), OpLRpush, 0, DataTypeList, 7)
	hint := &Hint{Key: e.Key, FileID: 3, Offset: 128, Header: e.Header}
	r := &Record{Hint: hint, Entry: e}

	buf := r.Encode()
	decoded, err := DecodeRecord(buf)
	require.NoError(t, err)

	assert.Equal(t, uint32(3), decoded.Hint.FileID)
	assert.Equal(t, uint64(128), decoded.Hint.Offset)
	assert.Equal(t, []byte("value1"), decoded.Entry.Value)
	assert.Equal(t, []byte("mylist"), decoded.Entry.Bucket)
}

func TestRecord_DecodeRejectsShortBuffer(t *testing.T) {
	_, err := DecodeRecord([]byte{1, 2, 3})
	require.Error(t, err)
}
