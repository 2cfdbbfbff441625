// Package errs defines the error taxonomy surfaced by the storage
// engine. Every kind here has a counterpart in the engine's original
// Rust design (DbError) so callers can distinguish failure modes
// structurally rather than by matching error strings.
package errs

import "fmt"

// OffsetOutOfRange is returned by the FileIO layer when a write or
// read targets an offset at or past the file's configured size.
type OffsetOutOfRange struct {
	Method string
	Offset uint64
}

func (e *OffsetOutOfRange) Error() string {
	return fmt.Sprintf("offset out of range: %s at offset %d", e.Method, e.Offset)
}

// IOError wraps an underlying OS-level error.
type IOError struct {
	Cause error
}

func (e *IOError) Error() string { return fmt.Sprintf("io error: %v", e.Cause) }
func (e *IOError) Unwrap() error { return e.Cause }

// EntryDecodeError reports a structural failure decoding an Entry or
// Hint (a length field overruns the input buffer, for example).
type EntryDecodeError struct {
	Bucket string
	Key    string
	Msg    string
}

func (e *EntryDecodeError) Error() string {
	return fmt.Sprintf("entry decode error: bucket=%q key=%q: %s", e.Bucket, e.Key, e.Msg)
}

// EntryCRCInvalid reports a CRC-32C mismatch on decode. Recovery code
// must treat this as end-of-valid-log, not as a fatal error.
type EntryCRCInvalid struct {
	Bucket string
	Key    string
}

func (e *EntryCRCInvalid) Error() string {
	return fmt.Sprintf("entry crc invalid: bucket=%q key=%q", e.Bucket, e.Key)
}

// EntryDataTypeOpInvalid reports an operation tag that is not legal
// for the entry's data type (e.g. LPush against a String entry).
type EntryDataTypeOpInvalid struct {
	Bucket   string
	Key      string
	Op       uint16
	DataType uint16
}

func (e *EntryDataTypeOpInvalid) Error() string {
	return fmt.Sprintf("entry data type/op invalid: bucket=%q key=%q op=%d data_type=%d",
		e.Bucket, e.Key, e.Op, e.DataType)
}

// BucketNotExist reports a reference to a bucket that has never been
// written.
type BucketNotExist struct {
	Bucket string
}

func (e *BucketNotExist) Error() string {
	return fmt.Sprintf("bucket does not exist: %q", e.Bucket)
}

// ContainSeparatorChar reports a key containing the reserved
// sorted-set member/score separator. Defined for API completeness;
// this engine does not enforce it (see SPEC_FULL.md §13.2).
type ContainSeparatorChar struct {
	Separator byte
}

func (e *ContainSeparatorChar) Error() string {
	return fmt.Sprintf("key contains forbidden separator char %q", e.Separator)
}

// BackgroundWorkerSendError reports that a worker's task channel
// closed unexpectedly.
type BackgroundWorkerSendError struct {
	Worker string
}

func (e *BackgroundWorkerSendError) Error() string {
	return fmt.Sprintf("background worker %q send error: channel closed", e.Worker)
}

// OtherError is the escape hatch for failures that don't fit any
// other kind above.
type OtherError struct {
	Cause error
}

func (e *OtherError) Error() string { return fmt.Sprintf("other error: %v", e.Cause) }
func (e *OtherError) Unwrap() error { return e.Cause }
