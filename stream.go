package uistream

// EventStream uses a pull-based iterator pattern. Next returns io.EOF once
// the transport is exhausted or the end-of-stream sentinel was seen; the
// sentinel itself is never returned. Transport failures come from Next's
// error return. Streams are single-use.
type EventStream interface {
	Next() (Event, error)
	Close() error
}

// ChunkDecoder turns one event payload into a Chunk. Failures are reported
// as *DecodeError.
type ChunkDecoder interface {
	Decode(payload string) (Chunk, error)
}
