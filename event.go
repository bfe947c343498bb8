package uistream

// DoneSentinel is the data value that terminates an event stream.
const DoneSentinel = "[DONE]"

// Event is one server-sent event carrying a data payload. Only "data"
// fields produce events; every other field is ignored.
type Event struct {
	Data string
}

// Done reports whether the event is the end-of-stream sentinel.
func (e Event) Done() bool {
	return e.Data == DoneSentinel
}
