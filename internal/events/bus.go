package events

// Handler receives published events.
type Handler func(Event)

// Bus delivers events synchronously to its subscribers in subscription
// order. It is owned by one session and is not safe for concurrent use.
type Bus struct {
	handlers []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for every subsequent event.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to every subscriber. A nil bus drops the event.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	for _, h := range b.handlers {
		h(e)
	}
}

// Recorder is a subscriber that keeps every event it sees.
type Recorder struct {
	Events []Event
}

// Record subscribes a new recorder to the bus.
func Record(b *Bus) *Recorder {
	r := &Recorder{}
	b.Subscribe(r.handle)
	return r
}

func (r *Recorder) handle(e Event) {
	r.Events = append(r.Events, e)
}

// Count returns how many recorded events have the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, e := range r.Events {
		if Name(e) == name {
			n++
		}
	}
	return n
}

// Reset forgets the recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
