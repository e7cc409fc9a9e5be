// Package events provides a topic-keyed callback registry for scene nodes.
package events

// handler pairs a registration id with its callback.
type handler struct {
	id uint32
	fn func(any)
}

// Emitter dispatches payloads to handlers registered per topic.
// Handlers fire in registration order. Emitter is not safe for concurrent
// use; all registration and dispatch happens on the event-loop thread.
type Emitter struct {
	nextID   uint32
	handlers map[string][]handler
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[string][]handler)}
}

// Handle allows removing a registered callback.
type Handle struct {
	id      uint32
	topic   string
	emitter *Emitter
}

// Remove unregisters this callback so it no longer fires.
// Safe to call more than once, and safe to call from inside a handler.
func (h Handle) Remove() {
	if h.emitter == nil {
		return
	}
	h.emitter.off(h.topic, h.id)
}

// On registers fn for topic and returns a removal handle.
func (e *Emitter) On(topic string, fn func(any)) Handle {
	if e.handlers == nil {
		e.handlers = make(map[string][]handler)
	}
	e.nextID++
	id := e.nextID
	e.handlers[topic] = append(e.handlers[topic], handler{id: id, fn: fn})
	return Handle{id: id, topic: topic, emitter: e}
}

// Once registers fn for topic; the handler removes itself after the first fire.
func (e *Emitter) Once(topic string, fn func(any)) Handle {
	var h Handle
	h = e.On(topic, func(payload any) {
		h.Remove()
		fn(payload)
	})
	return h
}

func (e *Emitter) off(topic string, id uint32) {
	s := e.handlers[topic]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler{}
			e.handlers[topic] = s[:len(s)-1]
			return
		}
	}
}

// Emit calls every handler registered for topic with payload, in
// registration order. Handlers registered or removed during dispatch take
// effect on the next Emit.
func (e *Emitter) Emit(topic string, payload any) {
	s := e.handlers[topic]
	if len(s) == 0 {
		return
	}
	// Snapshot so handlers can remove themselves mid-dispatch.
	snapshot := make([]handler, len(s))
	copy(snapshot, s)
	for _, h := range snapshot {
		h.fn(payload)
	}
}

// HandlerCount returns the number of handlers registered for topic.
func (e *Emitter) HandlerCount(topic string) int {
	return len(e.handlers[topic])
}

// Clear drops every registered handler.
func (e *Emitter) Clear() {
	e.handlers = make(map[string][]handler)
}
