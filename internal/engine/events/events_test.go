package events

import "testing"

func TestEmitOrder(t *testing.T) {
	e := NewEmitter()

	var order []int
	e.On("topic", func(any) { order = append(order, 1) })
	e.On("topic", func(any) { order = append(order, 2) })
	e.On("topic", func(any) { order = append(order, 3) })

	e.Emit("topic", nil)

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("handlers fired out of registration order: %v", order)
	}
}

func TestEmitPayload(t *testing.T) {
	e := NewEmitter()

	var got string
	e.On("named", func(p any) {
		s, ok := p.(string)
		if !ok {
			t.Fatalf("payload type = %T, want string", p)
		}
		got = s
	})

	e.Emit("named", "hello")
	if got != "hello" {
		t.Errorf("payload = %q, want %q", got, "hello")
	}
}

func TestEmitWrongTopic(t *testing.T) {
	e := NewEmitter()

	called := false
	e.On("a", func(any) { called = true })
	e.Emit("b", nil)

	if called {
		t.Error("handler for topic a fired on emit of topic b")
	}
}

func TestHandleRemove(t *testing.T) {
	e := NewEmitter()

	count := 0
	h := e.On("topic", func(any) { count++ })

	e.Emit("topic", nil)
	h.Remove()
	e.Emit("topic", nil)

	if count != 1 {
		t.Errorf("handler fired %d times, want 1", count)
	}

	// Removing twice must not panic or disturb other handlers
	h.Remove()
}

func TestRemoveDuringDispatch(t *testing.T) {
	e := NewEmitter()

	var fired []string
	var first Handle
	first = e.On("topic", func(any) {
		fired = append(fired, "first")
		first.Remove()
	})
	e.On("topic", func(any) { fired = append(fired, "second") })

	e.Emit("topic", nil)
	e.Emit("topic", nil)

	want := []string{"first", "second", "second"}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired = %v, want %v", fired, want)
		}
	}
}

func TestOnce(t *testing.T) {
	e := NewEmitter()

	count := 0
	e.Once("load", func(any) { count++ })

	e.Emit("load", nil)
	e.Emit("load", nil)

	if count != 1 {
		t.Errorf("once handler fired %d times, want 1", count)
	}
	if e.HandlerCount("load") != 0 {
		t.Errorf("once handler still registered after firing")
	}
}

func TestClear(t *testing.T) {
	e := NewEmitter()

	count := 0
	e.On("a", func(any) { count++ })
	e.On("b", func(any) { count++ })

	e.Clear()
	e.Emit("a", nil)
	e.Emit("b", nil)

	if count != 0 {
		t.Errorf("handlers fired after Clear: %d", count)
	}
}

func TestZeroValueEmitter(t *testing.T) {
	var e Emitter

	called := false
	e.On("topic", func(any) { called = true })
	e.Emit("topic", nil)

	if !called {
		t.Error("zero-value emitter did not dispatch")
	}
}
