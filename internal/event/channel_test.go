package event

import "testing"

func TestChannelEmit(t *testing.T) {
	var ch Channel[int]
	var got []int

	ch.Subscribe(func(v int) { got = append(got, v) })
	ch.Emit(1)
	ch.Emit(2)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("got %v, want [1 2]", got)
	}
}

func TestChannelEmitNoSubscribers(t *testing.T) {
	var ch Channel[string]
	ch.Emit("nobody listening")
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
}

func TestChannelPriorityOrder(t *testing.T) {
	var ch Channel[int]
	var order []string

	ch.Subscribe(func(int) { order = append(order, "low") }, WithPriority[int](PriorityLow))
	ch.Subscribe(func(int) { order = append(order, "normal-1") })
	ch.Subscribe(func(int) { order = append(order, "critical") }, WithPriority[int](PriorityCritical))
	ch.Subscribe(func(int) { order = append(order, "normal-2") })

	ch.Emit(0)

	want := []string{"critical", "normal-1", "normal-2", "low"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestSubscriptionCancel(t *testing.T) {
	var ch Channel[int]
	calls := 0

	sub := ch.Subscribe(func(int) { calls++ })
	ch.Emit(1)
	sub.Cancel()
	sub.Cancel()
	ch.Emit(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sub.Active() {
		t.Error("cancelled subscription should not be active")
	}
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
}

func TestCancelDuringEmit(t *testing.T) {
	var ch Channel[int]
	var second Subscription
	secondCalls := 0

	ch.Subscribe(func(int) { second.Cancel() })
	second = ch.Subscribe(func(int) { secondCalls++ })

	ch.Emit(1)
	if secondCalls != 0 {
		t.Errorf("handler cancelled mid-emit was called %d times", secondCalls)
	}
}

func TestSubscribeDuringEmit(t *testing.T) {
	var ch Channel[int]
	lateCalls := 0

	var first Subscription
	first = ch.Subscribe(func(int) {
		first.Cancel()
		ch.Subscribe(func(int) { lateCalls++ })
	})

	ch.Emit(1)
	if lateCalls != 0 {
		t.Errorf("late subscriber called during the emit that added it")
	}
	ch.Emit(2)
	if lateCalls != 1 {
		t.Errorf("lateCalls = %d, want 1", lateCalls)
	}
}

func TestWithFilter(t *testing.T) {
	var ch Channel[int]
	var got []int

	ch.Subscribe(func(v int) { got = append(got, v) }, WithFilter[int](func(v int) bool { return v%2 == 0 }))
	for i := 0; i < 5; i++ {
		ch.Emit(i)
	}

	if len(got) != 3 {
		t.Errorf("got %v, want [0 2 4]", got)
	}
}

func TestChannelClear(t *testing.T) {
	var ch Channel[int]
	calls := 0
	sub := ch.Subscribe(func(int) { calls++ })

	ch.Clear()
	ch.Emit(1)

	if calls != 0 {
		t.Errorf("calls = %d after Clear, want 0", calls)
	}
	if sub.Active() {
		t.Error("subscription should be inactive after Clear")
	}
}

func TestSubscribeNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrNilHandler {
			t.Errorf("recover() = %v, want ErrNilHandler", r)
		}
	}()
	var ch Channel[int]
	ch.Subscribe(nil)
}

func TestPriorityString(t *testing.T) {
	tests := []struct {
		p    Priority
		want string
	}{
		{PriorityCritical, "critical"},
		{PriorityHigh, "high"},
		{PriorityNormal, "normal"},
		{PriorityLow, "low"},
		{150, "normal"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Priority(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}
