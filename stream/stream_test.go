package stream

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFromSlice_Collect(t *testing.T) {
	got, err := Collect(context.Background(), FromSlice([]int{1, 3, 4}))
	if err != nil {
		t.Fatal(err)
	}
	if !intSliceEqual(got, []int{1, 3, 4}) {
		t.Errorf("got %v, want [1 3 4]", got)
	}
}

func TestEmpty_Completes(t *testing.T) {
	rec := newRecorder[int]()
	Empty[int]().Subscribe(context.Background(), rec.observer())
	rec.wait(t)
	values, errs, completes := rec.snapshot()
	if len(values) != 0 || len(errs) != 0 || completes != 1 {
		t.Errorf("expected bare completion, got values=%v errs=%v completes=%d", values, errs, completes)
	}
}

func TestFail_ErrorsWithoutValues(t *testing.T) {
	boom := errors.New("boom")
	got, err := Collect(context.Background(), Fail[int](boom))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no values, got %v", got)
	}
}

func TestSubscribe_SynchronousSourceSettlesBeforeReturn(t *testing.T) {
	rec := newRecorder[int]()
	Of(1, 2).Subscribe(context.Background(), rec.observer())
	values, _, completes := rec.snapshot()
	if !intSliceEqual(values, []int{1, 2}) || completes != 1 {
		t.Errorf("expected [1 2] and completion before Subscribe returned, got %v / %d", values, completes)
	}
}

func TestSubscribe_OnlyOneTerminalEvent(t *testing.T) {
	src := New(func(_ context.Context, e *Emitter[int]) {
		e.Next(1)
		e.Complete()
		e.Next(2)
		e.Error(errors.New("late"))
		e.Complete()
	})
	rec := newRecorder[int]()
	src.Subscribe(context.Background(), rec.observer())
	values, errs, completes := rec.snapshot()
	if !intSliceEqual(values, []int{1}) {
		t.Errorf("expected [1], got %v", values)
	}
	if len(errs) != 0 || completes != 1 {
		t.Errorf("expected exactly one completion, got errs=%v completes=%d", errs, completes)
	}
}

func TestSubscription_DisposeIsIdempotent(t *testing.T) {
	src, emitter := capture[int]()
	sub := src.Subscribe(context.Background(), Observer[int]{})
	if sub.Disposed() {
		t.Fatal("fresh subscription reported disposed")
	}
	sub.Dispose()
	sub.Dispose()
	if !sub.Disposed() {
		t.Error("expected Disposed() after Dispose")
	}
	select {
	case <-sub.Done():
	default:
		t.Error("expected Done channel to be closed")
	}
	if !emitter().Stopped() {
		t.Error("expected producer to observe disposal")
	}

	var nilSub *Subscription
	nilSub.Dispose()
}

func TestSubscription_ParentCancelDisposes(t *testing.T) {
	src, emitter := capture[int]()
	ctx, cancel := context.WithCancel(context.Background())
	sub := src.Subscribe(ctx, Observer[int]{})
	if sub.Disposed() {
		t.Fatal("fresh subscription reported disposed")
	}
	cancel()
	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("canceling the parent context should dispose the subscription")
	}
	if !sub.Disposed() || !emitter().Stopped() {
		t.Error("expected the activation to be disposed")
	}
	sub.Dispose()
}

func TestSubscription_NilIsDisposed(t *testing.T) {
	var sub *Subscription
	if !sub.Disposed() {
		t.Error("nil subscription should report disposed")
	}
	select {
	case <-sub.Done():
	default:
		t.Error("nil subscription should have a closed Done channel")
	}
}

func TestSubscription_DisposeSuppressesLaterEvents(t *testing.T) {
	src, emitter := capture[int]()
	rec := newRecorder[int]()
	sub := src.Subscribe(context.Background(), rec.observer())

	if !emitter().Next(1) {
		t.Fatal("expected first value to be delivered")
	}
	sub.Dispose()
	if emitter().Next(2) {
		t.Error("Next after dispose must report false")
	}
	emitter().Error(errors.New("late"))
	emitter().Complete()

	values, errs, completes := rec.snapshot()
	if !intSliceEqual(values, []int{1}) {
		t.Errorf("already delivered value must stay, later ones dropped; got %v", values)
	}
	if len(errs) != 0 || completes != 0 {
		t.Errorf("no terminal event expected after dispose, got errs=%v completes=%d", errs, completes)
	}
}

func TestSubscribe_ParentCancelActsAsDispose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src, emitter := capture[int]()
	rec := newRecorder[int]()
	src.Subscribe(ctx, rec.observer())
	cancel()
	if emitter().Next(1) {
		t.Error("expected Next to report false after parent cancel")
	}
	if values, _, _ := rec.snapshot(); len(values) != 0 {
		t.Errorf("expected no values, got %v", values)
	}
}

func TestStream_Restartable(t *testing.T) {
	calls := 0
	src := New(func(_ context.Context, e *Emitter[int]) {
		calls++
		e.Next(calls)
		e.Complete()
	})
	first, _ := Collect(context.Background(), src)
	second, _ := Collect(context.Background(), src)
	if calls != 2 {
		t.Fatalf("expected two independent activations, got %d", calls)
	}
	if first[0] != 1 || second[0] != 2 {
		t.Errorf("expected independent runs, got %v and %v", first, second)
	}
}

func TestCollect_ContextDeadline(t *testing.T) {
	never := New(func(_ context.Context, _ *Emitter[int]) {})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := Collect(ctx, never)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
