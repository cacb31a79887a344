// Package clock provides context-aware waiting helpers.
package clock

import (
	"context"
	"reflect"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitForSignal waits until d elapses or any signal fires. Nil signals are ignored.
// It reports whether a signal ended the wait.
func WaitForSignal(ctx context.Context, d time.Duration, signals ...<-chan struct{}) (bool, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	cases := make([]reflect.SelectCase, 0, len(signals)+2)
	cases = append(cases,
		reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())},
		reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(timer.C)},
	)
	for _, s := range signals {
		if s == nil {
			continue
		}
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(s)})
	}

	chosen, _, _ := reflect.Select(cases)
	switch chosen {
	case 0:
		return false, ctx.Err()
	case 1:
		return false, nil
	default:
		return true, nil
	}
}
