// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Outcome is the result of processing one item. Index is the item's position
// in the input slice.
type Outcome[T, R any] struct {
	Index int
	Item  T
	Value R
	Err   error
}

// Collect runs process over every item with at most workerCount goroutines.
// A failing item does not stop the others. Outcomes are returned in input
// order. Items not started before ctx is canceled carry ctx.Err().
func Collect[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) (R, error),
) []Outcome[T, R] {
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	outcomes := make([]Outcome[T, R], len(items))
	for i, item := range items {
		outcomes[i] = Outcome[T, R]{Index: i, Item: item}
	}

	tasks := make(chan int, workerCount)
	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				if err := ctx.Err(); err != nil {
					outcomes[idx].Err = err
					continue
				}
				outcomes[idx].Value, outcomes[idx].Err = process(ctx, items[idx])
			}
		}()
	}

	for idx := range items {
		tasks <- idx
	}
	close(tasks)
	wg.Wait()

	return outcomes
}
