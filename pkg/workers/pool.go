/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package workers runs one task per item on a bounded pool.
package workers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers = 5
	DefaultDelay   = 200 * time.Millisecond
)

// Options bounds the pool. Delay is slept at the start of every task so a
// fleet is not hit by a burst of simultaneous connections.
type Options struct {
	Workers int
	Delay   time.Duration
}

// Map calls fn once per item with at most opts.Workers calls in flight and
// returns the results in completion order. Tasks cannot fail; fn reports
// failures inside R. Items not yet started when ctx is cancelled are skipped.
func Map[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) R) []R {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var (
		mu      sync.Mutex
		results = make([]R, 0, len(items))
		g       errgroup.Group
	)

	g.SetLimit(workers)

	for _, item := range items {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if opts.Delay > 0 && !sleep(ctx, opts.Delay) {
				return nil
			}

			r := fn(ctx, item)

			mu.Lock()
			results = append(results, r)
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()

	return results
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
