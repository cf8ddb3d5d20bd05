// Package lifecycle runs cleanup work when the process is interrupted.
package lifecycle

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Cleanup receives the signal that interrupted the run.
type Cleanup func(os.Signal)

var (
	watched = []os.Signal{os.Interrupt, syscall.SIGTERM}

	listenOnce sync.Once
	signals    chan os.Signal

	mu       sync.Mutex
	nextID   int
	cleanups = map[int]Cleanup{}
	pending  []int

	notify = signal.Notify
	stop   = signal.Stop
	exit   = os.Exit
)

// OnInterrupt schedules cleanup to run if the process receives SIGINT or
// SIGTERM before the returned release func is called. Cleanups run newest
// first, then the process exits with 128+signal.
func OnInterrupt(cleanup Cleanup) (release func()) {
	if cleanup == nil {
		return func() {}
	}

	listenOnce.Do(listen)

	mu.Lock()
	nextID++
	id := nextID
	cleanups[id] = cleanup
	pending = append(pending, id)
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { forget(id) })
	}
}

func forget(id int) {
	mu.Lock()
	defer mu.Unlock()

	delete(cleanups, id)
	for i, candidate := range pending {
		if candidate == id {
			pending = append(pending[:i], pending[i+1:]...)
			return
		}
	}
}

func listen() {
	signals = make(chan os.Signal, 1)
	notify(signals, watched...)

	go func(incoming <-chan os.Signal) {
		sig, ok := <-incoming
		if !ok {
			return
		}
		runCleanups(sig)
		exit(exitCode(sig))
	}(signals)
}

func runCleanups(sig os.Signal) {
	mu.Lock()
	ordered := make([]Cleanup, 0, len(pending))
	for i := len(pending) - 1; i >= 0; i-- {
		ordered = append(ordered, cleanups[pending[i]])
	}
	mu.Unlock()

	for _, cleanup := range ordered {
		safely(cleanup, sig)
	}
}

func safely(cleanup Cleanup, sig os.Signal) {
	defer func() {
		_ = recover()
	}()
	cleanup(sig)
}

func exitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}

// reset restores the package state (tests only).
func reset() {
	if signals != nil {
		stop(signals)
		close(signals)
	}
	signals = nil
	listenOnce = sync.Once{}

	mu.Lock()
	nextID = 0
	cleanups = map[int]Cleanup{}
	pending = nil
	mu.Unlock()

	notify = signal.Notify
	stop = signal.Stop
	exit = os.Exit
}
