package lifecycle

import (
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness replaces the OS hooks and returns a channel to deliver signals on
// and one that receives the exit code.
func harness(t *testing.T) (func(os.Signal), chan int) {
	t.Helper()
	reset()
	t.Cleanup(reset)

	var target chan<- os.Signal
	var mu sync.Mutex
	notify = func(c chan<- os.Signal, _ ...os.Signal) {
		mu.Lock()
		target = c
		mu.Unlock()
	}
	stop = func(chan<- os.Signal) {}

	exited := make(chan int, 1)
	exit = func(code int) { exited <- code }

	send := func(sig os.Signal) {
		mu.Lock()
		defer mu.Unlock()
		require.NotNil(t, target, "no listener registered")
		target <- sig
	}
	return send, exited
}

func waitForExit(t *testing.T, exited chan int) int {
	t.Helper()
	select {
	case code := <-exited:
		return code
	case <-time.After(time.Second):
		t.Fatal("process did not exit")
		return -1
	}
}

func TestCleanupsRunNewestFirst(t *testing.T) {
	send, exited := harness(t)

	var calls []string
	OnInterrupt(func(os.Signal) { calls = append(calls, "temp file") })
	OnInterrupt(func(os.Signal) { calls = append(calls, "backup") })

	send(syscall.SIGINT)
	assert.Equal(t, 130, waitForExit(t, exited))
	assert.Equal(t, []string{"backup", "temp file"}, calls)
}

func TestReleasedCleanupDoesNotRun(t *testing.T) {
	send, exited := harness(t)

	called := false
	release := OnInterrupt(func(os.Signal) { called = true })
	release()
	release()

	send(syscall.SIGTERM)
	assert.Equal(t, 143, waitForExit(t, exited))
	assert.False(t, called)
}

func TestPanickingCleanupDoesNotStopOthers(t *testing.T) {
	send, exited := harness(t)

	called := false
	OnInterrupt(func(os.Signal) { called = true })
	OnInterrupt(func(os.Signal) { panic("boom") })

	send(syscall.SIGINT)
	waitForExit(t, exited)
	assert.True(t, called)
}

func TestNilCleanupIsIgnored(t *testing.T) {
	reset()
	t.Cleanup(reset)

	release := OnInterrupt(nil)
	release()
	assert.Nil(t, signals)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 130, exitCode(os.Interrupt))
	assert.Equal(t, 143, exitCode(syscall.SIGTERM))
	assert.Equal(t, 1, exitCode(fakeSignal{}))
}

type fakeSignal struct{}

func (fakeSignal) String() string { return "fake" }
func (fakeSignal) Signal()        {}
