package service

import (
	"sync"
	"testing"
)

func TestUserLocksSerializeSameUser(t *testing.T) {
	locks := newUserLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.acquire("chris_rivers")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("expected 100 serialized increments, got %d", counter)
	}
}

func TestUserLocksDropReleasedEntries(t *testing.T) {
	locks := newUserLocks()

	release := locks.acquire("chris_rivers")
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Errorf("expected no retained lock entries, got %d", len(locks.locks))
	}
}

func TestUserLocksIndependentUsers(t *testing.T) {
	locks := newUserLocks()

	releaseA := locks.acquire("chris_rivers")
	defer releaseA()

	// Must not block while chris_rivers holds the other lock.
	done := make(chan struct{})
	go func() {
		releaseB := locks.acquire("dwight_schrute")
		releaseB()
		close(done)
	}()
	<-done
}
