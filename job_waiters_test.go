package main

import "testing"

func resetJobWaiters() {
	jobWaiters.Lock()
	jobWaiters.m = make(map[string][]chan *DownloadJob)
	jobWaiters.Unlock()
}

// A client can give up on its waiter at the exact moment the worker turns
// the job terminal. Whichever side removes the waiter owns the close; the
// loser must not close the channel a second time.
func TestUnregisterAfterCompletionNotify(t *testing.T) {
	resetJobWaiters()

	job := &DownloadJob{ID: "w-1", Status: StatusCompleted}
	ch := registerJobWaiter(job.ID)

	notifyJobCompletion(job)
	unregisterJobWaiter(job.ID, ch)

	// The buffered terminal result is still deliverable.
	got, ok := <-ch
	if !ok || got == nil || got.ID != job.ID {
		t.Errorf("terminal result lost: got %v, ok %v", got, ok)
	}
}

func TestUnregisterClosesOwnedWaiter(t *testing.T) {
	resetJobWaiters()

	ch := registerJobWaiter("w-2")
	unregisterJobWaiter("w-2", ch)

	if _, ok := <-ch; ok {
		t.Error("unregistered waiter should read as closed")
	}

	// A later completion has nobody left to notify.
	notifyJobCompletion(&DownloadJob{ID: "w-2", Status: StatusFailed})

	jobWaiters.Lock()
	_, exists := jobWaiters.m["w-2"]
	jobWaiters.Unlock()
	if exists {
		t.Error("waiter registry still holds an entry for w-2")
	}
}

func TestNotifyReachesAllWaiters(t *testing.T) {
	resetJobWaiters()

	job := &DownloadJob{ID: "w-3", Status: StatusCompleted}
	a := registerJobWaiter(job.ID)
	b := registerJobWaiter(job.ID)

	notifyJobCompletion(job)

	for _, ch := range []chan *DownloadJob{a, b} {
		got, ok := <-ch
		if !ok || got == nil || got.ID != job.ID {
			t.Errorf("waiter missed the terminal state: got %v, ok %v", got, ok)
		}
	}
}
