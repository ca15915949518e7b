// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockSleepAdvancesAndRecords(t *testing.T) {
	clock := Fake(epoch)
	clock.Sleep(200 * time.Millisecond)
	clock.Sleep(50 * time.Microsecond)
	clock.Sleep(0)

	want := epoch.Add(200*time.Millisecond + 50*time.Microsecond)
	if got := clock.Now(); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}

	sleeps := clock.Sleeps()
	if len(sleeps) != 3 {
		t.Fatalf("Sleeps() returned %d entries, want 3", len(sleeps))
	}
	if sleeps[0] != 200*time.Millisecond {
		t.Errorf("Sleeps()[0] = %v, want 200ms", sleeps[0])
	}
	if total := clock.SleptFor(); total != 200*time.Millisecond+50*time.Microsecond {
		t.Errorf("SleptFor() = %v, want 200.05ms", total)
	}
}

func TestFakeClockSleepsReturnsCopy(t *testing.T) {
	clock := Fake(epoch)
	clock.Sleep(time.Second)
	sleeps := clock.Sleeps()
	sleeps[0] = 0
	if got := clock.Sleeps()[0]; got != time.Second {
		t.Errorf("Sleeps()[0] = %v after caller mutation, want 1s", got)
	}
}

func TestFakeClockAdvanceDoesNotRecord(t *testing.T) {
	clock := Fake(epoch)
	clock.Advance(time.Minute)
	if sleeps := clock.Sleeps(); len(sleeps) != 0 {
		t.Errorf("Sleeps() = %v after Advance, want none", sleeps)
	}
	if clock.SleptFor() != 0 {
		t.Errorf("SleptFor() = %v, want 0", clock.SleptFor())
	}
}

func TestFakeClockConcurrentSleeps(t *testing.T) {
	clock := Fake(epoch)
	done := make(chan struct{})
	for range 8 {
		go func() {
			clock.Sleep(time.Millisecond)
			done <- struct{}{}
		}()
	}
	for range 8 {
		<-done
	}
	if got := clock.Now(); !got.Equal(epoch.Add(8 * time.Millisecond)) {
		t.Errorf("Now() = %v, want epoch+8ms", got)
	}
}

func TestRealClockNowMovesForward(t *testing.T) {
	clock := Real()
	before := clock.Now()
	clock.Sleep(time.Millisecond)
	if !clock.Now().After(before) {
		t.Error("Real().Now() did not advance across Sleep")
	}
}
