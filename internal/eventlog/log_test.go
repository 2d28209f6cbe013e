package eventlog

import (
	"reflect"
	"sync"
	"testing"
)

func TestNewHoldsInitialMessage(t *testing.T) {
	l := New()

	entries := l.Entries()
	if len(entries) != 1 || entries[0] != InitialMessage {
		t.Errorf("Entries() = %v, want [%q]", entries, InitialMessage)
	}
}

func TestAppendKeepsOrder(t *testing.T) {
	l := New()
	l.Append("first")
	l.Append("second")
	l.Append("third")

	want := []string{InitialMessage, "first", "second", "third"}
	if got := l.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestClear(t *testing.T) {
	l := New()
	l.Append("something happened")

	for i := 0; i < 3; i++ {
		l.Clear()
		if got := l.Entries(); !reflect.DeepEqual(got, []string{InitialMessage}) {
			t.Fatalf("after Clear #%d: %v", i+1, got)
		}
	}
}

func TestEntriesIsCopy(t *testing.T) {
	l := New()
	entries := l.Entries()
	entries[0] = "tampered"

	if l.Entries()[0] != InitialMessage {
		t.Error("mutating Entries() result changed the log")
	}
}

func TestSince(t *testing.T) {
	l := New()
	l.Append("a")
	l.Append("b")

	tests := []struct {
		from int
		want []string
	}{
		{-1, []string{InitialMessage, "a", "b"}},
		{0, []string{InitialMessage, "a", "b"}},
		{1, []string{"a", "b"}},
		{3, []string{}},
		{10, []string{}},
	}

	for _, tt := range tests {
		got, total := l.Since(tt.from)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Since(%d) = %v, want %v", tt.from, got, tt.want)
		}
		if total != 3 {
			t.Errorf("Since(%d) total = %d, want 3", tt.from, total)
		}
	}
}

func TestConcurrentAppend(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Append("line")
			}
		}()
	}
	wg.Wait()

	if got := len(l.Entries()); got != 501 {
		t.Errorf("got %d entries, want 501", got)
	}
}
