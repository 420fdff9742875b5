package logger

import "testing"

func TestNew(t *testing.T) {
	for _, development := range []bool{true, false} {
		log, err := New(development)
		if err != nil {
			t.Fatalf("New(%v) failed: %v", development, err)
		}
		if log == nil {
			t.Fatalf("New(%v) returned nil logger", development)
		}
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Must panicked: %v", r)
		}
	}()
	if Must(true) == nil {
		t.Fatal("Must returned nil logger")
	}
}
