package selectkey

import "testing"

func TestKeyIndexRoundTrip(t *testing.T) {
	if Max != 61 {
		t.Fatalf("Max=%d want 61", Max)
	}
	for i := 0; i < Max; i++ {
		k, ok := Key(i)
		if !ok {
			t.Fatalf("Key(%d) not ok", i)
		}
		if got := Index(rune(k)); got != i {
			t.Fatalf("Index(%q)=%d want %d", k, got, i)
		}
	}
	if _, ok := Key(Max); ok {
		t.Fatalf("Key(%d) should be out of range", Max)
	}
	for _, r := range []rune{'0', '!', ' ', 'é'} {
		if Index(r) != -1 {
			t.Fatalf("Index(%q) should be -1", r)
		}
	}
}

func TestChoicesCapped(t *testing.T) {
	if got := Choices(3); got != "123" {
		t.Fatalf("Choices(3)=%q", got)
	}
	if got := Choices(100); len(got) != Max {
		t.Fatalf("Choices(100) len=%d want %d", len(got), Max)
	}
	if got := Choices(-1); got != "" {
		t.Fatalf("Choices(-1)=%q", got)
	}
}
