package shtest

import "testing"

func TestParseRange_Empty(t *testing.T) {
	for _, s := range []string{"", "0"} {
		r, err := ParseRange(s)
		if err != nil {
			t.Fatalf("ParseRange(%q): unexpected error: %v", s, err)
		}
		if !r.Empty() {
			t.Errorf("ParseRange(%q).Empty() = false, want true", s)
		}
	}
}

func TestParseRange_SingleAndList(t *testing.T) {
	r, err := ParseRange("1,3,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []int{1, 3, 5} {
		if !r.Contains(k) {
			t.Errorf("Contains(%d) = false, want true", k)
		}
	}
	for _, k := range []int{2, 4, 6} {
		if r.Contains(k) {
			t.Errorf("Contains(%d) = true, want false", k)
		}
	}
}

func TestParseRange_Dash(t *testing.T) {
	r, err := ParseRange("5-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []int{5, 6, 7} {
		if !r.Contains(k) {
			t.Errorf("Contains(%d) = false, want true", k)
		}
	}
	if r.Contains(4) || r.Contains(8) {
		t.Errorf("range leaked outside 5-7")
	}
}

func TestParseRange_ReversedDash(t *testing.T) {
	r, err := ParseRange("7-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Contains(5) || !r.Contains(6) || !r.Contains(7) {
		t.Errorf("reversed range 7-5 should still cover 5,6,7")
	}
}

func TestParseRange_DeduplicatesAsSet(t *testing.T) {
	a, err := ParseRange("3,1,1,2-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ParseRange("1,2,3,4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for k := 0; k <= 5; k++ {
		if a.Contains(k) != b.Contains(k) {
			t.Errorf("k=%d: a.Contains=%v b.Contains=%v, want equal", k, a.Contains(k), b.Contains(k))
		}
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, s := range []string{"a", "1,", ",1", "1-", "-1", "1,a,2"} {
		if _, err := ParseRange(s); err == nil {
			t.Errorf("ParseRange(%q): expected error, got nil", s)
		}
	}
}
