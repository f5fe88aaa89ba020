package expiry

import (
	"testing"
	"time"
)

func TestYYMM_Rollover(t *testing.T) {
	issue := time.Date(2029, time.December, 15, 0, 0, 0, 0, time.UTC)
	if got := YYMM(issue, 1); got != "3012" {
		t.Fatalf("YYMM got %s want %s", got, "3012")
	}
	// Leap day issue should add years correctly.
	issue = time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC)
	if got := YYMM(issue, 3); got != "3102" {
		t.Fatalf("YYMM got %s want %s", got, "3102")
	}
}

func TestCardFace(t *testing.T) {
	face, err := CardFace("2905")
	if err != nil || face != "05/29" {
		t.Fatalf("CardFace 2905 got %s err=%v", face, err)
	}
	if _, err := CardFace("2913"); err == nil {
		t.Fatalf("expected error for month 13")
	}
}

func TestParseYYMMEndOfMonth(t *testing.T) {
	// 2030-02 (non-leap): expect 28th 23:59:59.999999999
	ts, err := ParseYYMMEndOfMonth("3002", time.UTC)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := time.Date(2030, time.February, 28, 23, 59, 59, 999999999, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("got %v want %v", ts, want)
	}

	// 2028-02 (leap): 29th
	ts, err = ParseYYMMEndOfMonth("2802", time.UTC)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want = time.Date(2028, time.February, 29, 23, 59, 59, 999999999, time.UTC)
	if !ts.Equal(want) {
		t.Fatalf("got %v want %v", ts, want)
	}
}

func TestValidateYYMM(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"3002", true}, {"9912", true}, {"0001", true},
		{"123", false}, {"12a4", false}, {"3013", false}, {"0000", false}, {"29=5", false},
	}
	for _, c := range cases {
		err := ValidateYYMM(c.in)
		if (err == nil) != c.ok {
			t.Fatalf("ValidateYYMM(%s) ok=%v got err=%v", c.in, c.ok, err)
		}
	}
}

func TestIsExpired(t *testing.T) {
	yymm := "3002"
	end, _ := ParseYYMMEndOfMonth(yymm, time.UTC)

	expired, err := IsExpired(yymm, end, time.UTC)
	if err != nil || expired {
		t.Fatalf("expected not expired at end, got expired=%v err=%v", expired, err)
	}
	expired, err = IsExpired(yymm, end.Add(time.Nanosecond), time.UTC)
	if err != nil || !expired {
		t.Fatalf("expected expired after %v, got expired=%v err=%v", end, expired, err)
	}
	if _, err := IsExpired("3013", end, time.UTC); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}
