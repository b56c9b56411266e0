package appointment

import (
	"testing"
	"time"
)

func TestParseSlotDate(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"canonical", "05_09_2026", "05_09_2026", false},
		{"unpadded day and month", "5_9_2026", "05_09_2026", false},
		{"end of month", "31_12_2026", "31_12_2026", false},
		{"leap day", "29_02_2028", "29_02_2028", false},
		{"not a leap year", "29_02_2026", "", true},
		{"day overflow", "31_02_2026", "", true},
		{"month out of range", "05_13_2026", "", true},
		{"zero day", "0_09_2026", "", true},
		{"year too small", "05_09_1999", "", true},
		{"missing part", "05_09", "", true},
		{"wrong separator", "05-09-2026", "", true},
		{"garbage", "tomorrow", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _, err := ParseSlotDate(tc.raw, time.UTC)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseSlotDate(%q) succeeded, want error", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSlotDate(%q) returned error: %v", tc.raw, err)
			}
			if got != tc.want {
				t.Errorf("ParseSlotDate(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseSlotTime(t *testing.T) {
	cases := []struct {
		raw     string
		hour    int
		minute  int
		wantErr bool
	}{
		{"10:30", 10, 30, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"24:00", 0, 0, true},
		{"9:30pm", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			h, m, err := ParseSlotTime(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseSlotTime(%q) succeeded, want error", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSlotTime(%q) returned error: %v", tc.raw, err)
			}
			if h != tc.hour || m != tc.minute {
				t.Errorf("ParseSlotTime(%q) = %d:%d, want %d:%d", tc.raw, h, m, tc.hour, tc.minute)
			}
		})
	}
}

func TestSlotInstant(t *testing.T) {
	_, date, err := ParseSlotDate("05_09_2026", time.UTC)
	if err != nil {
		t.Fatalf("ParseSlotDate: %v", err)
	}

	instant, err := SlotInstant(date, "14:30")
	if err != nil {
		t.Fatalf("SlotInstant: %v", err)
	}

	want := time.Date(2026, time.September, 5, 14, 30, 0, 0, time.UTC)
	if !instant.Equal(want) {
		t.Errorf("SlotInstant = %v, want %v", instant, want)
	}
}
