package finbook

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2025-07-01 ", NewDate(2025, time.July, 1), false},
		{"2025-03-10T00:00:00Z", NewDate(2025, time.March, 10), false},
		{"invalid-date", Date{}, true},
		{"2025-13-01", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("2025-03")
	if err != nil {
		t.Fatalf("ParseMonth() error = %v", err)
	}
	if want := NewDate(2025, time.March, 1); got != want {
		t.Errorf("ParseMonth() = %v, want %v", got, want)
	}
	if _, err := ParseMonth("2025-3"); err == nil {
		t.Error("ParseMonth() accepted a single-digit month")
	}
	if _, err := ParseMonth("03-2025"); err == nil {
		t.Error("ParseMonth() accepted a reversed month")
	}
}

func TestDateMonthHelpers(t *testing.T) {
	d := NewDate(2024, time.February, 15)
	if got, want := d.StartOfMonth(), NewDate(2024, time.February, 1); got != want {
		t.Errorf("StartOfMonth() = %v, want %v", got, want)
	}
	// 2024 is a leap year.
	if got, want := d.EndOfMonth(), NewDate(2024, time.February, 29); got != want {
		t.Errorf("EndOfMonth() = %v, want %v", got, want)
	}
	if got, want := d.MonthKey(), "2024-02"; got != want {
		t.Errorf("MonthKey() = %q, want %q", got, want)
	}
	if !d.SameMonth(NewDate(2024, time.February, 1)) {
		t.Error("SameMonth() = false for dates in the same month")
	}
	if d.SameMonth(NewDate(2023, time.February, 15)) {
		t.Error("SameMonth() = true across years")
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected Date
		wantErr  bool
	}{
		{
			name:     "Zero Date from empty string",
			json:     `""`,
			expected: Date{},
			wantErr:  false,
		},
		{
			name:     "Non-Zero Date",
			json:     `"2024-05-21"`,
			expected: NewDate(2024, 5, 21),
			wantErr:  false,
		},
		{
			name:    "Invalid Date",
			json:    `"not-a-date"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.json), &d)
			if (err != nil) != tt.wantErr {
				t.Errorf("json.Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && d != tt.expected {
				t.Errorf("json.Unmarshal() got = %v, want %v", d, tt.expected)
			}
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		expected string
	}{
		{
			name:     "Zero Date",
			date:     Date{},
			expected: `""`,
		},
		{
			name:     "Non-Zero Date",
			date:     NewDate(2024, 5, 21),
			expected: `"2024-05-21"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.date)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("json.Marshal() = %s, want %s", got, tt.expected)
			}
		})
	}
}
