package ports

import "testing"

func TestParseCleanupPolicy(t *testing.T) {
	cases := []struct {
		in      string
		want    CleanupPolicy
		wantErr bool
	}{
		{"", CleanupClear, false},
		{"clear", CleanupClear, false},
		{" CLEAR ", CleanupClear, false},
		{"drop", CleanupDrop, false},
		{"Drop", CleanupDrop, false},
		{"delete", "", true},
	}

	for _, tc := range cases {
		got, err := ParseCleanupPolicy(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %q want %q", tc.in, got, tc.want)
		}
	}
}
