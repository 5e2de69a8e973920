package utils

import "testing"

func TestCoerceAdminID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain numeric", "7", "7"},
		{"leading zeros collapse", "007", "7"},
		{"large numeric", "123456789", "123456789"},
		{"non-numeric passes through", "admin-7", "admin-7"},
		{"uuid passes through", "b3c9e6a0-1f2d-4c3b", "b3c9e6a0-1f2d-4c3b"},
		{"zero passes through", "0", "0"},
		{"empty passes through", "", ""},
		{"numeric with spaces passes through", " 7 ", " 7 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoerceAdminID(tt.raw); got != tt.want {
				t.Errorf("CoerceAdminID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCoerceAdminIDWriteReadAgreement(t *testing.T) {
	// A record written under "007" must be found by a session reporting
	// "7", and vice versa.
	if CoerceAdminID("007") != CoerceAdminID("7") {
		t.Error("coercion is not stable across equivalent numeric forms")
	}
}
