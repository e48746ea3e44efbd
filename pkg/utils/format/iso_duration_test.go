package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PT0S", "0:00"},
		{"PT", "0:00"},
		{"PT1M", "1:00"},
		{"PT1M5S", "1:05"},
		{"PT45S", "0:45"},
		{"PT5S", "0:05"},
		{"PT12M3S", "12:03"},
		{"PT12M30S", "12:30"},
		{"PT59M59S", "59:59"},
		{"PT120M", "120:00"},
		{"", "0:00"},
		{"P", "0:00"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, ISODuration(tc.in))
		})
	}
}

func TestISODuration_HoursAreNotUnderstood(t *testing.T) {
	require.Equal(t, "1H2:03", ISODuration("PT1H2M3S"))
}
