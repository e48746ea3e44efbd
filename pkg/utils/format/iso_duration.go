package format

import "strings"

// ISODuration converts a compact "PT[<m>M][<s>S]" duration into "M:SS".
//
// Hours are not understood: "PT1H2M3S" comes back as "1H2:03".
func ISODuration(in string) string {
	if len(in) < 2 {
		return "0:00"
	}
	hasSeconds := strings.IndexByte(in, 'S') > 0
	hasMinutes := strings.IndexByte(in, 'M') > 0

	s := in[2:]
	if hasSeconds {
		s = in[2 : len(in)-1]
	}

	minutes := "0"
	seconds := "00"

	switch {
	case hasMinutes && hasSeconds:
		minutes, seconds, _ = strings.Cut(s, "M")
	case hasMinutes:
		minutes, _, _ = strings.Cut(s, "M")
	case hasSeconds:
		seconds = s
	}

	if len(seconds) == 1 {
		seconds = "0" + seconds
	}

	return minutes + ":" + seconds
}
