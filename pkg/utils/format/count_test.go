package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	require.Equal(t, "0", Count(0))
	require.Equal(t, "999", Count(999))
	require.Equal(t, "1,234,567", Count(1234567))
	require.Equal(t, "9,223,372,036,854,775,807", Count(math.MaxInt64))
	require.Equal(t, "9,223,372,036,854,775,808", Count(math.MaxInt64+1))
	require.Equal(t, "18,446,744,073,709,551,615", Count(math.MaxUint64))
}

func TestCountFormatter(t *testing.T) {
	require.Equal(t, "1,234", CountFormatter("en")(1234))
	require.Equal(t, "1,234", CountFormatter("not a locale!")(1234))
	require.Equal(t, "1.234.567", CountFormatter("de")(1234567))
	require.Equal(t, "18,446,744,073,709,551,615", CountFormatter("en")(math.MaxUint64))
}
