package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetricRangeDays(t *testing.T) {
	cases := map[string]int{
		"1W": 7,
		"1M": 30,
		"3M": 90,
		"6M": 180,
		"1Y": 365,
	}
	for rangeParam, want := range cases {
		require.Equal(t, want, MetricRangeDays(rangeParam), "range %s", rangeParam)
	}
}

func TestMetricRangeDaysDefaultsTo30(t *testing.T) {
	require.Equal(t, 30, MetricRangeDays(""))
	require.Equal(t, 30, MetricRangeDays("2W"))
	require.Equal(t, 30, MetricRangeDays("1w"))
}
