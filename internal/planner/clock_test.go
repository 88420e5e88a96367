package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"25:30", 1530, false},
		{" 8:05 ", 485, false},
		{"0900", 0, true},
		{"aa:00", 0, true},
		{"09:60", 0, true},
		{"-1:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", formatClock(540))
	assert.Equal(t, "00:05", formatClock(5))
	assert.Equal(t, "25:30", formatClock(1530))
}

func TestClockHour(t *testing.T) {
	assert.Equal(t, 9, clockHour("09:45"))
	assert.Equal(t, 26, clockHour("26:10"))
	assert.Equal(t, -1, clockHour("noon"))
}
