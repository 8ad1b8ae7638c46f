package schedule_test

import (
	"testing"

	"github.com/nikolayk812/cartstore/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetTrainingHours(t *testing.T) {
	tests := []struct {
		name      string
		timeRange string
		want      string
		wantError string
	}{
		{
			name:      "single 24h clock range: ok",
			timeRange: "09:00 - 17:00",
			want:      "8",
		},
		{
			name:      "range without spaces: ok",
			timeRange: "09:15-10:00",
			want:      "0.75",
		},
		{
			name:      "12h clock with minutes: ok",
			timeRange: "9:30 am - 1:00 pm",
			want:      "3.5",
		},
		{
			name:      "12h clock hours only: ok",
			timeRange: "10AM - 2PM",
			want:      "4",
		},
		{
			name:      "split sessions: summed",
			timeRange: "09:00 - 12:00, 13:00 - 17:00",
			want:      "7",
		},
		{
			name:      "overlapping sessions: counted once",
			timeRange: "09:00 - 12:00; 11:00 - 13:00",
			want:      "4",
		},
		{
			name:      "contained session: counted once",
			timeRange: "09:00 - 17:00, 10:00 - 11:00",
			want:      "8",
		},
		{
			name:      "adjacent sessions: ok",
			timeRange: "13:00 - 14:00, 09:00 - 13:00",
			want:      "5",
		},
		{
			name:      "uneven minutes: rounded",
			timeRange: "09:00 - 09:20",
			want:      "0.33",
		},
		{
			name:      "trailing separator: ignored",
			timeRange: "09:00 - 10:00,",
			want:      "1",
		},
		{
			name:      "end at 24:00: ok",
			timeRange: "22:00 - 24:00",
			want:      "2",
		},
		{
			name:      "end at 12 AM: ok",
			timeRange: "10 PM - 12 AM",
			want:      "2",
		},
		{
			name:      "end at 00:00: ok",
			timeRange: "23:30 - 00:00",
			want:      "0.5",
		},
		{
			name:      "start at 24:00: error",
			timeRange: "24:00 - 01:00",
			wantError: "parseSpan[24:00 - 01:00]: start: clock[24:00] is not valid",
		},
		{
			name:      "empty: error",
			timeRange: "  ",
			wantError: "time range is empty",
		},
		{
			name:      "separators only: error",
			timeRange: ", ;",
			wantError: "time range is empty",
		},
		{
			name:      "missing dash: error",
			timeRange: "09:00 17:00",
			wantError: "parseSpan[09:00 17:00]: separator '-' is missing",
		},
		{
			name:      "end before start: error",
			timeRange: "17:00 - 09:00",
			wantError: "parseSpan[17:00 - 09:00]: end must be after start",
		},
		{
			name:      "zero length: error",
			timeRange: "09:00 - 09:00",
			wantError: "parseSpan[09:00 - 09:00]: end must be after start",
		},
		{
			name:      "bad clock: error",
			timeRange: "9h - 10:00",
			wantError: "parseSpan[9h - 10:00]: start: clock[9h] is not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schedule.NetTrainingHours(tt.timeRange)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.String())
		})
	}
}
