package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, ParseDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute), "invalid input falls back to the default")
}

func TestToday(t *testing.T) {
	fixed := func() time.Time { return time.Date(2024, time.March, 5, 23, 59, 0, 0, time.Local) }
	assert.Equal(t, "2024-03-05", Today(fixed))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-01-31", want: "2024-01-31"},
		{in: " 2024-02-01 ", want: "2024-02-01"},
		{in: "2024-02-30", wantErr: true},
		{in: "01/02/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "NormalizeDate(%q)", tt.in)
			continue
		}
		assert.NoError(t, err, "NormalizeDate(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
