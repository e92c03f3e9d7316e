package format

import (
	"testing"

	"github.com/poiesic/eventide/core"
	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minutes int
		ok      bool
	}{
		{"12-hour with minutes", "Starts at 3:04 PM sharp", 15*60 + 4, true},
		{"24-hour", "doors open 15:04", 15*60 + 4, true},
		{"bare hour meridiem", "every day at 3 PM", 15 * 60, true},
		{"morning", "9:00 AM", 9 * 60, true},
		{"noon", "12:00 PM", 12 * 60, true},
		{"midnight", "12:00 AM", 0, true},
		{"no time", "bring your own mat", 0, false},
		{"empty", "", 0, false},
		{"invalid minutes", "25:99", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, ok := parseClock(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.minutes, minutes)
			}
		})
	}
}

func TestStartTime_MetadataWins(t *testing.T) {
	doc := &core.EventDocument{
		Contents: "Morning yoga\nTime: 9:00 AM",
		Metadata: map[string]string{core.MetaTime: "7:30 AM"},
	}

	minutes, ok := StartTime(doc)
	assert.True(t, ok)
	assert.Equal(t, 7*60+30, minutes)
}

func TestStartTime_FallsBackToContents(t *testing.T) {
	doc := &core.EventDocument{Contents: "Concert starting at 7 PM at the amphitheatre"}

	minutes, ok := StartTime(doc)
	assert.True(t, ok)
	assert.Equal(t, 19*60, minutes)
}

func TestStartTime_Unparseable(t *testing.T) {
	doc := &core.EventDocument{Contents: "Open studio, drop in any time"}

	_, ok := StartTime(doc)
	assert.False(t, ok)
}

func TestClockDisplay(t *testing.T) {
	assert.Equal(t, "9:05 AM", clockDisplay(9*60+5))
	assert.Equal(t, "12:00 PM", clockDisplay(12*60))
	assert.Equal(t, "7:30 PM", clockDisplay(19*60+30))
	assert.Equal(t, "12:15 AM", clockDisplay(15))
}
