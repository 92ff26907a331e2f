package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

func hm(h, m int) types.TimeString {
	return types.TimeString(h*60 + m)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		window   domain.TimeWindow
		duration int
		want     []types.TimeString
	}{
		{
			name:     "30 minutes in one hour",
			window:   domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)},
			duration: 30,
			want:     []types.TimeString{hm(9, 0), hm(9, 30)},
		},
		{
			name:     "45 minutes leaves a tail",
			window:   domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)},
			duration: 45,
			want:     []types.TimeString{hm(9, 0)},
		},
		{
			name:     "duration equals window",
			window:   domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)},
			duration: 60,
			want:     []types.TimeString{hm(9, 0)},
		},
		{
			name:     "duration longer than window",
			window:   domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)},
			duration: 61,
			want:     []types.TimeString{},
		},
		{
			name:     "window up to midnight",
			window:   domain.TimeWindow{Start: hm(23, 0), End: hm(24, 0)},
			duration: 20,
			want:     []types.TimeString{hm(23, 0), hm(23, 20), hm(23, 40)},
		},
		{
			name:     "zero duration",
			window:   domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)},
			duration: 0,
			want:     []types.TimeString{},
		},
		{
			name:     "malformed window",
			window:   domain.TimeWindow{Start: hm(10, 0), End: hm(9, 0)},
			duration: 15,
			want:     []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.window, tt.duration))
		})
	}
}

func TestGenerate_Properties(t *testing.T) {
	for start := 0; start < 24*60; start += 37 {
		for end := start + 1; end <= 24*60; end += 53 {
			window := domain.TimeWindow{Start: types.TimeString(start), End: types.TimeString(end)}

			for _, duration := range []int{5, 15, 30, 45, 60, 90, 480} {
				slots := Generate(window, duration)

				if duration > end-start {
					assert.Empty(t, slots, "window %s-%s duration %d", window.Start, window.End, duration)
					continue
				}

				if assert.NotEmpty(t, slots) {
					assert.Equal(t, window.Start, slots[0])
				}
				for i, slot := range slots {
					assert.LessOrEqual(t, slot.Minutes()+duration, end)
					if i > 0 {
						assert.Greater(t, slot, slots[i-1])
					}
				}
			}
		}
	}
}

func TestGenerateDay(t *testing.T) {
	windows := []domain.TimeWindow{
		{Start: hm(14, 0), End: hm(15, 0)},
		{Start: hm(9, 0), End: hm(10, 0)},
		// Старая запись с пересечением: 09:30 встречается дважды
		{Start: hm(9, 30), End: hm(10, 30)},
	}

	got := GenerateDay(windows, 30)

	assert.Equal(t, []types.TimeString{hm(9, 0), hm(9, 30), hm(10, 0), hm(14, 0), hm(14, 30)}, got)
	assert.Empty(t, GenerateDay(nil, 30))
}
