package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample(dateTime string, min, max float64) Sample {
	return Sample{DateTime: dateTime, TempMin: min, TempMax: max}
}

func TestAggregate_GroupsAndOrders(t *testing.T) {
	samples := []Sample{
		sample("2024-01-01 06:00:00", 2, 2),
		sample("2024-01-01 12:00:00", 5, 5),
		sample("2024-01-01 18:00:00", 8, 8),
		sample("2024-01-02 06:00:00", -1, -1),
		sample("2024-01-02 12:00:00", 3, 3),
	}

	days := Aggregate(samples, 6)

	assert.Len(t, days, 2)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, 2.0, days[0].Min)
	assert.Equal(t, 8.0, days[0].Max)
	assert.Equal(t, "2024-01-02", days[1].Date)
	assert.Equal(t, -1.0, days[1].Min)
	assert.Equal(t, 3.0, days[1].Max)
}

func TestAggregate_EmptyInput(t *testing.T) {
	days := Aggregate(nil, 6)
	if days == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(days) != 0 {
		t.Errorf("expected empty output, got %d days", len(days))
	}
}

func TestAggregate_SingleSample(t *testing.T) {
	days := Aggregate([]Sample{{
		DateTime:    "2024-03-10 09:00:00",
		TempMin:     4.2,
		TempMax:     4.2,
		Description: "light rain",
		Icon:        "10d",
	}}, 6)

	assert.Len(t, days, 1)
	assert.Equal(t, Day{
		Date:        "2024-03-10",
		Min:         4.2,
		Max:         4.2,
		Description: "light rain",
		Icon:        "10d",
	}, days[0])
}

func TestAggregate_TruncatesToMaxDays(t *testing.T) {
	samples := []Sample{
		sample("2024-01-05 00:00:00", 1, 1),
		sample("2024-01-01 00:00:00", 1, 1),
		sample("2024-01-03 00:00:00", 1, 1),
		sample("2024-01-04 00:00:00", 1, 1),
		sample("2024-01-02 00:00:00", 1, 1),
	}

	days := Aggregate(samples, 3)

	assert.Len(t, days, 3)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, "2024-01-02", days[1].Date)
	assert.Equal(t, "2024-01-03", days[2].Date)
}

func TestAggregate_FirstSampleWinsConditions(t *testing.T) {
	samples := []Sample{
		{DateTime: "2024-01-01 00:00:00", TempMin: 1, TempMax: 1, Description: "clear sky", Icon: "01d"},
		{DateTime: "2024-01-01 03:00:00", TempMin: 2, TempMax: 2, Description: "heavy snow", Icon: "13d"},
	}

	days := Aggregate(samples, 6)

	assert.Len(t, days, 1)
	assert.Equal(t, "clear sky", days[0].Description)
	assert.Equal(t, "01d", days[0].Icon)
}

func TestAggregate_RoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantMin  float64
		wantMax  float64
	}{
		{"positive boundary", 2.25, 2.25, 2.3, 2.3},
		{"negative boundary", -2.25, -2.25, -2.3, -2.3},
		{"plain rounding", 3.14, 3.16, 3.1, 3.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := Aggregate([]Sample{sample("2024-01-01 00:00:00", tt.min, tt.max)}, 1)
			assert.Equal(t, tt.wantMin, days[0].Min)
			assert.Equal(t, tt.wantMax, days[0].Max)
		})
	}
}

func TestAggregate_UnixFallbackDateKey(t *testing.T) {
	// 2024-01-01T12:00:00Z
	days := Aggregate([]Sample{{Unix: 1704110400, TempMin: 1, TempMax: 1}}, 6)

	assert.Len(t, days, 1)
	assert.Equal(t, "2024-01-01", days[0].Date)
}

func TestAggregate_UnsortedInput(t *testing.T) {
	samples := []Sample{
		sample("2024-01-02 00:00:00", 5, 5),
		sample("2024-01-01 00:00:00", 1, 1),
		sample("2024-01-02 03:00:00", -4, 9),
	}

	days := Aggregate(samples, 6)

	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, "2024-01-02", days[1].Date)
	assert.Equal(t, -4.0, days[1].Min)
	assert.Equal(t, 9.0, days[1].Max)
}
