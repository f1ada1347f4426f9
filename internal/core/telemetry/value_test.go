package telemetry

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	var fields Fields
	require.NoError(t, json.Unmarshal([]byte(`{
		"distance": 1250.5,
		"unit": "m",
		"ok": true,
		"none": null,
		"nested": {"speed": 42},
		"list": [1, "two"]
	}`), &fields))

	d, ok := fields.Get("distance").Float()
	require.True(t, ok)
	require.Equal(t, 1250.5, d)

	unit, ok := fields.Get("unit").AsText()
	require.True(t, ok)
	require.Equal(t, "m", unit)

	_, ok = fields.Get("unit").Float()
	require.False(t, ok)

	flag, ok := fields.Get("ok").Bool()
	require.True(t, ok)
	require.True(t, flag)

	require.True(t, fields.Get("none").IsAbsent())
	require.True(t, fields.Get("missing").IsAbsent())
	require.Equal(t, KindMap, fields.Get("nested").Kind())

	speed, ok := fields.Get("nested").Get("speed").Float()
	require.True(t, ok)
	require.Equal(t, 42.0, speed)

	require.Len(t, fields.Get("list").Items(), 2)
	require.True(t, fields.Get("distance").Get("speed").IsAbsent())
}

func TestValue_MarshalRoundTripsPlainJSON(t *testing.T) {
	fields := Fields{
		"distance": Number(12),
		"nested":   Map(Fields{"speed": Number(3)}),
	}
	body, err := json.Marshal(fields)
	require.NoError(t, err)
	require.JSONEq(t, `{"distance":12,"nested":{"speed":3}}`, string(body))

	_, err = json.Marshal(Number(math.Inf(1)))
	require.Error(t, err)
}

func TestValue_Decimal(t *testing.T) {
	d, ok := Number(0.1).Decimal()
	require.True(t, ok)
	require.Equal(t, "0.1", d.String())

	_, ok = Text("0.1").Decimal()
	require.False(t, ok)
}

func TestFromAny_RejectsUnsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	require.Error(t, err)
}

func TestSample_SpeedsAndBoundary(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := Sample{
		DeviceID:  "d1",
		StartTime: start,
		Metrics: Fields{
			"b": Map(Fields{"speed": Number(20)}),
			"a": Map(Fields{"speed": Number(10)}),
			"c": Map(Fields{"rpm": Number(900)}),
		},
	}
	require.Equal(t, []float64{10, 20}, s.Speeds())
	require.Equal(t, start, s.Boundary())

	s.EndTime = start.Add(time.Minute)
	require.Equal(t, start.Add(time.Minute), s.Boundary())
	require.NoError(t, s.Validate())

	s.EndTime = start.Add(-time.Minute)
	require.Error(t, s.Validate())
	require.Error(t, Sample{}.Validate())
}
