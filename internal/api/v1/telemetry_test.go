package v1

import (
	"encoding/json"
	"testing"
	"time"
)

func int64Ptr(v int64) *int64 { return &v }

func TestTelemetryRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     TelemetryRequest
		wantErr bool
	}{
		{
			name: "valid request with all fields",
			req:  TelemetryRequest{DeviceID: "d1", StartTime: int64Ptr(10), EndTime: int64Ptr(20)},
		},
		{
			name: "valid request without timestamps",
			req:  TelemetryRequest{DeviceID: "d1"},
		},
		{
			name:    "missing device_id",
			req:     TelemetryRequest{StartTime: int64Ptr(10)},
			wantErr: true,
		},
		{
			name:    "end before start",
			req:     TelemetryRequest{DeviceID: "d1", StartTime: int64Ptr(20), EndTime: int64Ptr(10)},
			wantErr: true,
		},
		{
			name:    "negative start",
			req:     TelemetryRequest{DeviceID: "d1", StartTime: int64Ptr(-1)},
			wantErr: true,
		},
		{
			name: "start at largest representable second",
			req:  TelemetryRequest{DeviceID: "d1", StartTime: int64Ptr(MaxDeviceSeconds)},
		},
		{
			name:    "start beyond representable range",
			req:     TelemetryRequest{DeviceID: "d1", StartTime: int64Ptr(MaxDeviceSeconds + 1)},
			wantErr: true,
		},
		{
			name:    "end beyond representable range",
			req:     TelemetryRequest{DeviceID: "d1", StartTime: int64Ptr(0), EndTime: int64Ptr(MaxDeviceSeconds + 1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTelemetryRequest_ToSample(t *testing.T) {
	body := []byte(`{
		"device_id": "d1",
		"start_time": 60,
		"end_time": null,
		"aggregated_data": {"distance": 1500},
		"metrics": {"0": {"speed": 50}}
	}`)

	var req TelemetryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	recordedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := req.ToSample(recordedAt)

	if want := time.Date(2000, 1, 1, 0, 1, 0, 0, time.UTC); !s.StartTime.Equal(want) {
		t.Errorf("StartTime = %v, want %v", s.StartTime, want)
	}
	if s.HasEnd() {
		t.Errorf("expected no end time, got %v", s.EndTime)
	}
	if d, ok := s.Distance(); !ok || d != 1500 {
		t.Errorf("Distance() = %v, %v", d, ok)
	}
	if speeds := s.Speeds(); len(speeds) != 1 || speeds[0] != 50 {
		t.Errorf("Speeds() = %v", speeds)
	}
	if !s.RecordedAt.Equal(recordedAt) {
		t.Errorf("RecordedAt = %v", s.RecordedAt)
	}
}

func TestNewSampleResponse_OmitsMissingTimes(t *testing.T) {
	req := TelemetryRequest{DeviceID: "d1"}
	resp := NewSampleResponse(req.ToSample(time.Time{}))
	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["start_time"] != nil {
		t.Errorf("start_time should be null, got %v", decoded["start_time"])
	}
	if decoded["device_id"] != "d1" {
		t.Errorf("device_id = %v", decoded["device_id"])
	}
}

func TestFromDeviceSeconds_LargestSecondStaysAfterEpoch(t *testing.T) {
	got := FromDeviceSeconds(int64Ptr(MaxDeviceSeconds))
	if !got.After(DeviceEpoch) {
		t.Errorf("FromDeviceSeconds(%d) = %v, want after %v", MaxDeviceSeconds, got, DeviceEpoch)
	}
}
