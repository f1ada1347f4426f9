package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aevon-lab/drivelog/internal/core/storage"
	"github.com/aevon-lab/drivelog/internal/core/telemetry"
	"github.com/aevon-lab/drivelog/internal/core/trip"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// marshalFields encodes a field map for a JSONB column.
// Empty maps produce nil (SQL NULL) rather than "{}".
func marshalFields(f telemetry.Fields) ([]byte, error) {
	if len(f) == 0 {
		return nil, nil
	}
	return json.Marshal(f)
}

func unmarshalFields(data []byte) (telemetry.Fields, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var f telemetry.Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// mapWriteError translates driver errors into storage sentinels.
func mapWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", storage.ErrConflict, pqErr.Constraint)
	}
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// sampleArgs returns the insert arguments for s in queryInsertSample order.
func sampleArgs(s *telemetry.Sample, tripID string) ([]interface{}, error) {
	aggregated, err := marshalFields(s.AggregatedData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aggregated_data: %w", err)
	}
	metrics, err := marshalFields(s.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	return []interface{}{
		s.DeviceID,
		nullString(tripID),
		s.RecordedAt,
		nullTime(s.StartTime),
		nullTime(s.EndTime),
		aggregated,
		metrics,
	}, nil
}

// scanSampleRow scans a telemetry row in sampleColumns order.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSampleRow(row scanner) (telemetry.Sample, error) {
	var (
		s                   telemetry.Sample
		tripID              sql.NullString
		start, end          sql.NullTime
		aggregated, metrics []byte
	)

	if err := row.Scan(&s.Seq, &s.DeviceID, &tripID, &s.RecordedAt, &start, &end, &aggregated, &metrics); err != nil {
		return telemetry.Sample{}, fmt.Errorf("failed to scan telemetry row: %w", err)
	}

	s.TripID = tripID.String
	if start.Valid {
		s.StartTime = start.Time.UTC()
	}
	if end.Valid {
		s.EndTime = end.Time.UTC()
	}
	s.RecordedAt = s.RecordedAt.UTC()

	var err error
	if s.AggregatedData, err = unmarshalFields(aggregated); err != nil {
		return telemetry.Sample{}, fmt.Errorf("failed to unmarshal aggregated_data: %w", err)
	}
	if s.Metrics, err = unmarshalFields(metrics); err != nil {
		return telemetry.Sample{}, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	return s, nil
}

func scanSampleRows(rows *sql.Rows) ([]telemetry.Sample, error) {
	defer rows.Close()

	var samples []telemetry.Sample
	for rows.Next() {
		s, err := scanSampleRow(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating telemetry: %w", err)
	}
	return samples, nil
}

// scanTripRow scans a trips row in tripColumns order.
func scanTripRow(row scanner) (*trip.Trip, error) {
	var (
		t                      trip.Trip
		startLoc, endLoc, note sql.NullString
		distance               decimal.Decimal
	)

	err := row.Scan(
		&t.ID,
		&t.DeviceID,
		&t.Ordinal,
		&t.StartTime,
		&t.EndTime,
		&t.LastSampleAt,
		&startLoc,
		&endLoc,
		&note,
		&distance,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan trip row: %w", err)
	}

	t.StartTime = t.StartTime.UTC()
	t.EndTime = t.EndTime.UTC()
	t.LastSampleAt = t.LastSampleAt.UTC()
	t.StartLocation = stringPtr(startLoc)
	t.EndLocation = stringPtr(endLoc)
	t.Note = stringPtr(note)
	t.DistanceKm = distance.InexactFloat64()
	return &t, nil
}
