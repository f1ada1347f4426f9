package postgres

// SQL for telemetry and trip storage

const (
	sampleColumns = `seq, device_id, trip_id, recorded_at, start_time, end_time, aggregated_data, metrics`
	tripColumns   = `id, device_id, ordinal, start_time, end_time, last_sample_at,
			start_location, end_location, note, distance_km, created_at, updated_at`

	// queryInsertSample stores one sample; trip_id may be NULL.
	queryInsertSample = `
		INSERT INTO telemetry (
			device_id, trip_id, recorded_at, start_time, end_time, aggregated_data, metrics
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq
	`

	// queryFetchSamples filters by start time. NULL bounds leave that side open;
	// NULL start times only match when both bounds are NULL.
	queryFetchSamples = `
		SELECT ` + sampleColumns + `
		FROM telemetry
		WHERE device_id = $1
		  AND ($2::timestamptz IS NULL OR start_time >= $2)
		  AND ($3::timestamptz IS NULL OR start_time <= $3)
		  AND (start_time IS NOT NULL OR ($2::timestamptz IS NULL AND $3::timestamptz IS NULL))
	`

	queryFetchLatest = `
		SELECT ` + sampleColumns + `
		FROM telemetry
		WHERE device_id = $1 AND start_time IS NOT NULL
		ORDER BY start_time DESC, seq DESC
		LIMIT 1
	`

	queryFetchUnassigned = `
		SELECT ` + sampleColumns + `
		FROM telemetry
		WHERE trip_id IS NULL AND start_time IS NOT NULL
		ORDER BY device_id ASC, start_time ASC, seq ASC
		LIMIT $1
	`

	queryAttachSample = `UPDATE telemetry SET trip_id = $2 WHERE seq = $1`

	// queryDeviceLock serializes trip assignment per device until the transaction ends.
	queryDeviceLock = `SELECT pg_advisory_xact_lock(hashtext($1))`

	queryFindOpenTrip = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE device_id = $1
		ORDER BY ordinal DESC
		LIMIT 1
	`

	// queryCreateTrip relies on trips_device_ordinal_key to reject concurrent creators.
	queryCreateTrip = `
		INSERT INTO trips (
			id, device_id, ordinal, start_time, end_time, last_sample_at,
			start_location, end_location, note, distance_km, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
	`

	queryExtendTrip = `
		UPDATE trips
		SET start_time = $2, end_time = $3, last_sample_at = $4, distance_km = $5, updated_at = $6
		WHERE id = $1
	`

	queryListTrips = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE device_id = $1
		  AND ($2::timestamptz IS NULL OR start_time >= $2)
		  AND ($3::timestamptz IS NULL OR start_time <= $3)
		ORDER BY start_time ASC, ordinal ASC
	`

	queryGetTrip = `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	// queryUpdateDetails keeps existing values for NULL arguments.
	queryUpdateDetails = `
		UPDATE trips
		SET start_location = COALESCE($2, start_location),
		    end_location   = COALESCE($3, end_location),
		    note           = COALESCE($4, note),
		    updated_at     = $5
		WHERE id = $1
		RETURNING ` + tripColumns
)
