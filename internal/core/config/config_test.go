package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drivelog.yaml")
	requireNoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	requireNoError(t, err)

	if cfg.Trips.Gap() != 30*time.Minute {
		t.Fatalf("expected 30m trip gap, got %s", cfg.Trips.Gap())
	}
	if cfg.Trips.DriveGap() != 10*time.Minute {
		t.Fatalf("expected 10m drive gap, got %s", cfg.Trips.DriveGap())
	}
	if !cfg.Trips.AssignOnIngest {
		t.Fatal("expected assign_on_ingest to default to true")
	}
	if len(cfg.Buckets) != 5 {
		t.Fatalf("expected default buckets, got %d", len(cfg.Buckets))
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Fatalf("unexpected metrics path %q", cfg.Metrics.Path)
	}
}

func TestLoad_ValidConfigAndBuckets(t *testing.T) {
	root := t.TempDir()
	bucketsPath := filepath.Join(root, "buckets.yaml")
	requireNoError(t, os.WriteFile(bucketsPath, []byte(`
buckets:
  - label: "Day"
    start_hour: 6
    end_hour: 18
  - label: "Night"
    start_hour: 18
    end_hour: 6
`), 0o644))

	cfgPath := writeConfig(t, `
server:
  port: 9090
  host: "127.0.0.1"
  mode: "debug"
database:
  type: "memory"
trips:
  gap_threshold: "45m"
  drive_gap_threshold: "5m"
  assign_on_ingest: false
analytics:
  time_of_day_file: "`+bucketsPath+`"
backfill:
  interval: "30s"
  batch_size: 10
`)

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if cfg.Server.Port != 9090 || cfg.Database.Type != "memory" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Trips.Gap() != 45*time.Minute || cfg.Trips.AssignOnIngest {
		t.Fatalf("unexpected trips config %+v", cfg.Trips)
	}
	if cfg.Backfill.EffectiveInterval() != 30*time.Second {
		t.Fatalf("unexpected backfill interval %s", cfg.Backfill.EffectiveInterval())
	}
	if len(cfg.Buckets) != 2 || cfg.Buckets[1].Label != "Night" {
		t.Fatalf("unexpected buckets %+v", cfg.Buckets)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := writeConfig(t, `
trips:
  gap_threshold: "45m"
`)
	t.Setenv("DRIVELOG_TRIPS__GAP_THRESHOLD", "15m")
	t.Setenv("DRIVELOG_DATABASE__TYPE", "memory")

	cfg, err := Load(cfgPath)
	requireNoError(t, err)
	if cfg.Trips.Gap() != 15*time.Minute {
		t.Fatalf("expected env override, got %s", cfg.Trips.Gap())
	}
	if cfg.Database.Type != "memory" {
		t.Fatalf("expected memory database, got %q", cfg.Database.Type)
	}
}

func TestLoad_InvalidGapThresholdFailsStartup(t *testing.T) {
	cfgPath := writeConfig(t, `
trips:
  gap_threshold: "soon"
`)

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "invalid trips.gap_threshold") {
		t.Fatalf("expected invalid gap threshold error, got %v", err)
	}
}

func TestLoad_NegativeDriveGapFailsStartup(t *testing.T) {
	cfgPath := writeConfig(t, `
trips:
  drive_gap_threshold: "-1m"
`)

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "trips.drive_gap_threshold must be >= 0") {
		t.Fatalf("expected negative drive gap error, got %v", err)
	}
}

func TestLoad_InvalidBucketFileFailsStartup(t *testing.T) {
	root := t.TempDir()
	bucketsPath := filepath.Join(root, "buckets.yaml")
	requireNoError(t, os.WriteFile(bucketsPath, []byte(`
buckets:
  - label: "Morning"
    start_hour: 6
    end_hour: 12
`), 0o644))

	cfgPath := writeConfig(t, `
database:
  type: "memory"
analytics:
  time_of_day_file: "`+bucketsPath+`"
`)

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "failed to load time-of-day buckets") {
		t.Fatalf("expected bucket load error, got %v", err)
	}
}

func TestLoad_UnsupportedDatabaseTypeFailsStartup(t *testing.T) {
	cfgPath := writeConfig(t, `
database:
  type: "sqlite"
`)

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported database.type") {
		t.Fatalf("expected unsupported database type error, got %v", err)
	}
}

func TestLoad_InvalidServerPortFailsStartup(t *testing.T) {
	cfgPath := writeConfig(t, `
server:
  port: -1
`)

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "invalid server.port") {
		t.Fatalf("expected invalid server.port error, got %v", err)
	}
}

func TestLoad_InvalidBackfillIntervalFailsStartup(t *testing.T) {
	cfgPath := writeConfig(t, `
backfill:
  enabled: true
  interval: "0s"
`)

	_, err := Load(cfgPath)
	if err == nil || !strings.Contains(err.Error(), "backfill.interval must be > 0") {
		t.Fatalf("expected backfill interval error, got %v", err)
	}
}

func requireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
