package analytics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// bucketFile is the on-disk YAML shape of a time-of-day definition.
type bucketFile struct {
	Buckets Buckets `yaml:"buckets"`
}

// LoadBuckets reads and validates a time-of-day bucket definition.
// An empty path yields DefaultBuckets.
func LoadBuckets(path string) (Buckets, error) {
	if path == "" {
		return DefaultBuckets(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading time-of-day file %s: %w", path, err)
	}

	var raw bucketFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing time-of-day file %s: %w", path, err)
	}
	if err := raw.Buckets.Validate(); err != nil {
		return nil, fmt.Errorf("time-of-day file %s: %w", path, err)
	}
	return raw.Buckets, nil
}
