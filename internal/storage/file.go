package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/clinic-records-service/internal/domain"
)

// WriteRecordFile writes a record to path as indented JSON. This is
// the opaque byte-sink boundary: callers only ever hand over records,
// never raw bytes.
func WriteRecordFile(rec domain.Record, path string) error {
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

// ReadRecordFile reads a record previously written with
// WriteRecordFile.
func ReadRecordFile(path string) (domain.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	var rec domain.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record file: %w", err)
	}
	return rec, nil
}
