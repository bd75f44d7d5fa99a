package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/clinic-records-service/internal/domain"
)

// SQLiteStore implements the Store interface using SQLite. It is the
// default standalone backend and creates its schema on open.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (and if necessary creates) the archive database
// at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers unblocked while the archive writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// createSchema creates the archive tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS patients (
		patient_id TEXT PRIMARY KEY,
		doc TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS appointments (
		appointment_id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL DEFAULT '',
		doc TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id);
	`

	_, err := db.Exec(schema)
	return err
}

// SavePatient stores or updates the patient's record keyed by its id.
func (s *SQLiteStore) SavePatient(ctx context.Context, p domain.Patient) error {
	doc, err := json.Marshal(domain.PatientToRecord(p))
	if err != nil {
		return fmt.Errorf("failed to encode patient record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO patients (patient_id, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (patient_id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		p.ID(), string(doc), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save patient %q: %w", p.ID(), err)
	}
	return nil
}

// GetPatient restores a patient by id.
func (s *SQLiteStore) GetPatient(ctx context.Context, id string) (domain.Patient, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM patients WHERE patient_id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("patient %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load patient %q: %w", id, err)
	}
	return decodePatientDoc(doc)
}

// ListPatients restores all archived patients in insertion order.
func (s *SQLiteStore) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT doc FROM patients ORDER BY created_at, patient_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var out []domain.Patient
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan patient row: %w", err)
		}
		p, err := decodePatientDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePatient removes a patient record.
func (s *SQLiteStore) DeletePatient(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM patients WHERE patient_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete patient %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete patient %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("patient %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SaveAppointment stores or updates the appointment's record keyed by
// its id.
func (s *SQLiteStore) SaveAppointment(ctx context.Context, a *domain.Appointment) error {
	doc, err := json.Marshal(domain.AppointmentToRecord(a))
	if err != nil {
		return fmt.Errorf("failed to encode appointment record: %w", err)
	}

	patientID := ""
	if a.Patient() != nil {
		patientID = a.Patient().ID()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO appointments (appointment_id, patient_id, doc, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (appointment_id) DO UPDATE SET patient_id = excluded.patient_id, doc = excluded.doc, updated_at = excluded.updated_at`,
		a.ID(), patientID, string(doc), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save appointment %q: %w", a.ID(), err)
	}
	return nil
}

// GetAppointment restores an appointment by id.
func (s *SQLiteStore) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM appointments WHERE appointment_id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("appointment %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment %q: %w", id, err)
	}
	return decodeAppointmentDoc(doc)
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func decodePatientDoc(doc string) (domain.Patient, error) {
	var rec domain.Record
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode patient record: %w", err)
	}
	return domain.PatientFromRecord(rec)
}

func decodeAppointmentDoc(doc string) (*domain.Appointment, error) {
	var rec domain.Record
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode appointment record: %w", err)
	}
	return domain.AppointmentFromRecord(rec)
}
