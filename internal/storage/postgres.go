package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/clinic-records-service/internal/domain"
)

// PostgresStore implements the Store interface using PostgreSQL. It
// expects the schema to already exist.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an existing database connection.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL opens a connection from a URL and wraps it.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// SavePatient stores or updates the patient's record keyed by its id.
func (s *PostgresStore) SavePatient(ctx context.Context, p domain.Patient) error {
	doc, err := json.Marshal(domain.PatientToRecord(p))
	if err != nil {
		return fmt.Errorf("failed to encode patient record: %w", err)
	}

	query := `
		INSERT INTO patients (patient_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (patient_id) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, p.ID(), string(doc), time.Now()); err != nil {
		return fmt.Errorf("failed to save patient %q: %w", p.ID(), err)
	}
	return nil
}

// GetPatient restores a patient by id.
func (s *PostgresStore) GetPatient(ctx context.Context, id string) (domain.Patient, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM patients WHERE patient_id = $1", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("patient %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load patient %q: %w", id, err)
	}
	return decodePatientDoc(doc)
}

// ListPatients restores all archived patients in insertion order.
func (s *PostgresStore) ListPatients(ctx context.Context) ([]domain.Patient, error) {
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
func (s *PostgresStore) DeletePatient(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM patients WHERE patient_id = $1", id)
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
func (s *PostgresStore) SaveAppointment(ctx context.Context, a *domain.Appointment) error {
	doc, err := json.Marshal(domain.AppointmentToRecord(a))
	if err != nil {
		return fmt.Errorf("failed to encode appointment record: %w", err)
	}

	patientID := ""
	if a.Patient() != nil {
		patientID = a.Patient().ID()
	}

	query := `
		INSERT INTO appointments (appointment_id, patient_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (appointment_id) DO UPDATE SET
			patient_id = EXCLUDED.patient_id,
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, a.ID(), patientID, string(doc), time.Now()); err != nil {
		return fmt.Errorf("failed to save appointment %q: %w", a.ID(), err)
	}
	return nil
}

// GetAppointment restores an appointment by id.
func (s *PostgresStore) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM appointments WHERE appointment_id = $1", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("appointment %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment %q: %w", id, err)
	}
	return decodeAppointmentDoc(doc)
}

// Close closes the underlying database.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
