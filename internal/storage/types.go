// Package storage provides the record archive: patients and
// appointments persisted as JSON documents, plus the plain-file byte
// sink/source. The archive never interprets the documents beyond their
// primary key; encoding and decoding go through the domain codec.
package storage

import (
	"context"

	"github.com/clinic-records-service/internal/domain"
)

// Store defines the archive operations over patient and appointment
// records.
type Store interface {
	// SavePatient stores or updates the patient's record keyed by its id.
	SavePatient(ctx context.Context, p domain.Patient) error

	// GetPatient restores a patient by id. A miss yields ErrNotFound.
	GetPatient(ctx context.Context, id string) (domain.Patient, error)

	// ListPatients restores all archived patients in insertion order.
	ListPatients(ctx context.Context) ([]domain.Patient, error)

	// DeletePatient removes a patient record. A miss yields ErrNotFound.
	DeletePatient(ctx context.Context, id string) error

	// SaveAppointment stores or updates the appointment's record keyed
	// by its id.
	SaveAppointment(ctx context.Context, a *domain.Appointment) error

	// GetAppointment restores an appointment by id. A miss yields
	// ErrNotFound.
	GetAppointment(ctx context.Context, id string) (*domain.Appointment, error)

	// Close releases the underlying resources.
	Close() error
}
