// Package clinic provides the patient directory and the appointment
// scheduling workflows.
package clinic

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clinic-records-service/internal/domain"
)

// Directory is the clinic's flat patient collection.
type Directory struct {
	patients []domain.Patient
	log      *logrus.Logger
	audit    domain.AuditLogger
}

// DirectoryOption configures optional directory collaborators.
type DirectoryOption func(*Directory)

// WithAudit attaches an audit sink recording add/remove events.
func WithAudit(l domain.AuditLogger) DirectoryOption {
	return func(d *Directory) { d.audit = l }
}

// NewDirectory creates an empty directory.
func NewDirectory(log *logrus.Logger, opts ...DirectoryOption) *Directory {
	d := &Directory{log: log}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add appends a patient to the directory. A nil or unrecognized entity
// fails with InvalidPatientError.
func (d *Directory) Add(p domain.Patient) error {
	if p == nil {
		return &domain.InvalidPatientError{Reason: "nil entity"}
	}
	if !p.Type().IsValid() {
		return &domain.InvalidPatientError{Reason: fmt.Sprintf("unrecognized variant %q", p.Type())}
	}

	d.patients = append(d.patients, p)
	d.log.WithFields(logrus.Fields{
		"patient_id": p.ID(),
		"name":       p.Name(),
		"type":       p.Type().String(),
	}).Info("Patient added to directory")
	d.recordEvent(fmt.Sprintf("patient %s added", p.ID()))
	return nil
}

// Remove deletes the patient with the given id. A miss fails with
// ErrNotFound.
func (d *Directory) Remove(id string) error {
	for i, p := range d.patients {
		if p.ID() == id {
			d.patients = append(d.patients[:i], d.patients[i+1:]...)
			d.log.WithField("patient_id", id).Info("Patient removed from directory")
			d.recordEvent(fmt.Sprintf("patient %s removed", id))
			return nil
		}
	}
	d.log.WithField("patient_id", id).Error("Patient not found")
	return fmt.Errorf("patient %q: %w", id, domain.ErrNotFound)
}

// All returns a copy of the patient list in insertion order.
func (d *Directory) All() []domain.Patient {
	out := make([]domain.Patient, len(d.patients))
	copy(out, d.patients)
	return out
}

// SearchByName returns the patients whose name contains the given text,
// matched case-insensitively.
func (d *Directory) SearchByName(text string) []domain.Patient {
	needle := strings.ToLower(text)
	var out []domain.Patient
	for _, p := range d.patients {
		if strings.Contains(strings.ToLower(p.Name()), needle) {
			out = append(out, p)
		}
	}
	return out
}

func (d *Directory) recordEvent(event string) {
	if d.audit != nil {
		d.audit.Record(event)
	}
}
