package clinic

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clinic-records-service/internal/domain"
)

// Scheduler books an appointment for a patient with a doctor. The two
// implementations differ only in how availability is checked and how
// the booking is confirmed.
type Scheduler interface {
	Schedule(patient domain.Patient, doctor string, info domain.DoctorInfo, date string) (*domain.Appointment, error)
}

// OnlineScheduler books through the online system and confirms by
// message.
type OnlineScheduler struct {
	log      *logrus.Logger
	notifier domain.Notifier
}

// NewOnlineScheduler creates an online scheduler.
func NewOnlineScheduler(log *logrus.Logger, notifier domain.Notifier) *OnlineScheduler {
	return &OnlineScheduler{log: log, notifier: notifier}
}

// Schedule books an appointment online. The appointment id is minted
// here; diagnosis and prescription start empty and are filled during
// the visit.
func (s *OnlineScheduler) Schedule(patient domain.Patient, doctor string, info domain.DoctorInfo, date string) (*domain.Appointment, error) {
	if patient == nil {
		return nil, &domain.InvalidPatientError{Reason: "nil entity"}
	}

	id := uuid.NewString()
	s.log.WithFields(logrus.Fields{
		"appointment_id": id,
		"patient_id":     patient.ID(),
		"doctor":         doctor,
		"date":           date,
		"channel":        "online",
	}).Info("Checking doctor availability")

	appt := domain.NewAppointment(id, patient, doctor, date, "", "", info, domain.WithNotifier(s.notifier))
	appt.Confirm()
	return appt, nil
}

// DeskScheduler books through the front desk and confirms by phone
// call.
type DeskScheduler struct {
	log   *logrus.Logger
	audit domain.AuditLogger
}

// NewDeskScheduler creates a front-desk scheduler.
func NewDeskScheduler(log *logrus.Logger, audit domain.AuditLogger) *DeskScheduler {
	return &DeskScheduler{log: log, audit: audit}
}

// Schedule books an appointment at the front desk.
func (s *DeskScheduler) Schedule(patient domain.Patient, doctor string, info domain.DoctorInfo, date string) (*domain.Appointment, error) {
	if patient == nil {
		return nil, &domain.InvalidPatientError{Reason: "nil entity"}
	}

	id := uuid.NewString()
	s.log.WithFields(logrus.Fields{
		"appointment_id": id,
		"patient_id":     patient.ID(),
		"doctor":         doctor,
		"date":           date,
		"channel":        "desk",
	}).Info("Checking doctor availability")

	appt := domain.NewAppointment(id, patient, doctor, date, "", "", info, domain.WithAuditLog(s.audit))
	if s.audit != nil {
		s.audit.Record(fmt.Sprintf("appointment %s booked at the front desk for %s", id, patient.ID()))
	}
	appt.Confirm()
	return appt, nil
}
