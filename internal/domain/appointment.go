package domain

import (
	"fmt"
	"strings"
)

// Notifier delivers a message to the patient-facing notification sink.
// Delivery is fire-and-forget: implementations must not block and the
// caller ignores failures.
type Notifier interface {
	Notify(message string)
}

// AuditLogger records an audit event. Fire-and-forget, same as Notifier.
type AuditLogger interface {
	Record(event string)
}

// DoctorInfo is the contact card attached to an appointment.
type DoctorInfo struct {
	Name        string
	Specialty   string
	ContactInfo string
}

// Service is a billable clinic service.
type Service struct {
	Name  string
	Price float64
}

// Appointment is the visit aggregate. It exclusively owns its ordered
// service list and its doctor info, and holds a non-owning reference to
// the patient. Optional Notifier/AuditLogger capabilities are invoked
// on creation, confirmation and cancellation.
type Appointment struct {
	id           string
	patient      Patient
	doctor       string
	date         string
	diagnosis    string
	prescription string
	doctorInfo   DoctorInfo
	services     []Service

	notifier Notifier
	audit    AuditLogger
}

// AppointmentOption configures optional appointment capabilities.
type AppointmentOption func(*Appointment)

// WithNotifier attaches a notification sink to the appointment.
func WithNotifier(n Notifier) AppointmentOption {
	return func(a *Appointment) { a.notifier = n }
}

// WithAuditLog attaches an audit sink to the appointment.
func WithAuditLog(l AuditLogger) AppointmentOption {
	return func(a *Appointment) { a.audit = l }
}

// NewAppointment constructs an appointment. If an audit sink is
// attached, the creation event is recorded.
func NewAppointment(id string, patient Patient, doctor, date, diagnosis, prescription string, info DoctorInfo, opts ...AppointmentOption) *Appointment {
	a := &Appointment{
		id:           id,
		patient:      patient,
		doctor:       doctor,
		date:         date,
		diagnosis:    diagnosis,
		prescription: prescription,
		doctorInfo:   info,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.recordEvent(fmt.Sprintf("appointment %s created", a.id))
	return a
}

func (a *Appointment) ID() string { return a.id }
func (a *Appointment) Patient() Patient { return a.patient }
func (a *Appointment) Doctor() string { return a.doctor }
func (a *Appointment) Date() string { return a.date }
func (a *Appointment) Diagnosis() string { return a.diagnosis }
func (a *Appointment) Prescription() string { return a.prescription }
func (a *Appointment) DoctorInfo() DoctorInfo { return a.doctorInfo }

func (a *Appointment) SetID(id string) { a.id = id }
func (a *Appointment) SetPatient(p Patient) { a.patient = p }
func (a *Appointment) SetDoctor(doctor string) { a.doctor = doctor }
func (a *Appointment) SetDate(date string) { a.date = date }
func (a *Appointment) SetDiagnosis(d string) { a.diagnosis = d }
func (a *Appointment) SetPrescription(p string) { a.prescription = p }
func (a *Appointment) SetDoctorInfo(info DoctorInfo) { a.doctorInfo = info }
func (a *Appointment) SetNotifier(n Notifier) { a.notifier = n }
func (a *Appointment) SetAuditLogger(l AuditLogger) { a.audit = l }

// AddService appends a service to the owned list. Duplicates are
// allowed; order is preserved.
func (a *Appointment) AddService(s Service) {
	a.services = append(a.services, s)
}

// RemoveService removes the first service equal to s. A miss yields
// ErrNotFound.
func (a *Appointment) RemoveService(s Service) error {
	for i, svc := range a.services {
		if svc == s {
			a.services = append(a.services[:i], a.services[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("service %q: %w", s.Name, ErrNotFound)
}

// Services returns a copy of the ordered service list.
func (a *Appointment) Services() []Service {
	out := make([]Service, len(a.services))
	copy(out, a.services)
	return out
}

// TotalCost sums the prices of all services.
func (a *Appointment) TotalCost() float64 {
	var total float64
	for _, s := range a.services {
		total += s.Price
	}
	return total
}

// Confirm notifies the patient and records the confirmation event.
func (a *Appointment) Confirm() {
	a.notify(fmt.Sprintf("your appointment on %s is confirmed", a.date))
	a.recordEvent(fmt.Sprintf("appointment %s confirmed", a.id))
}

// Cancel notifies the patient and records the cancellation event.
func (a *Appointment) Cancel() {
	a.notify(fmt.Sprintf("appointment %s is cancelled", a.id))
	a.recordEvent(fmt.Sprintf("appointment %s cancelled", a.id))
}

func (a *Appointment) notify(message string) {
	if a.notifier != nil {
		a.notifier.Notify(message)
	}
}

func (a *Appointment) recordEvent(event string) {
	if a.audit != nil {
		a.audit.Record(event)
	}
}

// GenerateReport renders a human-readable visit report.
func (a *Appointment) GenerateReport() string {
	names := make([]string, len(a.services))
	for i, s := range a.services {
		names[i] = s.Name
	}
	servicesLine := "none"
	if len(names) > 0 {
		servicesLine = strings.Join(names, ", ")
	}

	patientLine := ""
	if a.patient != nil {
		patientLine = a.patient.Describe()
	}

	return fmt.Sprintf(
		"Appointment report:\n"+
			"  ID: %s\n"+
			"  Patient: %s\n"+
			"  Doctor: %s\n"+
			"  Date: %s\n"+
			"  Diagnosis: %s\n"+
			"  Prescription: %s\n"+
			"  Doctor info: %s (%s), %s\n"+
			"  Services: %s\n"+
			"  Total cost: %.2f",
		a.id, patientLine, a.doctor, a.date, a.diagnosis, a.prescription,
		a.doctorInfo.Name, a.doctorInfo.Specialty, a.doctorInfo.ContactInfo,
		servicesLine, a.TotalCost(),
	)
}
