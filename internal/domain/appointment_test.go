package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures notifications and audit events for assertions.
type recordingSink struct {
	notifications []string
	events        []string
}

func (r *recordingSink) Notify(message string) { r.notifications = append(r.notifications, message) }
func (r *recordingSink) Record(event string)   { r.events = append(r.events, event) }

func newTestAppointment(opts ...AppointmentOption) *Appointment {
	patient := NewAdultPatient("A1", "Ivan Petrov", 35, GenderMale, "pollen allergy", "programmer")
	info := DoctorInfo{Name: "Dr. Ivanov", Specialty: "Therapist", ContactInfo: "ivanov@example.com"}
	return NewAppointment("AP101", patient, "Dr. Ivanov", "2026-01-15", "flu", "paracetamol", info, opts...)
}

func TestTotalCost(t *testing.T) {
	appt := newTestAppointment()
	assert.Zero(t, appt.TotalCost())

	appt.AddService(Service{Name: "consultation", Price: 50})
	appt.AddService(Service{Name: "blood test", Price: 25.5})
	assert.InDelta(t, 75.5, appt.TotalCost(), 1e-9)
}

func TestRemoveServiceFirstMatchOnly(t *testing.T) {
	appt := newTestAppointment()
	consult := Service{Name: "consultation", Price: 50}
	appt.AddService(consult)
	appt.AddService(Service{Name: "blood test", Price: 25})
	appt.AddService(consult)

	require.NoError(t, appt.RemoveService(consult))

	services := appt.Services()
	require.Len(t, services, 2)
	assert.Equal(t, "blood test", services[0].Name)
	assert.Equal(t, "consultation", services[1].Name, "only the first duplicate is removed")
}

func TestRemoveServiceMiss(t *testing.T) {
	appt := newTestAppointment()
	err := appt.RemoveService(Service{Name: "mri", Price: 300})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAppointmentLifecycleEvents(t *testing.T) {
	sink := &recordingSink{}
	appt := newTestAppointment(WithNotifier(sink), WithAuditLog(sink))

	require.Len(t, sink.events, 1, "creation is audited")
	assert.Contains(t, sink.events[0], "AP101")
	assert.Contains(t, sink.events[0], "created")

	appt.Confirm()
	appt.Cancel()

	require.Len(t, sink.events, 3)
	assert.Contains(t, sink.events[1], "confirmed")
	assert.Contains(t, sink.events[2], "cancelled")

	require.Len(t, sink.notifications, 2)
	assert.Contains(t, sink.notifications[0], "2026-01-15")
}

func TestAppointmentWithoutCapabilities(t *testing.T) {
	appt := newTestAppointment()
	// Confirm/Cancel without attached sinks must be no-ops, not panics.
	appt.Confirm()
	appt.Cancel()
}

func TestGenerateReport(t *testing.T) {
	appt := newTestAppointment()
	appt.AddService(Service{Name: "consultation", Price: 50})

	report := appt.GenerateReport()
	assert.Contains(t, report, "AP101")
	assert.Contains(t, report, "Ivan Petrov")
	assert.Contains(t, report, "Dr. Ivanov")
	assert.Contains(t, report, "flu")
	assert.Contains(t, report, "consultation")
	assert.Contains(t, report, "50.00")
}

func TestGenerateReportNoServices(t *testing.T) {
	report := newTestAppointment().GenerateReport()
	assert.Contains(t, report, "Services: none")
}
