package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		patient Patient
	}{
		{
			name:    "adult",
			patient: NewAdultPatient("A1", "Ivan Petrov", 35, GenderMale, "pollen allergy", "programmer"),
		},
		{
			name:    "child",
			patient: NewChildPatient("C1", "Masha Sidorova", 8, GenderFemale, "cold", "Anna Sidorova"),
		},
		{
			name:    "senior",
			patient: NewSeniorPatient("S1", "Petr Ivanov", 70, GenderMale, "hypertension", "diabetes"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := PatientToRecord(tt.patient)
			restored, err := PatientFromRecord(rec)
			require.NoError(t, err)

			assert.Equal(t, tt.patient.ID(), restored.ID())
			assert.Equal(t, tt.patient.Name(), restored.Name())
			assert.Equal(t, tt.patient.Age(), restored.Age())
			assert.Equal(t, tt.patient.Gender(), restored.Gender())
			assert.Equal(t, tt.patient.MedicalHistory(), restored.MedicalHistory())
			assert.Equal(t, tt.patient.Type(), restored.Type())
			assert.Equal(t, tt.patient, restored)

			// Re-serializing the restored entity yields an identical record.
			assert.Equal(t, rec, PatientToRecord(restored))
		})
	}
}

func TestPatientRecordLayout(t *testing.T) {
	rec := PatientToRecord(NewAdultPatient("A1", "Ivan", 35, GenderMale, "hx", "programmer"))

	assert.Equal(t, "A1", rec["patient_id"])
	assert.Equal(t, "Ivan", rec["name"])
	assert.Equal(t, 35, rec["age"])
	assert.Equal(t, "m", rec["gender"])
	assert.Equal(t, "hx", rec["medical_history"])
	assert.Equal(t, "adultpatient", rec["type"])
	assert.Equal(t, "programmer", rec["occupation"])
	assert.NotContains(t, rec, "guardian")
	assert.NotContains(t, rec, "chronic_conditions")
}

func TestPatientFromRecordMissingType(t *testing.T) {
	_, err := PatientFromRecord(Record{"patient_id": "A1", "name": "Ivan"})
	require.Error(t, err)

	var unknownErr *UnknownPatientTypeError
	require.True(t, errors.As(err, &unknownErr))
	assert.Empty(t, unknownErr.Tag)
}

func TestPatientFromRecordDefaults(t *testing.T) {
	// Absent variant field defaults to the empty string; absent
	// age/gender pass through as zero values.
	p, err := PatientFromRecord(Record{"type": "childpatient", "patient_id": "C2", "name": "Kolya"})
	require.NoError(t, err)

	child := p.(*ChildPatient)
	assert.Empty(t, child.Guardian())
	assert.Zero(t, child.Age())
	assert.Empty(t, string(child.Gender()))
}

func TestPatientFromRecordJSONNumbers(t *testing.T) {
	// Records decoded from JSON carry float64 for numbers.
	data, err := json.Marshal(PatientToRecord(NewSeniorPatient("S1", "Petr", 70, GenderMale, "hx", "diabetes")))
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))

	p, err := PatientFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, 70, p.Age())
}

func TestAppointmentRecordRoundTrip(t *testing.T) {
	patient := NewAdultPatient("A1", "Ivan Petrov", 35, GenderMale, "pollen allergy", "programmer")
	info := DoctorInfo{Name: "Dr. Ivanov", Specialty: "Therapist", ContactInfo: "ivanov@example.com"}
	appt := NewAppointment("AP101", patient, "Dr. Ivanov", "2026-01-15", "flu", "paracetamol", info)
	appt.AddService(Service{Name: "consultation", Price: 50})
	appt.AddService(Service{Name: "blood test", Price: 25.5})
	appt.AddService(Service{Name: "consultation", Price: 50})

	rec := AppointmentToRecord(appt)
	restored, err := AppointmentFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, appt.ID(), restored.ID())
	assert.Equal(t, appt.Doctor(), restored.Doctor())
	assert.Equal(t, appt.Date(), restored.Date())
	assert.Equal(t, appt.Diagnosis(), restored.Diagnosis())
	assert.Equal(t, appt.Prescription(), restored.Prescription())
	assert.Equal(t, appt.DoctorInfo(), restored.DoctorInfo())
	assert.Equal(t, appt.Patient(), restored.Patient())
	assert.Equal(t, appt.Services(), restored.Services(), "service order and duplicates are preserved")
	assert.Equal(t, appt.TotalCost(), restored.TotalCost())
}

func TestAppointmentRecordRoundTripThroughJSON(t *testing.T) {
	patient := NewChildPatient("C1", "Masha", 8, GenderFemale, "cold", "Anna")
	appt := NewAppointment("AP202", patient, "Dr. Orlova", "2026-02-02", "cold", "rest", DoctorInfo{Name: "Dr. Orlova"})
	appt.AddService(Service{Name: "x-ray", Price: 80})

	data, err := json.Marshal(AppointmentToRecord(appt))
	require.NoError(t, err)

	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))

	restored, err := AppointmentFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, appt.Services(), restored.Services())
	assert.Equal(t, appt.Patient(), restored.Patient())
}

func TestAppointmentFromRecordUnknownPatientType(t *testing.T) {
	rec := Record{
		"appointment_id": "AP1",
		"patient":        Record{"type": "alien"},
	}
	_, err := AppointmentFromRecord(rec)

	var unknownErr *UnknownPatientTypeError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "alien", unknownErr.Tag)
}
