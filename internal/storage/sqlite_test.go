package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinic-records-service/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	store, err := NewSQLiteStore(filepath.Join(dir, "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSQLiteStore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "archive.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
}

func TestSQLiteStore_PatientRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	patient := domain.NewAdultPatient("A123", "Ivan Petrov", 35, domain.GenderMale, "pollen allergy", "programmer")
	require.NoError(t, store.SavePatient(ctx, patient))

	restored, err := store.GetPatient(ctx, "A123")
	require.NoError(t, err)
	assert.Equal(t, patient, restored)
}

func TestSQLiteStore_SavePatientUpsert(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	patient := domain.NewChildPatient("C456", "Masha Sidorova", 8, domain.GenderFemale, "cold", "Anna Sidorova")
	require.NoError(t, store.SavePatient(ctx, patient))

	patient.SetGuardian("Olga Sidorova")
	require.NoError(t, store.SavePatient(ctx, patient))

	restored, err := store.GetPatient(ctx, "C456")
	require.NoError(t, err)
	assert.Equal(t, "Olga Sidorova", restored.(*domain.ChildPatient).Guardian())

	patients, err := store.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 1, "upsert must not duplicate the record")
}

func TestSQLiteStore_GetPatientMiss(t *testing.T) {
	store := createTestStore(t)
	_, err := store.GetPatient(context.Background(), "UNKNOWN")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSQLiteStore_DeletePatient(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePatient(ctx, domain.NewSeniorPatient("S789", "Petr Ivanov", 70, domain.GenderMale, "hx", "diabetes")))
	require.NoError(t, store.DeletePatient(ctx, "S789"))

	err := store.DeletePatient(ctx, "S789")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSQLiteStore_ListPatients(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePatient(ctx, domain.NewAdultPatient("A1", "Ivan", 35, domain.GenderMale, "", "programmer")))
	require.NoError(t, store.SavePatient(ctx, domain.NewSeniorPatient("S1", "Petr", 70, domain.GenderMale, "", "diabetes")))

	patients, err := store.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "A1", patients[0].ID())
	assert.Equal(t, "S1", patients[1].ID())
}

func TestSQLiteStore_AppointmentRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	patient := domain.NewAdultPatient("A1", "Ivan Petrov", 35, domain.GenderMale, "pollen allergy", "programmer")
	appt := domain.NewAppointment("AP101", patient, "Dr. Ivanov", "2026-01-15", "flu", "paracetamol",
		domain.DoctorInfo{Name: "Dr. Ivanov", Specialty: "Therapist", ContactInfo: "ivanov@example.com"})
	appt.AddService(domain.Service{Name: "consultation", Price: 50})
	appt.AddService(domain.Service{Name: "blood test", Price: 25.5})

	require.NoError(t, store.SaveAppointment(ctx, appt))

	restored, err := store.GetAppointment(ctx, "AP101")
	require.NoError(t, err)
	assert.Equal(t, appt.Diagnosis(), restored.Diagnosis())
	assert.Equal(t, appt.DoctorInfo(), restored.DoctorInfo())
	assert.Equal(t, appt.Services(), restored.Services())
	assert.Equal(t, appt.Patient(), restored.Patient())
}

func TestSQLiteStore_GetAppointmentMiss(t *testing.T) {
	store := createTestStore(t)
	_, err := store.GetAppointment(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
