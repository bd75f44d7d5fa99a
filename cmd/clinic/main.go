// Package main is the entry point of the clinic records service. It
// wires the configuration, logger, record archive and the clinic
// workflow together and runs a full patient/appointment lifecycle.
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/clinic-records-service/internal/approval"
	"github.com/clinic-records-service/internal/clinic"
	"github.com/clinic-records-service/internal/config"
	"github.com/clinic-records-service/internal/domain"
	"github.com/clinic-records-service/internal/notify"
	"github.com/clinic-records-service/internal/storage"
)

func main() {
	manager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := manager.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	cfg := manager.GetConfig()
	logger := manager.NewLogger()
	logger.WithField("clinic", cfg.Clinic.Name).Info("Starting clinic records service")

	store, err := openStore(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open record archive")
	}
	defer store.Close()

	if err := run(cfg, logger, store); err != nil {
		logger.WithError(err).Fatal("Clinic workflow failed")
	}

	logger.Info("Clinic records service finished")
}

// openStore selects the archive backend from the configuration.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Backend == "postgres" {
		return storage.NewPostgresStoreFromURL(cfg.Storage.PostgresURL)
	}
	return storage.NewSQLiteStore(cfg.Storage.SQLitePath)
}

func run(cfg *config.Config, logger *logrus.Logger, store storage.Store) error {
	ctx := context.Background()
	audit := notify.NewLogAudit(logger)
	notifier := notify.NewLogNotifier(logger)

	// Create patients of each variant through the factory.
	adult, err := domain.NewPatient("adultpatient",
		domain.CommonFields{ID: "A123", Name: "Ivan Petrov", Age: 35, Gender: domain.GenderMale, MedicalHistory: "pollen allergy"},
		"programmer")
	if err != nil {
		return err
	}
	child, err := domain.NewPatient("childpatient",
		domain.CommonFields{ID: "C456", Name: "Masha Sidorova", Age: 8, Gender: domain.GenderFemale, MedicalHistory: "cold"},
		"Anna Sidorova")
	if err != nil {
		return err
	}
	senior, err := domain.NewPatient("seniorpatient",
		domain.CommonFields{ID: "S789", Name: "Petr Ivanov", Age: 70, Gender: domain.GenderMale, MedicalHistory: "hypertension"},
		"diabetes")
	if err != nil {
		return err
	}

	directory := clinic.NewDirectory(logger, clinic.WithAudit(audit))
	for _, p := range []domain.Patient{adult, child, senior} {
		if err := directory.Add(p); err != nil {
			return err
		}
	}

	// Edit through the validated setter path.
	adult.SetAge(36)
	child.(*domain.ChildPatient).SetGuardian("Olga Sidorova")

	for _, p := range directory.SearchByName("ivan") {
		logger.WithField("patient_id", p.ID()).Info(p.Describe())
	}

	// Book a visit, bill some services, report.
	scheduler := clinic.NewOnlineScheduler(logger, notifier)
	appt, err := scheduler.Schedule(adult, "Dr. Ivanov",
		domain.DoctorInfo{Name: "Dr. Ivanov", Specialty: "Therapist", ContactInfo: "ivanov@example.com"},
		"2026-09-15")
	if err != nil {
		return err
	}
	appt.SetAuditLogger(audit)
	appt.SetDiagnosis("flu")
	appt.SetPrescription("paracetamol")
	appt.AddService(domain.Service{Name: "consultation", Price: 50})
	appt.AddService(domain.Service{Name: "blood test", Price: 25.5})
	logger.Info(appt.GenerateReport())

	// Run the diagnosis-change approval chain.
	chain := approval.NewChain(logger)
	if _, err := approval.ChangeDiagnosis(approval.Role("user"), appt, "minor change: seasonal flu", chain); err != nil {
		logger.WithError(err).Warn("Diagnosis change rejected")
	}
	decision, err := approval.ChangeDiagnosis(approval.RoleDoctor, appt, "treatment revision: antivirals", chain)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"approved":    decision.Approved,
		"approved_by": decision.ApprovedBy.String(),
	}).Info("Diagnosis change processed")

	// Archive and restore.
	for _, p := range directory.All() {
		if err := store.SavePatient(ctx, p); err != nil {
			return err
		}
	}
	if err := store.SaveAppointment(ctx, appt); err != nil {
		return err
	}
	restored, err := store.GetAppointment(ctx, appt.ID())
	if err != nil {
		return err
	}
	logger.WithField("appointment_id", restored.ID()).Info("Appointment restored from archive")

	// Export one record file through the byte sink.
	if err := os.MkdirAll(cfg.Storage.ExportDir, 0755); err != nil {
		return err
	}
	exportPath := filepath.Join(cfg.Storage.ExportDir, "patient.json")
	if err := storage.WriteRecordFile(domain.PatientToRecord(adult), exportPath); err != nil {
		return err
	}
	rec, err := storage.ReadRecordFile(exportPath)
	if err != nil {
		return err
	}
	loaded, err := domain.PatientFromRecord(rec)
	if err != nil {
		return err
	}
	logger.WithField("patient_id", loaded.ID()).Info("Patient restored from export file")

	if err := directory.Remove(child.ID()); err != nil {
		return err
	}
	return nil
}
