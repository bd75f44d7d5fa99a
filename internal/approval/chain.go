// Package approval implements the diagnosis-change approval chain: an
// escalating sequence of handlers, each with a local approval rule, in
// front of a role-gated entry point.
package approval

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clinic-records-service/internal/domain"
)

// Role identifies a participant in the approval process. Roles are
// matched case-sensitively against this vocabulary.
type Role string

const (
	RoleDoctor         Role = "Doctor"
	RoleDepartmentHead Role = "DepartmentHead"
	RoleChiefPhysician Role = "ChiefPhysician"
)

// IsValid reports whether the role is in the authorized vocabulary.
func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RoleDepartmentHead, RoleChiefPhysician:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// Marker phrases recognized by the non-terminal handlers, matched
// case-insensitively against the proposed diagnosis text.
const (
	markerMinorChange       = "minor change"
	markerTreatmentRevision = "treatment revision"
)

// Decision is the outcome of a chain traversal.
type Decision struct {
	Approved   bool
	ApprovedBy Role
}

// Handler is one link of the approval chain. Handle either approves
// the change (overwriting the appointment diagnosis with the submitted
// text) or forwards to its successor; a tail handler with no successor
// rejects.
type Handler interface {
	Handle(appt *domain.Appointment, newDiagnosis string) Decision
	SetSuccessor(next Handler)
}

func containsMarker(text, marker string) bool {
	return strings.Contains(strings.ToLower(text), marker)
}

func approve(appt *domain.Appointment, newDiagnosis string, by Role, log *logrus.Logger) Decision {
	appt.SetDiagnosis(newDiagnosis)
	if log != nil {
		log.WithFields(logrus.Fields{
			"appointment_id": appt.ID(),
			"approved_by":    string(by),
		}).Info("Diagnosis change approved")
	}
	return Decision{Approved: true, ApprovedBy: by}
}

// DoctorHandler is the front-line handler: it approves changes marked
// as minor and escalates everything else.
type DoctorHandler struct {
	successor Handler
	log       *logrus.Logger
}

// NewDoctorHandler creates the front-line handler.
func NewDoctorHandler(log *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{log: log}
}

// SetSuccessor links the next handler in the chain.
func (h *DoctorHandler) SetSuccessor(next Handler) { h.successor = next }

// Handle applies the front-line rule.
func (h *DoctorHandler) Handle(appt *domain.Appointment, newDiagnosis string) Decision {
	if containsMarker(newDiagnosis, markerMinorChange) {
		return approve(appt, newDiagnosis, RoleDoctor, h.log)
	}
	if h.successor != nil {
		return h.successor.Handle(appt, newDiagnosis)
	}
	return Decision{}
}

// DepartmentHeadHandler approves treatment revisions and escalates
// everything else.
type DepartmentHeadHandler struct {
	successor Handler
	log       *logrus.Logger
}

// NewDepartmentHeadHandler creates the department-level handler.
func NewDepartmentHeadHandler(log *logrus.Logger) *DepartmentHeadHandler {
	return &DepartmentHeadHandler{log: log}
}

// SetSuccessor links the next handler in the chain.
func (h *DepartmentHeadHandler) SetSuccessor(next Handler) { h.successor = next }

// Handle applies the department-level rule.
func (h *DepartmentHeadHandler) Handle(appt *domain.Appointment, newDiagnosis string) Decision {
	if containsMarker(newDiagnosis, markerTreatmentRevision) {
		return approve(appt, newDiagnosis, RoleDepartmentHead, h.log)
	}
	if h.successor != nil {
		return h.successor.Handle(appt, newDiagnosis)
	}
	return Decision{}
}

// ChiefPhysicianHandler terminates the chain and approves
// unconditionally.
type ChiefPhysicianHandler struct {
	log *logrus.Logger
}

// NewChiefPhysicianHandler creates the chief-level handler.
func NewChiefPhysicianHandler(log *logrus.Logger) *ChiefPhysicianHandler {
	return &ChiefPhysicianHandler{log: log}
}

// SetSuccessor is a no-op: the chief is always the terminal handler.
func (h *ChiefPhysicianHandler) SetSuccessor(Handler) {}

// Handle approves unconditionally.
func (h *ChiefPhysicianHandler) Handle(appt *domain.Appointment, newDiagnosis string) Decision {
	return approve(appt, newDiagnosis, RoleChiefPhysician, h.log)
}

// NewChain builds the standard three-level chain and returns its head:
// doctor, then department head, then chief physician.
func NewChain(log *logrus.Logger) Handler {
	doctor := NewDoctorHandler(log)
	head := NewDepartmentHeadHandler(log)
	chief := NewChiefPhysicianHandler(log)
	doctor.SetSuccessor(head)
	head.SetSuccessor(chief)
	return doctor
}

// ChangeDiagnosis is the role-gated entry point. A requester role
// outside the authorized vocabulary fails with PermissionDeniedError
// before the chain is invoked. The permission check is orthogonal to
// which handler ends up approving: an authorized doctor can still
// trigger approval all the way up to the chief physician.
func ChangeDiagnosis(requester Role, appt *domain.Appointment, newDiagnosis string, head Handler) (Decision, error) {
	if !requester.IsValid() {
		return Decision{}, &domain.PermissionDeniedError{Role: string(requester)}
	}
	return head.Handle(appt, newDiagnosis), nil
}
