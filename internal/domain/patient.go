// Package domain contains the core business entities of the clinic
// records service: the polymorphic patient model, the appointment
// aggregate, the patient type registry and the record codec.
package domain

import "fmt"

// Gender is one of the two recognized gender codes.
type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

// IsValid reports whether the gender is a recognized code.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale:
		return true
	default:
		return false
	}
}

// PatientType identifies a concrete patient variant. The value doubles
// as the registry tag and as the "type" field of serialized records.
type PatientType string

const (
	TypeAdult  PatientType = "adultpatient"
	TypeChild  PatientType = "childpatient"
	TypeSenior PatientType = "seniorpatient"
)

// IsValid reports whether the type is one of the known variants.
func (t PatientType) IsValid() bool {
	switch t {
	case TypeAdult, TypeChild, TypeSenior:
		return true
	default:
		return false
	}
}

// String returns the string representation of the patient type.
func (t PatientType) String() string {
	return string(t)
}

// Patient is the common contract of the three patient variants.
//
// Field setters follow a reject-and-retain policy: an out-of-range age
// or an unrecognized gender code leaves the current value unchanged and
// produces no error. Constructors intentionally do NOT apply that
// validation: values loaded from records or passed to the factory are
// accepted as-is, and only the setter path enforces the ranges. That
// asymmetry is part of the contract, not an oversight.
type Patient interface {
	ID() string
	Name() string
	Age() int
	Gender() Gender
	MedicalHistory() string
	Type() PatientType

	SetID(id string)
	SetName(name string)
	SetAge(age int)
	SetGender(gender Gender)
	SetMedicalHistory(history string)

	// RenderHistory returns the medical history prefixed with the
	// variant's distinguishing field.
	RenderHistory() string

	// Describe returns a one-line human-readable summary.
	Describe() string

	// Less, Greater and Equal order patients by (age, history length).
	// Equality deliberately ignores identity, name and variant: two
	// patients with equal age and equal history length compare equal.
	Less(other Patient) bool
	Greater(other Patient) bool
	Equal(other Patient) bool
}

// patientCore holds the fields shared by all variants and implements
// the common part of the Patient contract.
type patientCore struct {
	id      string
	name    string
	age     int
	gender  Gender
	history string
}

func (p *patientCore) ID() string { return p.id }
func (p *patientCore) Name() string { return p.name }
func (p *patientCore) Age() int { return p.age }
func (p *patientCore) Gender() Gender { return p.gender }
func (p *patientCore) MedicalHistory() string { return p.history }

func (p *patientCore) SetID(id string) { p.id = id }
func (p *patientCore) SetName(name string) { p.name = name }

// SetAge accepts ages in the open interval (1, 110), i.e. 2..109
// inclusive. Out-of-range values are silently rejected.
func (p *patientCore) SetAge(age int) {
	if age > 1 && age < 110 {
		p.age = age
	}
}

// SetGender accepts only the recognized gender codes. Anything else is
// silently rejected.
func (p *patientCore) SetGender(gender Gender) {
	if gender.IsValid() {
		p.gender = gender
	}
}

func (p *patientCore) SetMedicalHistory(history string) { p.history = history }

func (p *patientCore) Less(other Patient) bool {
	if p.age != other.Age() {
		return p.age < other.Age()
	}
	return len(p.history) < len(other.MedicalHistory())
}

func (p *patientCore) Greater(other Patient) bool {
	if p.age != other.Age() {
		return p.age > other.Age()
	}
	return len(p.history) > len(other.MedicalHistory())
}

func (p *patientCore) Equal(other Patient) bool {
	return p.age == other.Age() && len(p.history) == len(other.MedicalHistory())
}

// AdultPatient is a working-age patient; its distinguishing field is
// the occupation.
type AdultPatient struct {
	patientCore
	occupation string
}

// NewAdultPatient constructs an adult patient. No field validation is
// applied at construction time.
func NewAdultPatient(id, name string, age int, gender Gender, history, occupation string) *AdultPatient {
	return &AdultPatient{
		patientCore: patientCore{id: id, name: name, age: age, gender: gender, history: history},
		occupation:  occupation,
	}
}

func (p *AdultPatient) Type() PatientType { return TypeAdult }

func (p *AdultPatient) Occupation() string { return p.occupation }
func (p *AdultPatient) SetOccupation(occupation string) { p.occupation = occupation }

func (p *AdultPatient) RenderHistory() string {
	return fmt.Sprintf("Adult patient [%s], occupation: %s\n%s", p.name, p.occupation, p.history)
}

func (p *AdultPatient) Describe() string {
	return fmt.Sprintf("Patient: %s, occupation: %s, age: %d, gender: %s", p.name, p.occupation, p.age, p.gender)
}

// ChildPatient is a minor; its distinguishing field is the guardian.
type ChildPatient struct {
	patientCore
	guardian string
}

// NewChildPatient constructs a child patient. No field validation is
// applied at construction time.
func NewChildPatient(id, name string, age int, gender Gender, history, guardian string) *ChildPatient {
	return &ChildPatient{
		patientCore: patientCore{id: id, name: name, age: age, gender: gender, history: history},
		guardian:    guardian,
	}
}

func (p *ChildPatient) Type() PatientType { return TypeChild }

func (p *ChildPatient) Guardian() string { return p.guardian }
func (p *ChildPatient) SetGuardian(guardian string) { p.guardian = guardian }

func (p *ChildPatient) RenderHistory() string {
	return fmt.Sprintf("Child patient [%s], guardian: %s\n%s", p.name, p.guardian, p.history)
}

func (p *ChildPatient) Describe() string {
	return fmt.Sprintf("Patient: %s, guardian: %s, age: %d", p.name, p.guardian, p.age)
}

// SeniorPatient is an elderly patient; its distinguishing field is the
// list of chronic conditions.
type SeniorPatient struct {
	patientCore
	chronicConditions string
}

// NewSeniorPatient constructs a senior patient. No field validation is
// applied at construction time.
func NewSeniorPatient(id, name string, age int, gender Gender, history, chronicConditions string) *SeniorPatient {
	return &SeniorPatient{
		patientCore:       patientCore{id: id, name: name, age: age, gender: gender, history: history},
		chronicConditions: chronicConditions,
	}
}

func (p *SeniorPatient) Type() PatientType { return TypeSenior }

func (p *SeniorPatient) ChronicConditions() string { return p.chronicConditions }
func (p *SeniorPatient) SetChronicConditions(c string) { p.chronicConditions = c }

func (p *SeniorPatient) RenderHistory() string {
	return fmt.Sprintf("Senior patient [%s], chronic conditions: %s\n%s", p.name, p.chronicConditions, p.history)
}

func (p *SeniorPatient) Describe() string {
	return fmt.Sprintf("Patient: %s, chronic conditions: %s, age: %d", p.name, p.chronicConditions, p.age)
}
