package domain

import (
	"strings"
	"sync"
)

// CommonFields are the fields shared by every patient variant, passed
// to a variant constructor alongside its single distinguishing field.
type CommonFields struct {
	ID             string
	Name           string
	Age            int
	Gender         Gender
	MedicalHistory string
}

// Constructor builds a concrete patient variant from the common fields
// and the variant's distinguishing field.
type Constructor func(common CommonFields, extra string) Patient

// The registry maps lowercased type tags to variant constructors. It is
// populated once at init for the known variants and only ever extended
// afterwards, never mutated; the lock exists so that a future variant
// can be registered safely before the table is read.
var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{}
)

func init() {
	RegisterPatientType(string(TypeAdult), func(c CommonFields, extra string) Patient {
		return NewAdultPatient(c.ID, c.Name, c.Age, c.Gender, c.MedicalHistory, extra)
	})
	RegisterPatientType(string(TypeChild), func(c CommonFields, extra string) Patient {
		return NewChildPatient(c.ID, c.Name, c.Age, c.Gender, c.MedicalHistory, extra)
	})
	RegisterPatientType(string(TypeSenior), func(c CommonFields, extra string) Patient {
		return NewSeniorPatient(c.ID, c.Name, c.Age, c.Gender, c.MedicalHistory, extra)
	})
}

// RegisterPatientType adds a constructor for the given tag. Tags are
// matched case-insensitively; registering an existing tag replaces its
// constructor.
func RegisterPatientType(tag string, c Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(tag)] = c
}

// lookupConstructor resolves a tag case-insensitively.
func lookupConstructor(tag string) (Constructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[strings.ToLower(tag)]
	return c, ok
}

// NewPatient is the factory entry point: it resolves the tag against
// the registry and constructs the matching variant. The construction
// path applies no age/gender validation (see the Patient doc comment).
// An unresolvable tag yields an UnknownPatientTypeError carrying the
// tag as given.
func NewPatient(tag string, common CommonFields, extra string) (Patient, error) {
	c, ok := lookupConstructor(tag)
	if !ok {
		return nil, &UnknownPatientTypeError{Tag: tag}
	}
	return c(common, extra), nil
}
