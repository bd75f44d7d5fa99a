package domain

// Record is the flat-or-nested key-value serialization unit exchanged
// with the byte sink/source. It is JSON-compatible: records decoded
// from JSON carry float64 for numbers and map[string]interface{} for
// nested records, and the codec tolerates both shapes.
type Record map[string]interface{}

// Record field keys. These are the stable on-disk names; renaming one
// breaks every archived document.
const (
	keyPatientID      = "patient_id"
	keyName           = "name"
	keyAge            = "age"
	keyGender         = "gender"
	keyMedicalHistory = "medical_history"
	keyType           = "type"

	keyOccupation        = "occupation"
	keyGuardian          = "guardian"
	keyChronicConditions = "chronic_conditions"

	keyAppointmentID = "appointment_id"
	keyPatient       = "patient"
	keyDoctor        = "doctor"
	keyDate          = "date"
	keyDiagnosis     = "diagnosis"
	keyPrescription  = "prescription"
	keyDoctorInfo    = "doctor_info"
	keySpecialty     = "specialty"
	keyContactInfo   = "contact_info"
	keyServices      = "services"
	keyPrice         = "price"
)

// PatientToRecord serializes a patient into a flat record: the common
// fields, the variant's distinguishing field under its own key, and the
// lowercased variant tag under "type".
func PatientToRecord(p Patient) Record {
	rec := Record{
		keyPatientID:      p.ID(),
		keyName:           p.Name(),
		keyAge:            p.Age(),
		keyGender:         string(p.Gender()),
		keyMedicalHistory: p.MedicalHistory(),
		keyType:           string(p.Type()),
	}
	switch v := p.(type) {
	case *AdultPatient:
		rec[keyOccupation] = v.Occupation()
	case *ChildPatient:
		rec[keyGuardian] = v.Guardian()
	case *SeniorPatient:
		rec[keyChronicConditions] = v.ChronicConditions()
	}
	return rec
}

// variantFieldKey maps a (lowercase) type tag to the key holding its
// distinguishing field.
func variantFieldKey(tag PatientType) string {
	switch tag {
	case TypeAdult:
		return keyOccupation
	case TypeChild:
		return keyGuardian
	case TypeSenior:
		return keyChronicConditions
	default:
		return ""
	}
}

// PatientFromRecord reconstructs a patient from a record. The type tag
// is resolved through the registry; a missing or unknown tag yields an
// UnknownPatientTypeError. The distinguishing field defaults to the
// empty string when absent. Absent age/gender pass through as zero
// values; the codec forces no defaults beyond what the record supplies.
func PatientFromRecord(rec Record) (Patient, error) {
	tag := stringField(rec, keyType)
	common := CommonFields{
		ID:             stringField(rec, keyPatientID),
		Name:           stringField(rec, keyName),
		Age:            intField(rec, keyAge),
		Gender:         Gender(stringField(rec, keyGender)),
		MedicalHistory: stringField(rec, keyMedicalHistory),
	}
	extra := stringField(rec, variantFieldKey(PatientType(tag)))
	return NewPatient(tag, common, extra)
}

// AppointmentToRecord serializes an appointment, nesting the patient's
// full record, the doctor-info sub-record, and the ordered service
// sub-records.
func AppointmentToRecord(a *Appointment) Record {
	services := make([]Record, 0, len(a.Services()))
	for _, s := range a.Services() {
		services = append(services, Record{keyName: s.Name, keyPrice: s.Price})
	}
	info := a.DoctorInfo()
	return Record{
		keyAppointmentID: a.ID(),
		keyPatient:       PatientToRecord(a.Patient()),
		keyDoctor:        a.Doctor(),
		keyDate:          a.Date(),
		keyDiagnosis:     a.Diagnosis(),
		keyPrescription:  a.Prescription(),
		keyDoctorInfo: Record{
			keyName:        info.Name,
			keySpecialty:   info.Specialty,
			keyContactInfo: info.ContactInfo,
		},
		keyServices: services,
	}
}

// AppointmentFromRecord reconstructs an appointment: first the nested
// patient, then the doctor info, then the services replayed through
// AddService in their original order.
func AppointmentFromRecord(rec Record) (*Appointment, error) {
	patient, err := PatientFromRecord(recordField(rec, keyPatient))
	if err != nil {
		return nil, err
	}

	infoRec := recordField(rec, keyDoctorInfo)
	info := DoctorInfo{
		Name:        stringField(infoRec, keyName),
		Specialty:   stringField(infoRec, keySpecialty),
		ContactInfo: stringField(infoRec, keyContactInfo),
	}

	a := NewAppointment(
		stringField(rec, keyAppointmentID),
		patient,
		stringField(rec, keyDoctor),
		stringField(rec, keyDate),
		stringField(rec, keyDiagnosis),
		stringField(rec, keyPrescription),
		info,
	)

	for _, svc := range listField(rec, keyServices) {
		a.AddService(Service{
			Name:  stringField(svc, keyName),
			Price: floatField(svc, keyPrice),
		})
	}
	return a, nil
}

func stringField(rec Record, key string) string {
	if rec == nil || key == "" {
		return ""
	}
	if s, ok := rec[key].(string); ok {
		return s
	}
	return ""
}

func intField(rec Record, key string) int {
	if rec == nil {
		return 0
	}
	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func floatField(rec Record, key string) float64 {
	if rec == nil {
		return 0
	}
	switch v := rec[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func recordField(rec Record, key string) Record {
	if rec == nil {
		return nil
	}
	switch v := rec[key].(type) {
	case Record:
		return v
	case map[string]interface{}:
		return Record(v)
	default:
		return nil
	}
}

func listField(rec Record, key string) []Record {
	if rec == nil {
		return nil
	}
	switch v := rec[key].(type) {
	case []Record:
		return v
	case []interface{}:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case Record:
				out = append(out, m)
			case map[string]interface{}:
				out = append(out, Record(m))
			}
		}
		return out
	default:
		return nil
	}
}
