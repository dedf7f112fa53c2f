package models

import "time"

// RecordKind names one of the per-user singleton record types
type RecordKind string

const (
	KindStudentProfile RecordKind = "student"
	KindSchoolRecord   RecordKind = "school"
	KindCollegeRecord  RecordKind = "college"
	KindExamRecord     RecordKind = "jee"
)

// Label is the human readable name used in response messages
func (k RecordKind) Label() string {
	switch k {
	case KindStudentProfile:
		return "student details"
	case KindSchoolRecord:
		return "school details"
	case KindCollegeRecord:
		return "college details"
	case KindExamRecord:
		return "jee details"
	default:
		return string(k) + " details"
	}
}

// Record is implemented by every singleton record. A user owns at most one
// record of each kind.
type Record interface {
	OwnerID() int64
	SetOwnerID(userID int64)
	RecordID() int64
	SetRecordID(id int64)
}

// Ownership carries the identity columns shared by all singleton records
type Ownership struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`
}

// OwnerID returns the owning user
func (o *Ownership) OwnerID() int64 { return o.UserID }

// SetOwnerID assigns the owning user
func (o *Ownership) SetOwnerID(userID int64) { o.UserID = userID }

// RecordID returns the storage id
func (o *Ownership) RecordID() int64 { return o.ID }

// SetRecordID assigns the storage id
func (o *Ownership) SetRecordID(id int64) { o.ID = id }

// StudentProfile holds demographic and intent data of an applicant
type StudentProfile struct {
	Ownership
	DOB              time.Time `db:"dob"`
	RollNo           *string   `db:"roll_no"`
	Gender           *string   `db:"gender"`
	Category         *string   `db:"category"`
	Country          *string   `db:"country"`
	PWD              *string   `db:"pwd"`
	TypeOfDisability *string   `db:"type_of_disability"`
	Requirement      *string   `db:"requirement"`
	Bandwidth        *string   `db:"bandwidth"`
	ReasonOfJoining  *string   `db:"reason_of_joining"`
	HoursDedicated   *string   `db:"hours_dedicated"`
	SourceKind       *string   `db:"source_kind"`
	TargetProgram    *string   `db:"target_program"`
}

// SchoolRecord holds secondary education data
type SchoolRecord struct {
	Ownership
	SchoolName      string  `db:"school_name"`
	TypeOfSchool    *string `db:"type_of_school"`
	Marks           *string `db:"marks"`
	PassStatus      *string `db:"pass_status"`
	YearOfPassing   *string `db:"year_of_passing"`
	City            *string `db:"city"`
	State           *string `db:"state"`
	OtherCity       *string `db:"other_city"`
	OtherState      *string `db:"other_state"`
	CountryOfSchool *string `db:"country_of_school"`
}

// CollegeRecord holds higher education data
type CollegeRecord struct {
	Ownership
	CollegeName        string  `db:"college_name"`
	University         *string `db:"university"`
	FieldOfStudy       *string `db:"field_of_study"`
	RollNo             *string `db:"roll_no"`
	CollegeStatus      *string `db:"college_status"`
	YearOfJoining      *string `db:"year_of_joining"`
	YearOfCompletion   *string `db:"year_of_completion"`
	CurrentYear        *string `db:"current_year"`
	ReasonForDropping  *string `db:"reason_for_dropping"`
	CollegeState       *string `db:"college_state"`
	CollegeCountry     *string `db:"college_country"`
	QualifyingCriteria *string `db:"qualifying_criteria"`
}

// ExamRecord holds entrance examination qualification data
type ExamRecord struct {
	Ownership
	Qualified      string  `db:"jee_qualified"`
	RegID          *string `db:"reg_id"`
	QualifiedMonth *string `db:"qualified_month"`
	QualifiedYear  *string `db:"qualified_year"`
}
