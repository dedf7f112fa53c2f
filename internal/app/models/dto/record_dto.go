package dto

import (
	"fmt"
	"time"

	"github.com/yigit/admissions/internal/app/models"
)

// DateLayout is the wire format of dates
const DateLayout = "2006-01-02"

// StudentRequest is the full-replace payload of a student profile.
// The "bandwith" and "target_for_iitm" keys are part of the client contract.
type StudentRequest struct {
	DOB              *Scalar `json:"dob" binding:"required,datetime=2006-01-02"`
	RollNo           *Scalar `json:"roll_no"`
	Gender           *Scalar `json:"gender"`
	Category         *Scalar `json:"category"`
	Country          *Scalar `json:"country"`
	PWD              *Scalar `json:"pwd"`
	TypeOfDisability *Scalar `json:"type_of_disability"`
	Requirement      *Scalar `json:"requirement"`
	Bandwidth        *Scalar `json:"bandwith"`
	ReasonOfJoining  *Scalar `json:"reason_of_joining"`
	HoursDedicated   *Scalar `json:"hours_dedicated"`
	SourceKind       *Scalar `json:"source_kind"`
	TargetProgram    *Scalar `json:"target_for_iitm"`
}

// ToModel converts the request into a profile
func (r *StudentRequest) ToModel() (*models.StudentProfile, error) {
	dob, err := time.Parse(DateLayout, r.DOB.String())
	if err != nil {
		return nil, fmt.Errorf("invalid dob: %w", err)
	}
	return &models.StudentProfile{
		DOB:              dob,
		RollNo:           r.RollNo.Text(),
		Gender:           r.Gender.Text(),
		Category:         r.Category.Text(),
		Country:          r.Country.Text(),
		PWD:              r.PWD.Text(),
		TypeOfDisability: r.TypeOfDisability.Text(),
		Requirement:      r.Requirement.Text(),
		Bandwidth:        r.Bandwidth.Text(),
		ReasonOfJoining:  r.ReasonOfJoining.Text(),
		HoursDedicated:   r.HoursDedicated.Text(),
		SourceKind:       r.SourceKind.Text(),
		TargetProgram:    r.TargetProgram.Text(),
	}, nil
}

// StudentResponse is the stored profile as returned to clients
type StudentResponse struct {
	DOB              string  `json:"dob" example:"2004-05-17"`
	RollNo           *string `json:"roll_no"`
	Gender           *string `json:"gender"`
	Category         *string `json:"category"`
	Country          *string `json:"country"`
	PWD              *string `json:"pwd"`
	TypeOfDisability *string `json:"type_of_disability"`
	Requirement      *string `json:"requirement"`
	Bandwidth        *string `json:"bandwith"`
	ReasonOfJoining  *string `json:"reason_of_joining"`
	HoursDedicated   *string `json:"hours_dedicated"`
	SourceKind       *string `json:"source_kind"`
	TargetProgram    *string `json:"target_for_iitm"`
}

// FromStudentProfile converts a profile to its response
func FromStudentProfile(p *models.StudentProfile) StudentResponse {
	return StudentResponse{
		DOB:              p.DOB.Format(DateLayout),
		RollNo:           p.RollNo,
		Gender:           p.Gender,
		Category:         p.Category,
		Country:          p.Country,
		PWD:              p.PWD,
		TypeOfDisability: p.TypeOfDisability,
		Requirement:      p.Requirement,
		Bandwidth:        p.Bandwidth,
		ReasonOfJoining:  p.ReasonOfJoining,
		HoursDedicated:   p.HoursDedicated,
		SourceKind:       p.SourceKind,
		TargetProgram:    p.TargetProgram,
	}
}

// SchoolRequest is the full-replace payload of a school record
type SchoolRequest struct {
	SchoolName      *Scalar `json:"school_name" binding:"required,notblank"`
	TypeOfSchool    *Scalar `json:"type_of_school"`
	Marks           *Scalar `json:"marks"`
	PassStatus      *Scalar `json:"pass_status"`
	YearOfPassing   *Scalar `json:"year_of_passing"`
	City            *Scalar `json:"city"`
	State           *Scalar `json:"state"`
	OtherCity       *Scalar `json:"other_city"`
	OtherState      *Scalar `json:"other_state"`
	CountryOfSchool *Scalar `json:"country_of_school"`
}

// ToModel converts the request into a school record
func (r *SchoolRequest) ToModel() (*models.SchoolRecord, error) {
	return &models.SchoolRecord{
		SchoolName:      r.SchoolName.String(),
		TypeOfSchool:    r.TypeOfSchool.Text(),
		Marks:           r.Marks.Text(),
		PassStatus:      r.PassStatus.Text(),
		YearOfPassing:   r.YearOfPassing.Text(),
		City:            r.City.Text(),
		State:           r.State.Text(),
		OtherCity:       r.OtherCity.Text(),
		OtherState:      r.OtherState.Text(),
		CountryOfSchool: r.CountryOfSchool.Text(),
	}, nil
}

// SchoolResponse is the stored school record as returned to clients
type SchoolResponse struct {
	SchoolName      string  `json:"school_name"`
	TypeOfSchool    *string `json:"type_of_school"`
	Marks           *string `json:"marks"`
	PassStatus      *string `json:"pass_status"`
	YearOfPassing   *string `json:"year_of_passing"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	OtherCity       *string `json:"other_city"`
	OtherState      *string `json:"other_state"`
	CountryOfSchool *string `json:"country_of_school"`
}

// FromSchoolRecord converts a school record to its response
func FromSchoolRecord(s *models.SchoolRecord) SchoolResponse {
	return SchoolResponse{
		SchoolName:      s.SchoolName,
		TypeOfSchool:    s.TypeOfSchool,
		Marks:           s.Marks,
		PassStatus:      s.PassStatus,
		YearOfPassing:   s.YearOfPassing,
		City:            s.City,
		State:           s.State,
		OtherCity:       s.OtherCity,
		OtherState:      s.OtherState,
		CountryOfSchool: s.CountryOfSchool,
	}
}

// CollegeRequest is the full-replace payload of a college record
type CollegeRequest struct {
	CollegeName        *Scalar `json:"college_name" binding:"required,notblank"`
	University         *Scalar `json:"university"`
	FieldOfStudy       *Scalar `json:"field_of_study"`
	RollNo             *Scalar `json:"roll_no"`
	CollegeStatus      *Scalar `json:"college_status"`
	YearOfJoining      *Scalar `json:"year_of_joining"`
	YearOfCompletion   *Scalar `json:"year_of_completion"`
	CurrentYear        *Scalar `json:"current_year"`
	ReasonForDropping  *Scalar `json:"reason_for_dropping"`
	CollegeState       *Scalar `json:"college_state"`
	CollegeCountry     *Scalar `json:"college_country"`
	QualifyingCriteria *Scalar `json:"qualifying_criteria"`
}

// ToModel converts the request into a college record
func (r *CollegeRequest) ToModel() (*models.CollegeRecord, error) {
	return &models.CollegeRecord{
		CollegeName:        r.CollegeName.String(),
		University:         r.University.Text(),
		FieldOfStudy:       r.FieldOfStudy.Text(),
		RollNo:             r.RollNo.Text(),
		CollegeStatus:      r.CollegeStatus.Text(),
		YearOfJoining:      r.YearOfJoining.Text(),
		YearOfCompletion:   r.YearOfCompletion.Text(),
		CurrentYear:        r.CurrentYear.Text(),
		ReasonForDropping:  r.ReasonForDropping.Text(),
		CollegeState:       r.CollegeState.Text(),
		CollegeCountry:     r.CollegeCountry.Text(),
		QualifyingCriteria: r.QualifyingCriteria.Text(),
	}, nil
}

// CollegeResponse is the stored college record as returned to clients
type CollegeResponse struct {
	CollegeName        string  `json:"college_name"`
	University         *string `json:"university"`
	FieldOfStudy       *string `json:"field_of_study"`
	RollNo             *string `json:"roll_no"`
	CollegeStatus      *string `json:"college_status"`
	YearOfJoining      *string `json:"year_of_joining"`
	YearOfCompletion   *string `json:"year_of_completion"`
	CurrentYear        *string `json:"current_year"`
	ReasonForDropping  *string `json:"reason_for_dropping"`
	CollegeState       *string `json:"college_state"`
	CollegeCountry     *string `json:"college_country"`
	QualifyingCriteria *string `json:"qualifying_criteria"`
}

// FromCollegeRecord converts a college record to its response
func FromCollegeRecord(c *models.CollegeRecord) CollegeResponse {
	return CollegeResponse{
		CollegeName:        c.CollegeName,
		University:         c.University,
		FieldOfStudy:       c.FieldOfStudy,
		RollNo:             c.RollNo,
		CollegeStatus:      c.CollegeStatus,
		YearOfJoining:      c.YearOfJoining,
		YearOfCompletion:   c.YearOfCompletion,
		CurrentYear:        c.CurrentYear,
		ReasonForDropping:  c.ReasonForDropping,
		CollegeState:       c.CollegeState,
		CollegeCountry:     c.CollegeCountry,
		QualifyingCriteria: c.QualifyingCriteria,
	}
}

// ExamRequest is the full-replace payload of an entrance exam record
type ExamRequest struct {
	Qualified      *Scalar `json:"jee_qualified" binding:"required,notblank"`
	RegID          *Scalar `json:"reg_id"`
	QualifiedMonth *Scalar `json:"qualified_month"`
	QualifiedYear  *Scalar `json:"qualified_year"`
}

// ToModel converts the request into an exam record
func (r *ExamRequest) ToModel() (*models.ExamRecord, error) {
	return &models.ExamRecord{
		Qualified:      r.Qualified.String(),
		RegID:          r.RegID.Text(),
		QualifiedMonth: r.QualifiedMonth.Text(),
		QualifiedYear:  r.QualifiedYear.Text(),
	}, nil
}

// ExamResponse is the stored exam record as returned to clients
type ExamResponse struct {
	Qualified      string  `json:"jee_qualified"`
	RegID          *string `json:"reg_id"`
	QualifiedMonth *string `json:"qualified_month"`
	QualifiedYear  *string `json:"qualified_year"`
}

// FromExamRecord converts an exam record to its response
func FromExamRecord(e *models.ExamRecord) ExamResponse {
	return ExamResponse{
		Qualified:      e.Qualified,
		RegID:          e.RegID,
		QualifiedMonth: e.QualifiedMonth,
		QualifiedYear:  e.QualifiedYear,
	}
}
