package repositories

import (
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/db"
)

// NewStudentProfileRepository stores StudentProfile rows in student_profiles
func NewStudentProfileRepository(q db.Querier) *RecordRepository[*models.StudentProfile] {
	return newRecordRepository(q, recordTable[*models.StudentProfile]{
		name: "student_profiles",
		kind: models.KindStudentProfile,
		columns: []string{
			"dob", "roll_no", "gender", "category", "country", "pwd", "type_of_disability",
			"requirement", "bandwidth", "reason_of_joining", "hours_dedicated", "source_kind", "target_program",
		},
		newRecord: func() *models.StudentProfile { return &models.StudentProfile{} },
		values: func(p *models.StudentProfile) []any {
			return []any{
				p.DOB, p.RollNo, p.Gender, p.Category, p.Country, p.PWD, p.TypeOfDisability,
				p.Requirement, p.Bandwidth, p.ReasonOfJoining, p.HoursDedicated, p.SourceKind, p.TargetProgram,
			}
		},
		fields: func(p *models.StudentProfile) []any {
			return []any{
				&p.DOB, &p.RollNo, &p.Gender, &p.Category, &p.Country, &p.PWD, &p.TypeOfDisability,
				&p.Requirement, &p.Bandwidth, &p.ReasonOfJoining, &p.HoursDedicated, &p.SourceKind, &p.TargetProgram,
			}
		},
	})
}

// NewSchoolRecordRepository stores SchoolRecord rows in school_records
func NewSchoolRecordRepository(q db.Querier) *RecordRepository[*models.SchoolRecord] {
	return newRecordRepository(q, recordTable[*models.SchoolRecord]{
		name: "school_records",
		kind: models.KindSchoolRecord,
		columns: []string{
			"school_name", "type_of_school", "marks", "pass_status", "year_of_passing",
			"city", "state", "other_city", "other_state", "country_of_school",
		},
		newRecord: func() *models.SchoolRecord { return &models.SchoolRecord{} },
		values: func(s *models.SchoolRecord) []any {
			return []any{
				s.SchoolName, s.TypeOfSchool, s.Marks, s.PassStatus, s.YearOfPassing,
				s.City, s.State, s.OtherCity, s.OtherState, s.CountryOfSchool,
			}
		},
		fields: func(s *models.SchoolRecord) []any {
			return []any{
				&s.SchoolName, &s.TypeOfSchool, &s.Marks, &s.PassStatus, &s.YearOfPassing,
				&s.City, &s.State, &s.OtherCity, &s.OtherState, &s.CountryOfSchool,
			}
		},
	})
}

// NewCollegeRecordRepository stores CollegeRecord rows in college_records
func NewCollegeRecordRepository(q db.Querier) *RecordRepository[*models.CollegeRecord] {
	return newRecordRepository(q, recordTable[*models.CollegeRecord]{
		name: "college_records",
		kind: models.KindCollegeRecord,
		columns: []string{
			"college_name", "university", "field_of_study", "roll_no", "college_status", "year_of_joining",
			"year_of_completion", "current_year", "reason_for_dropping", "college_state", "college_country",
			"qualifying_criteria",
		},
		newRecord: func() *models.CollegeRecord { return &models.CollegeRecord{} },
		values: func(c *models.CollegeRecord) []any {
			return []any{
				c.CollegeName, c.University, c.FieldOfStudy, c.RollNo, c.CollegeStatus, c.YearOfJoining,
				c.YearOfCompletion, c.CurrentYear, c.ReasonForDropping, c.CollegeState, c.CollegeCountry,
				c.QualifyingCriteria,
			}
		},
		fields: func(c *models.CollegeRecord) []any {
			return []any{
				&c.CollegeName, &c.University, &c.FieldOfStudy, &c.RollNo, &c.CollegeStatus, &c.YearOfJoining,
				&c.YearOfCompletion, &c.CurrentYear, &c.ReasonForDropping, &c.CollegeState, &c.CollegeCountry,
				&c.QualifyingCriteria,
			}
		},
	})
}

// NewExamRecordRepository stores ExamRecord rows in exam_records
func NewExamRecordRepository(q db.Querier) *RecordRepository[*models.ExamRecord] {
	return newRecordRepository(q, recordTable[*models.ExamRecord]{
		name:      "exam_records",
		kind:      models.KindExamRecord,
		columns:   []string{"jee_qualified", "reg_id", "qualified_month", "qualified_year"},
		newRecord: func() *models.ExamRecord { return &models.ExamRecord{} },
		values: func(e *models.ExamRecord) []any {
			return []any{e.Qualified, e.RegID, e.QualifiedMonth, e.QualifiedYear}
		},
		fields: func(e *models.ExamRecord) []any {
			return []any{&e.Qualified, &e.RegID, &e.QualifiedMonth, &e.QualifiedYear}
		},
	})
}
