package model

import "strings"

// Department selects which conversion pipeline handles an upload set.
type Department string

const (
	DepartmentRadiology  Department = "radiology"
	DepartmentCardiology Department = "cardiology"
)

// ParseDepartment maps a request token to a known department.
func ParseDepartment(s string) (Department, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radiology", "rad":
		return DepartmentRadiology, true
	case "cardiology", "cardio":
		return DepartmentCardiology, true
	}
	return "", false
}

// OutputHeaders are the import file columns, in wire order.
var OutputHeaders = []string{
	"EMPLOYEE", "TEAM", "STARTDATE", "STARTTIME",
	"ENDDATE", "ENDTIME", "ROLE", "NOTES", "ORDER", "TEAMCOMMENT",
}

// ImportRecord is one line of the import file. All fields are already
// output-formatted strings; a record is never modified after assembly.
type ImportRecord struct {
	Employee    string
	Team        string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Role        string
	Notes       string
	Order       string
	TeamComment string
}

// Fields returns the record values in OutputHeaders order.
func (r ImportRecord) Fields() []string {
	return []string{
		r.Employee, r.Team, r.StartDate, r.StartTime,
		r.EndDate, r.EndTime, r.Role, r.Notes, r.Order, r.TeamComment,
	}
}
