package roster

import (
	"errors"
	"testing"

	"oncallconv/internal/config"
)

func testEmployees() []config.Employee {
	return []config.Employee{
		{Username: "ellias4", Initials: "AS", Roles: []string{"1056"}, Name: "Dr. Ankur Simran Ellison"},
		{Username: "gonzsa2", Initials: "SG", Roles: []string{"1056"}, Name: "Dr. Gonzales, Salem"},
		{Username: "chengme", Initials: "MC", Roles: []string{"1056"}, Name: "Dr. Milkha Chengi"},
		{Username: "9999", Initials: "TELE", Roles: []string{"58"}, Name: "Dr. Tele Radiology"},
		{Username: "norole", Initials: "NR", Name: "Dr. No Role"},
	}
}

func TestResolve_Initials(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	for _, token := range []string{"AS", "as", " As "} {
		emp, err := r.Resolve(token, "Gen_CT")
		if err != nil {
			t.Fatalf("resolve %q: %v", token, err)
		}
		if emp.Username != "ellias4" {
			t.Fatalf("resolve %q: got %s", token, emp.Username)
		}
	}
}

func TestResolve_FullName(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	emp, err := r.Resolve("Dr. Milkha Chengi", "MRI")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if emp.Username != "chengme" {
		t.Fatalf("got %s", emp.Username)
	}
}

func TestResolve_LastFirstCell(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	emp, err := r.Resolve("GONZALES, SALEM", "Gen_CT")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if emp.Username != "gonzsa2" {
		t.Fatalf("got %s", emp.Username)
	}
}

func TestResolve_BareNameContainment(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	emp, err := r.Resolve("Chengi", "MRI")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if emp.Username != "chengme" {
		t.Fatalf("got %s", emp.Username)
	}
}

func TestResolve_Unknown(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	_, err := r.Resolve("ZZ", "Fluoro")
	var unknownErr *UnknownEmployeeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("want UnknownEmployeeError, got %v", err)
	}
	if unknownErr.Token != "ZZ" || unknownErr.Team != "Fluoro" {
		t.Fatalf("unexpected error fields: %+v", unknownErr)
	}
}

func TestResolveWorkCell_Combined(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	cases := []struct {
		cell string
		want string
	}{
		{"AS", "ellias4"},
		{"AS/TELE", "ellias4"},
		{"TELE/AS", "ellias4"},
		{"ZZ/TELE/MC", "chengme"},
		{"ZZ/TELE", "9999"},
	}
	for _, tc := range cases {
		emp, err := r.ResolveWorkCell(tc.cell, "Gen_CT")
		if err != nil {
			t.Fatalf("resolve %q: %v", tc.cell, err)
		}
		if emp.Username != tc.want {
			t.Fatalf("resolve %q: got %s, want %s", tc.cell, emp.Username, tc.want)
		}
	}
}

func TestResolveWorkCell_NoReaderMatches(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	_, err := r.ResolveWorkCell("ZZ/YY", "Gen_CT")
	var unknownErr *UnknownEmployeeError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("want UnknownEmployeeError, got %v", err)
	}
}

func TestMarkerRoles(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), map[string][]string{
		"X":  {"84", "2001"},
		"XA": {"84"},
		"XP": {"2001"},
	})

	roles, err := r.MarkerRoles("x", "Cardiovascular")
	if err != nil {
		t.Fatalf("marker roles: %v", err)
	}
	if len(roles) != 2 || roles[0] != "84" || roles[1] != "2001" {
		t.Fatalf("unexpected roles: %v", roles)
	}

	_, err = r.MarkerRoles("XB", "Cardiovascular")
	var roleErr *UnknownRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("want UnknownRoleError, got %v", err)
	}
	if roleErr.Marker != "XB" {
		t.Fatalf("unexpected marker in error: %q", roleErr.Marker)
	}
}

func TestFirstRole(t *testing.T) {
	t.Parallel()

	r := NewResolver(testEmployees(), nil)

	emp, err := r.Resolve("AS", "Gen_CT")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	role, err := r.FirstRole(emp, "Gen_CT")
	if err != nil {
		t.Fatalf("first role: %v", err)
	}
	if role != "1056" {
		t.Fatalf("got role %s", role)
	}

	noRole, err := r.Resolve("NR", "Gen_CT")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	_, err = r.FirstRole(noRole, "Gen_CT")
	var roleErr *UnknownRoleError
	if !errors.As(err, &roleErr) {
		t.Fatalf("want UnknownRoleError, got %v", err)
	}
}
