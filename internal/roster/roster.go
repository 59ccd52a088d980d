// Package roster resolves schedule tokens (initials, display names,
// "LAST, FIRST" cells) to canonical employees and shift markers to
// role identifiers, using the load-once mapping tables. Unresolved
// tokens are errors, never silent drops: a missing assignment in the
// import file is a scheduling-safety issue.
package roster

import (
	"fmt"
	"strings"

	"oncallconv/internal/config"
)

// UnknownEmployeeError an employee token with no roster match.
type UnknownEmployeeError struct {
	Token string
	Team  string
}

func (e *UnknownEmployeeError) Error() string {
	return fmt.Sprintf("team %s: unknown employee token %q", e.Team, e.Token)
}

// UnknownRoleError a shift marker with no role mapping.
type UnknownRoleError struct {
	Marker string
	Team   string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("team %s: unknown shift marker %q", e.Team, e.Marker)
}

// Resolver immutable lookup tables for one department.
type Resolver struct {
	employees  []config.Employee
	byInitials map[string]config.Employee
	byName     map[string]config.Employee
	markers    map[string][]string
}

// NewResolver builds a resolver over a department's roster. markers
// may be nil for departments whose markers carry no role information.
func NewResolver(employees []config.Employee, markers map[string][]string) *Resolver {
	r := &Resolver{
		employees:  employees,
		byInitials: make(map[string]config.Employee, len(employees)),
		byName:     make(map[string]config.Employee, len(employees)),
		markers:    markers,
	}
	for _, emp := range employees {
		r.byInitials[strings.ToUpper(emp.Initials)] = emp
		r.byName[normalizeName(emp.Name)] = emp
	}
	return r
}

func normalizeName(name string) string {
	name = strings.ReplaceAll(name, ".", "")
	return strings.ToUpper(strings.TrimSpace(name))
}

// Resolve maps a token to an employee. Matching order: initials,
// exact normalized name, "LAST, FIRST" containment, bare-name
// containment. team is only used for error reporting.
func (r *Resolver) Resolve(token, team string) (config.Employee, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return config.Employee{}, &UnknownEmployeeError{Token: token, Team: team}
	}

	if emp, ok := r.byInitials[strings.ToUpper(trimmed)]; ok {
		return emp, nil
	}
	if emp, ok := r.byName[normalizeName(trimmed)]; ok {
		return emp, nil
	}

	upper := strings.ToUpper(trimmed)
	if last, first, ok := strings.Cut(upper, ","); ok {
		last = strings.TrimSpace(last)
		first = strings.TrimSpace(first)
		for _, emp := range r.employees {
			name := strings.ToUpper(emp.Name)
			if last == "" || !strings.Contains(name, last) {
				continue
			}
			if first == "" || strings.Contains(name, first) {
				return emp, nil
			}
		}
		// Last-name matching failed; a first name alone can still
		// be unambiguous on these rosters.
		if first != "" {
			for _, emp := range r.employees {
				if strings.Contains(strings.ToUpper(emp.Name), first) {
					return emp, nil
				}
			}
		}
	} else {
		for _, emp := range r.employees {
			if strings.Contains(strings.ToUpper(emp.Name), upper) {
				return emp, nil
			}
		}
	}

	return config.Employee{}, &UnknownEmployeeError{Token: token, Team: team}
}

// ResolveWorkCell maps a work-grid cell to an employee. Combined
// reader cells ("AS/TELE", "AK/TELE/MC") resolve to the first
// non-TELE reader on the roster, falling back to TELE.
func (r *Resolver) ResolveWorkCell(cell, team string) (config.Employee, error) {
	trimmed := strings.TrimSpace(cell)
	if !strings.Contains(trimmed, "/") {
		return r.Resolve(trimmed, team)
	}

	var readers []string
	for _, part := range strings.Split(trimmed, "/") {
		if part = strings.TrimSpace(part); part != "" {
			readers = append(readers, strings.ToUpper(part))
		}
	}
	for _, reader := range readers {
		if reader == "TELE" {
			continue
		}
		if emp, ok := r.byInitials[reader]; ok {
			return emp, nil
		}
	}
	for _, reader := range readers {
		if reader == "TELE" {
			if emp, ok := r.byInitials["TELE"]; ok {
				return emp, nil
			}
		}
	}

	return config.Employee{}, &UnknownEmployeeError{Token: cell, Team: team}
}

// MarkerRoles maps a shift marker to the role identifiers it covers.
func (r *Resolver) MarkerRoles(marker, team string) ([]string, error) {
	roles, ok := r.markers[strings.ToUpper(strings.TrimSpace(marker))]
	if !ok {
		return nil, &UnknownRoleError{Marker: marker, Team: team}
	}
	return roles, nil
}

// FirstRole returns the employee's primary configured role, for teams
// whose markers carry no role information of their own.
func (r *Resolver) FirstRole(emp config.Employee, team string) (string, error) {
	if len(emp.Roles) == 0 {
		return "", &UnknownRoleError{Marker: emp.Initials, Team: team}
	}
	return emp.Roles[0], nil
}
