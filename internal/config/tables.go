package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Employee one roster entry: the import system username, the initials
// used on schedule grids, the display name used on on-call sheets, and
// the role identifiers the employee may be scheduled under.
type Employee struct {
	Username string   `toml:"username"`
	Initials string   `toml:"initials"`
	Name     string   `toml:"name"`
	Roles    []string `toml:"roles"`
}

// ShiftWindow one shift block: clock start as a bare 24-hour numeral
// (700, 1530) plus duration in minutes. Duration may cross midnight.
type ShiftWindow struct {
	Start   int `toml:"start"`
	Minutes int `toml:"minutes"`
}

// RadiologyTeam block location and shift policy for one radiology team.
type RadiologyTeam struct {
	Name           string        `toml:"name"`
	ID             string        `toml:"id"`
	WorkColumns    []string      `toml:"work_columns"`
	OnCallRowStart int           `toml:"oncall_row_start"`
	OnCallRowEnd   int           `toml:"oncall_row_end"`
	WorkShifts     []ShiftWindow `toml:"work_shifts"`
	OnCallWeekday  ShiftWindow   `toml:"oncall_weekday"`
	OnCallWeekend  ShiftWindow   `toml:"oncall_weekend"`
}

// RadiologyLayout grid geometry shared by all radiology teams.
type RadiologyLayout struct {
	WorkSheet     string   `toml:"work_sheet"`
	WorkDayColumn string   `toml:"work_day_column"`
	WorkWeekBands [][2]int `toml:"work_week_bands"`

	OnCallSheet          string `toml:"oncall_sheet"`
	OnCallNameColumn     string `toml:"oncall_name_column"`
	OnCallFirstDayColumn string `toml:"oncall_first_day_column"`
	OnCallSkipRows       []int  `toml:"oncall_skip_rows"`
	// Rows 1..OnCallHeaderRowMax are searched for a day-header row
	// before falling back to fixed column arithmetic.
	OnCallHeaderRowMax int    `toml:"oncall_header_row_max"`
	MonthAnchorCell    string `toml:"month_anchor_cell"`
}

// CardiologyBlock block location and shift policy for one cardiology team.
type CardiologyBlock struct {
	Name           string      `toml:"name"`
	ID             string      `toml:"id"`
	RowStart       int         `toml:"row_start"`
	RowEnd         int         `toml:"row_end"`
	EmployeeColumn string      `toml:"employee_column"` // empty: the marked cell itself holds the identifier
	FirstDayColumn string      `toml:"first_day_column"`
	LastDayColumn  string      `toml:"last_day_column"`
	Weekday        ShiftWindow `toml:"weekday"`
	Weekend        ShiftWindow `toml:"weekend"`
	Notes          string      `toml:"notes"`
}

// RadiologyTables radiology roster, layout and team blocks.
type RadiologyTables struct {
	Employees []Employee      `toml:"employees"`
	Layout    RadiologyLayout `toml:"layout"`
	Teams     []RadiologyTeam `toml:"teams"`
}

// CardiologyTables cardiology roster, marker roles and team blocks.
type CardiologyTables struct {
	Employees       []Employee          `toml:"employees"`
	MarkerRoles     map[string][]string `toml:"marker_roles"`
	MonthAnchorCell string              `toml:"month_anchor_cell"`
	YearHelperCell  string              `toml:"year_helper_cell"`
	Cardiovascular  CardiologyBlock     `toml:"cardiovascular"`
	Interventional  CardiologyBlock     `toml:"interventional"`
}

// Tables the full immutable mapping-table set. Loaded once at startup
// and passed by reference into the conversion pipelines.
type Tables struct {
	Radiology  RadiologyTables  `toml:"radiology"`
	Cardiology CardiologyTables `toml:"cardiology"`
}

// LoadTables returns the built-in tables, overlaid with the TOML file
// at path when one is configured.
func LoadTables(path string) (*Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// DefaultTables the mapping tables for the production templates.
func DefaultTables() *Tables {
	return &Tables{
		Radiology: RadiologyTables{
			Employees: []Employee{
				{Username: "allwo0f", Initials: "AK", Roles: []string{"1056"}, Name: "Dr. Allison Livingston"},
				{Username: "audr95t", Initials: "AO", Roles: []string{"1056"}, Name: "Dr. Audrey Randy"},
				{Username: "ellias4", Initials: "AS", Roles: []string{"1056"}, Name: "Dr. Ankur Simran Ellison"},
				{Username: "lotta3", Initials: "AT", Roles: []string{"1056"}, Name: "Dr. Angela Lotti"},
				{Username: "figeftr", Initials: "FT", Roles: []string{"1056"}, Name: "Dr. Fernando Figer"},
				{Username: "hauser4", Initials: "IG", Roles: []string{"1056"}, Name: "Dr. Irvin Garrett Hauser"},
				{Username: "kaisbam", Initials: "LK", Roles: []string{"1056"}, Name: "Dr. Barry Midland Kaiser"},
				{Username: "bellam5", Initials: "MB", Roles: []string{"1056"}, Name: "Dr. Monica Bella"},
				{Username: "chengme", Initials: "MC", Roles: []string{"1056"}, Name: "Dr. Milkha Chengi"},
				{Username: "fakma0e", Initials: "MF", Roles: []string{"1056"}, Name: "Dr. Maria Nargis"},
				{Username: "mumir4", Initials: "MM", Roles: []string{"1056"}, Name: "Dr. Mir Miranda"},
				{Username: "nilanin", Initials: "NN", Roles: []string{"1056"}, Name: "Dr. Nayan Nilani"},
				{Username: "hernapat", Initials: "PR", Roles: []string{"1056"}, Name: "Dr. Paul Hernandez"},
				{Username: "gonzsa2", Initials: "SG", Roles: []string{"1056"}, Name: "Dr. Gonzales, Salem"},
				{Username: "alitar3b", Initials: "TA", Roles: []string{"1056"}, Name: "Dr. Tarzan Ali"},
				{Username: "ignaro5w", Initials: "RI", Roles: []string{"1056"}, Name: "Dr. Roberta Ignatius"},
				{Username: "9999", Initials: "TELE", Roles: []string{"58"}, Name: "Dr. Tele Radiology"},
			},
			Layout: RadiologyLayout{
				WorkSheet:     "WORK SCHEDULE",
				WorkDayColumn: "A",
				WorkWeekBands: [][2]int{{5, 9}, {13, 17}, {21, 25}, {29, 33}, {37, 41}},

				OnCallSheet:          "Sheet1",
				OnCallNameColumn:     "A",
				OnCallFirstDayColumn: "D",
				OnCallSkipRows:       []int{23, 29},
				OnCallHeaderRowMax:   4,
				MonthAnchorCell:      "A1",
			},
			Teams: []RadiologyTeam{
				{
					Name: "Gen_CT", ID: "114",
					WorkColumns:    []string{"H", "I"},
					OnCallRowStart: 5, OnCallRowEnd: 21,
					WorkShifts: []ShiftWindow{
						{Start: 700, Minutes: 240},
						{Start: 1100, Minutes: 270},
					},
					OnCallWeekday: ShiftWindow{Start: 1530, Minutes: 930},
					OnCallWeekend: ShiftWindow{Start: 700, Minutes: 1440},
				},
				{
					Name: "IRA", ID: "115",
					WorkColumns:    []string{"M"},
					OnCallRowStart: 24, OnCallRowEnd: 27,
					WorkShifts:     []ShiftWindow{{Start: 700, Minutes: 510}},
					OnCallWeekday:  ShiftWindow{Start: 1530, Minutes: 930},
					OnCallWeekend:  ShiftWindow{Start: 700, Minutes: 1440},
				},
				{
					Name: "MRI", ID: "116",
					WorkColumns:    []string{"C"},
					OnCallRowStart: 30, OnCallRowEnd: 38,
					WorkShifts:     []ShiftWindow{{Start: 700, Minutes: 510}},
					OnCallWeekday:  ShiftWindow{Start: 1530, Minutes: 930},
					OnCallWeekend:  ShiftWindow{Start: 700, Minutes: 1440},
				},
				{
					Name: "US", ID: "126",
					WorkColumns:    []string{"E"},
					OnCallRowStart: 5, OnCallRowEnd: 21,
					WorkShifts:     []ShiftWindow{{Start: 700, Minutes: 510}},
					OnCallWeekday:  ShiftWindow{Start: 1530, Minutes: 930},
					OnCallWeekend:  ShiftWindow{Start: 700, Minutes: 1440},
				},
				{
					Name: "Fluoro", ID: "127",
					WorkColumns:    []string{"O"},
					OnCallRowStart: 5, OnCallRowEnd: 21,
					WorkShifts:     []ShiftWindow{{Start: 700, Minutes: 510}},
					OnCallWeekday:  ShiftWindow{Start: 1530, Minutes: 930},
					OnCallWeekend:  ShiftWindow{Start: 700, Minutes: 1440},
				},
			},
		},
		Cardiology: CardiologyTables{
			Employees: []Employee{
				{Username: "dosa0b", Initials: "AG", Roles: []string{"2001"}, Name: "Anita Gunda"},
				{Username: "ghas4g", Initials: "GS", Roles: []string{"84", "2001"}, Name: "Ghaitani S"},
				{Username: "rokas56", Initials: "RK", Roles: []string{"84"}, Name: "R Kasturi"},
				{Username: "abherq", Initials: "AE", Roles: []string{"84"}, Name: "Abe E M"},
				{Username: "villfh", Initials: "VL", Roles: []string{"84"}, Name: "Village Lomba"},
				{Username: "qulfi6e", Initials: "Q", Roles: []string{"3042457"}, Name: "Dr. Qureshi"},
				{Username: "sentri0", Initials: "S", Roles: []string{"3042457"}, Name: "Dr. Bahri"},
			},
			MarkerRoles: map[string][]string{
				"X":  {"84", "2001"}, // echo tech adult + ped
				"XA": {"84"},
				"XP": {"2001"},
			},
			MonthAnchorCell: "B4",
			YearHelperCell:  "D4",
			Cardiovascular: CardiologyBlock{
				Name: "Cardiovascular", ID: "8",
				RowStart: 12, RowEnd: 16,
				EmployeeColumn: "B",
				FirstDayColumn: "C", LastDayColumn: "AG",
				Weekday: ShiftWindow{Start: 700, Minutes: 1440},
				Weekend: ShiftWindow{Start: 700, Minutes: 1440},
			},
			Interventional: CardiologyBlock{
				Name: "Interventional Cardiologist", ID: "94",
				RowStart: 31, RowEnd: 31,
				FirstDayColumn: "D", LastDayColumn: "AH",
				Weekday: ShiftWindow{Start: 1600, Minutes: 900},
				Weekend: ShiftWindow{Start: 700, Minutes: 1440},
				Notes:   "On Call",
			},
		},
	}
}
