// Package payroll implements ingestion of the state payroll workbooks
// (one .xlsx per fiscal year, an HR INFO roster sheet left-joined with an
// EARNINGS sheet on TEMPORARY_ID) into the payroll table.
package payroll

// Sheet and column patterns. Sheet names and the active-as-of column carry
// year-dependent decoration ("FY25 HR INFO", ACTIVE_ON_JUNE_30_2025), so
// they are resolved by substring at runtime.
const (
	HRSheetPattern       = "HR INFO"
	EarningsSheetPattern = "EARNINGS"
	ActiveColumnPattern  = "ACTIVE_ON_JUNE_30"

	identifierColumn = "TEMPORARY_ID"
)

type fieldKind uint8

const (
	kindText fieldKind = iota
	kindInteger
	kindDecimal
	kindDateSerial
	kindHireDateText
)

type hrColumn struct {
	src  string // HR INFO header
	dst  string // payroll table column
	kind fieldKind
}

// hrColumns maps every HR INFO source column to its schema column. The
// ACTIVE_ON_JUNE_30_<year> column is appended per workbook after pattern
// resolution.
var hrColumns = []hrColumn{
	{src: "TEMPORARY_ID", dst: "temporary_id", kind: kindText},
	{src: "RECORD_NBR", dst: "record_nbr", kind: kindInteger},
	{src: "EMPLOYEE_NAME", dst: "employee_name", kind: kindText},
	{src: "AGENCY_NBR", dst: "agency_nbr", kind: kindText},
	{src: "AGENCY_NAME", dst: "agency_name", kind: kindText},
	{src: "DEPARTMENT_NBR", dst: "department_nbr", kind: kindText},
	{src: "DEPARTMENT_NAME", dst: "department_name", kind: kindText},
	{src: "BRANCH_CODE", dst: "branch_code", kind: kindText},
	{src: "BRANCH_NAME", dst: "branch_name", kind: kindText},
	{src: "JOB_CODE", dst: "job_code", kind: kindText},
	{src: "JOB_TITLE", dst: "job_title", kind: kindText},
	{src: "LOCATION_NBR", dst: "location_nbr", kind: kindText},
	{src: "LOCATION_NAME", dst: "location_name", kind: kindText},
	{src: "LOCATION_COUNTY_NAME", dst: "location_county_name", kind: kindText},
	{src: "REG_TEMP_CODE", dst: "reg_temp_code", kind: kindText},
	{src: "REG_TEMP_DESC", dst: "reg_temp_desc", kind: kindText},
	{src: "CLASSIFIED_CODE", dst: "classified_code", kind: kindText},
	{src: "CLASSIFIED_DESC", dst: "classified_desc", kind: kindText},
	{src: "ORIGINAL_HIRE_DATE", dst: "original_hire_date", kind: kindDateSerial},
	{src: "LAST_HIRE_DATE", dst: "last_hire_date", kind: kindHireDateText},
	{src: "JOB_ENTRY_DATE", dst: "job_entry_date", kind: kindDateSerial},
	{src: "FULL_PART_TIME_CODE", dst: "full_part_time_code", kind: kindText},
	{src: "FULL_PART_TIME_DESC", dst: "full_part_time_desc", kind: kindText},
	{src: "SALARY_PLAN_GRID", dst: "salary_plan_grid", kind: kindText},
	{src: "SALARY_GRADE_RANGE", dst: "salary_grade_range", kind: kindInteger},
	{src: "MAX_SALARY_STEP", dst: "max_salary_step", kind: kindInteger},
	{src: "COMPENSATION_RATE", dst: "compensation_rate", kind: kindDecimal},
	{src: "COMP_FREQUENCY_CODE", dst: "comp_frequency_code", kind: kindText},
	{src: "COMP_FREQUENCY_DESC", dst: "comp_frequency_desc", kind: kindText},
	{src: "POSITION_FTE", dst: "position_fte", kind: kindDecimal},
	{src: "BARGAINING_UNIT_NBR", dst: "bargaining_unit_nbr", kind: kindInteger},
	{src: "BARGAINING_UNIT_NAME", dst: "bargaining_unit_name", kind: kindText},
}

// WageFields are supplied by the EARNINGS sheet and default to zero when an
// identifier has no earnings row.
var WageFields = []string{"regular_wages", "overtime_wages", "other_wages", "total_wages"}

var earningsColumns = map[string]string{
	"REGULAR_WAGES":  "regular_wages",
	"OVERTIME_WAGES": "overtime_wages",
	"OTHER_WAGES":    "other_wages",
	"TOTAL_WAGES":    "total_wages",
}

// Columns is the payroll table column list in insert order (no id or
// timestamps; those are store-side defaults).
var Columns = []string{
	"temporary_id", "record_nbr", "employee_name", "agency_nbr", "agency_name",
	"department_nbr", "department_name", "branch_code", "branch_name",
	"job_code", "job_title", "location_nbr", "location_name", "location_county_name",
	"reg_temp_code", "reg_temp_desc", "classified_code", "classified_desc",
	"original_hire_date", "last_hire_date", "job_entry_date",
	"full_part_time_code", "full_part_time_desc", "active_on_june_30",
	"salary_plan_grid", "salary_grade_range", "max_salary_step",
	"compensation_rate", "comp_frequency_code", "comp_frequency_desc",
	"position_fte", "bargaining_unit_nbr", "bargaining_unit_name",
	"regular_wages", "overtime_wages", "other_wages", "total_wages",
	"fiscal_year",
}

// NaturalKey is the upsert conflict target: unique per fiscal year, with
// the same person recurring across years.
var NaturalKey = []string{"temporary_id", "record_nbr", "fiscal_year"}

// TableName qualifies the payroll table with the configured schema.
func TableName(schema string) string {
	if schema == "" {
		return "payroll"
	}
	return schema + ".payroll"
}
