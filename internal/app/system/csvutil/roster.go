// internal/app/system/csvutil/roster.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dalemusser/ekskulhub/internal/domain/models"
)

// ErrTooManyRows is returned when a file exceeds MaxRows data rows.
var ErrTooManyRows = fmt.Errorf("csvutil: more than %d rows", MaxRows)

// Roster columns. A file without a header row is read in this order:
//
//	name,studentId,className,status,joinDate,phone
const (
	ColName = iota
	ColStudentID
	ColClassName
	ColStatus
	ColJoinDate
	ColPhone
	numCols
)

// headerNames maps a normalized header cell to its column. Indonesian
// headings are accepted alongside the English ones.
var headerNames = map[string]int{
	"name":              ColName,
	"nama":              ColName,
	"nama lengkap":      ColName,
	"studentid":         ColStudentID,
	"student_id":        ColStudentID,
	"nis":               ColStudentID,
	"classname":         ColClassName,
	"class_name":        ColClassName,
	"kelas":             ColClassName,
	"status":            ColStatus,
	"joindate":          ColJoinDate,
	"join_date":         ColJoinDate,
	"tanggal bergabung": ColJoinDate,
	"phone":             ColPhone,
	"telepon":           ColPhone,
	"no hp":             ColPhone,
}

// RosterRow is one member line of a club roster file. Only Name is
// required. Status is "active", "inactive" or empty; JoinDate is YYYY-MM-DD.
type RosterRow struct {
	Line      int
	Name      string
	StudentID string
	ClassName string
	Status    string
	JoinDate  time.Time
	Phone     string
}

// RowError explains why one line was rejected.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) String() string {
	return fmt.Sprintf("baris %d: %s", e.Line, e.Reason)
}

// RosterResult holds every valid row and every rejected line.
type RosterResult struct {
	Rows   []RosterRow
	Errors []RowError
}

func (r RosterResult) HasErrors() bool { return len(r.Errors) > 0 }

func normHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

// headerLayout returns the position of each column when rec is a header row,
// that is, when one of its cells names the name column. Columns the header
// doesn't mention are -1.
func headerLayout(rec []string) ([]int, bool) {
	layout := make([]int, numCols)
	for i := range layout {
		layout[i] = -1
	}
	for pos, h := range rec {
		col, ok := headerNames[normHeader(h)]
		if ok && layout[col] == -1 {
			layout[col] = pos
		}
	}
	return layout, layout[ColName] != -1
}

func defaultLayout() []int {
	layout := make([]int, numCols)
	for i := range layout {
		layout[i] = i
	}
	return layout
}

func cell(rec []string, i int) string {
	if i >= 0 && i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ParseRoster reads a roster CSV. Columns are matched by header name when
// the first row is a header; otherwise the default column order applies.
// Blank lines are ignored. It never writes anywhere, so callers can reject
// the whole file before touching the database.
func ParseRoster(r io.Reader) (RosterResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	res := RosterResult{Rows: []RosterRow{}}
	layout := defaultLayout()
	first := true
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Errors = append(res.Errors, RowError{Line: pe.Line, Reason: "format CSV rusak"})
				first = false
				continue
			}
			return RosterResult{}, err
		}
		line, _ := reader.FieldPos(0)
		if first {
			first = false
			if hl, ok := headerLayout(rec); ok {
				layout = hl
				continue
			}
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
		}
		if blank(rec) {
			continue
		}
		if len(res.Rows)+len(res.Errors) >= MaxRows {
			return RosterResult{}, ErrTooManyRows
		}

		row, reason := parseRow(rec, layout)
		if reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: reason})
			continue
		}
		row.Line = line
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func parseRow(rec []string, layout []int) (RosterRow, string) {
	row := RosterRow{
		Name:      cell(rec, layout[ColName]),
		StudentID: cell(rec, layout[ColStudentID]),
		ClassName: cell(rec, layout[ColClassName]),
		Status:    strings.ToLower(cell(rec, layout[ColStatus])),
		Phone:     cell(rec, layout[ColPhone]),
	}
	if row.Name == "" {
		return row, "nama wajib diisi"
	}
	if row.Status != "" && !models.IsMemberStatus(row.Status) {
		return row, "status harus active atau inactive"
	}
	if d := cell(rec, layout[ColJoinDate]); d != "" {
		t, err := time.ParseInLocation("2006-01-02", d, time.UTC)
		if err != nil {
			return row, "tanggal bergabung harus YYYY-MM-DD"
		}
		row.JoinDate = t
	}
	return row, ""
}
