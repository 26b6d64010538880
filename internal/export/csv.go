// Package export turns job-role listings into downloadable CSV.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/maxviazov/job-portal/internal/model"
)

// Header is the fixed first line of every job-role export.
const Header = "Job Role ID,Role Name,Location,Capability,Band,Closing Date,Status"

// DefaultFilenamePrefix is used when GenerateFilename gets an empty prefix.
const DefaultFilenamePrefix = "job-roles"

// EscapeField renders a single scalar as a CSV-safe field.
// Numbers are written as-is. Strings containing a comma, double quote or newline are
// quoted with inner quotes doubled; everything else passes through untouched.
func EscapeField(v any) string {
	switch x := v.(type) {
	case string:
		return escapeString(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return escapeString(fmt.Sprint(x))
	}
}

func escapeString(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// JobRolesToCSV serializes records in input order under Header.
// Lines are separated by "\n" and the output carries no trailing newline.
func JobRolesToCSV(records []model.JobRoleRecord) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, Header)
	for _, r := range records {
		lines = append(lines, strings.Join([]string{
			EscapeField(r.ID),
			EscapeField(r.RoleName),
			EscapeField(r.Location),
			EscapeField(r.Capability),
			EscapeField(r.Band),
			EscapeField(r.ClosingDate),
			EscapeField(r.Status),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// GenerateFilename builds "{prefix}-{YYYY}-{MM}-{DD}-{HHMMSS}.csv" from at in its own location.
// Calls within the same second yield the same name.
func GenerateFilename(prefix string, at time.Time) string {
	if prefix == "" {
		prefix = DefaultFilenamePrefix
	}
	return prefix + "-" + at.Format("2006-01-02-150405") + ".csv"
}

// Filename is GenerateFilename for the current local time.
func Filename(prefix string) string {
	return GenerateFilename(prefix, time.Now().Local())
}
