package auth

import (
	"fmt"
	"sort"

	"github.com/sharecrm/share/internal/pkg/apperrors"
)

// Permission codes held by staff roles
const (
	PermCustomersRead       = "customers.read"
	PermCustomersWrite      = "customers.write"
	PermCustomersCredit     = "customers.credit"
	PermPAQRead             = "paq.read"
	PermPAQReview           = "paq.review"
	PermVenuesManage        = "venues.manage"
	PermInstructorsManage   = "instructors.manage"
	PermTermsManage         = "terms.manage"
	PermClassesManage       = "classes.manage"
	PermSessionsManage      = "sessions.manage"
	PermEnrollmentsRead     = "enrollments.read"
	PermEnrollmentsWrite    = "enrollments.write"
	PermPaymentsRead        = "payments.read"
	PermPaymentsWrite       = "payments.write"
	PermCancellationsReview = "cancellations.review"
	PermAttendanceRead      = "attendance.read"
	PermReportsExport       = "reports.export"
	PermRolesManage         = "roles.manage"
	PermUsersManage         = "users.manage"
	PermEnquiriesManage     = "enquiries.manage"
)

var catalogue = map[string]string{
	PermCustomersRead:       "View customers and their credit",
	PermCustomersWrite:      "Create, edit, block and delete customers",
	PermCustomersCredit:     "Adjust customer credit",
	PermPAQRead:             "View questionnaires and medical certificates",
	PermPAQReview:           "Approve or reject questionnaires",
	PermVenuesManage:        "Manage venues",
	PermInstructorsManage:   "Manage instructors",
	PermTermsManage:         "Manage terms",
	PermClassesManage:       "Manage classes",
	PermSessionsManage:      "Generate, edit and cancel sessions",
	PermEnrollmentsRead:     "View enrollments",
	PermEnrollmentsWrite:    "Enroll customers and cancel enrollments",
	PermPaymentsRead:        "View payments",
	PermPaymentsWrite:       "Record counter payments",
	PermCancellationsReview: "Approve or reject cancellation requests",
	PermAttendanceRead:      "View session attendance",
	PermReportsExport:       "Export reports",
	PermRolesManage:         "Manage roles",
	PermUsersManage:         "Create staff and instructor logins",
	PermEnquiriesManage:     "View and resolve enquiries",
}

// Permission is one catalogue entry
type Permission struct {
	Code        string `json:"code" example:"customers.read"`
	Description string `json:"description" example:"View customers and their credit"`
}

// AllPermissions returns the catalogue sorted by code
func AllPermissions() []Permission {
	out := make([]Permission, 0, len(catalogue))
	for code, desc := range catalogue {
		out = append(out, Permission{Code: code, Description: desc})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// AllPermissionCodes returns every code, sorted
func AllPermissionCodes() []string {
	perms := AllPermissions()
	codes := make([]string, len(perms))
	for i, p := range perms {
		codes[i] = p.Code
	}
	return codes
}

// IsKnownPermission reports whether code is in the catalogue
func IsKnownPermission(code string) bool {
	_, ok := catalogue[code]
	return ok
}

// NormalizePermissions rejects unknown codes and removes duplicates
func NormalizePermissions(codes []string) ([]string, error) {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if !IsKnownPermission(c) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownPermission, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// HasPermission is a plain membership test over a fetched permission list
func HasPermission(perms []string, code string) bool {
	for _, p := range perms {
		if p == code {
			return true
		}
	}
	return false
}
