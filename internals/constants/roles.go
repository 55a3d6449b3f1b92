package constants

import "fmt"

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleKoordinator Role = "koordinator"
	RoleUstadz      Role = "ustadz"
	RoleSantri      Role = "santri"
)

var AllRoles = []Role{RoleAdmin, RoleKoordinator, RoleUstadz, RoleSantri}

func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

type Permission string

const (
	PermDashboardView    Permission = "dashboard.view"
	PermUsersManage      Permission = "users.manage"
	PermSantriView       Permission = "santri.view"
	PermSantriManage     Permission = "santri.manage"
	PermUstadzManage     Permission = "ustadz.manage"
	PermAttendanceView   Permission = "attendance.view"
	PermAttendanceManage Permission = "attendance.manage"
	PermHafalanView      Permission = "hafalan.view"
	PermHafalanManage    Permission = "hafalan.manage"
	PermScheduleView     Permission = "schedule.view"
	PermScheduleManage   Permission = "schedule.manage"
	PermTargetView       Permission = "target.view"
	PermTargetManage     Permission = "target.manage"
	PermProgressView     Permission = "progress.view"
	PermReportExport     Permission = "report.export"
)

var AllPermissions = []Permission{
	PermDashboardView,
	PermUsersManage,
	PermSantriView,
	PermSantriManage,
	PermUstadzManage,
	PermAttendanceView,
	PermAttendanceManage,
	PermHafalanView,
	PermHafalanManage,
	PermScheduleView,
	PermScheduleManage,
	PermTargetView,
	PermTargetManage,
	PermProgressView,
	PermReportExport,
}

// Allowed: role baru wajib ditambahkan di switch ini, role tak dikenal selalu ditolak.
func Allowed(role Role, perm Permission) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleKoordinator:
		switch perm {
		case PermUsersManage:
			return false
		default:
			return true
		}
	case RoleUstadz:
		switch perm {
		case PermDashboardView,
			PermSantriView,
			PermAttendanceView,
			PermHafalanView,
			PermHafalanManage,
			PermScheduleView,
			PermTargetView,
			PermProgressView:
			return true
		default:
			return false
		}
	case RoleSantri:
		switch perm {
		case PermDashboardView, PermScheduleView, PermProgressView:
			return true
		default:
			return false
		}
	default:
		return false
	}
}

func PermissionsOf(role Role) []Permission {
	out := make([]Permission, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		if Allowed(role, p) {
			out = append(out, p)
		}
	}
	return out
}

// Template pesan error role
const ErrPermissionDenied = "❌ Role %s tidak punya akses %s."

func PermissionError(role Role, perm Permission) string {
	return fmt.Sprintf(ErrPermissionDenied, role, perm)
}
