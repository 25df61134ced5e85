package constants

import "fmt"

// ==========================
// ✅ Role dasar platform
// ==========================
const (
	RoleStudent    = "student"
	RoleTeacher    = "teacher"
	RoleStaff      = "staff"
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
	RoleAccountant = "accountant"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin atau owner yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "❌ Hanya staf sekolah yang boleh mengakses fitur %s."
)

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleTeacher,
		RoleStaff,
		RoleAdmin,
		RoleOwner,
		RoleAccountant,
	}

	AdminRoles = []string{
		RoleAdmin,
		RoleOwner,
	}

	// Role yang absensinya dicatat dengan jam masuk/pulang (bukan hadir/absen saja)
	StaffRoles = []string{
		RoleTeacher,
		RoleStaff,
		RoleAdmin,
		RoleOwner,
		RoleAccountant,
	}
)

// IsStudentRole: murid hanya dicatat hadir/absen, tanpa jam masuk-pulang
func IsStudentRole(role string) bool {
	return role == RoleStudent
}
