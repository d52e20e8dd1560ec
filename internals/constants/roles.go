package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)

// AllRoles can read timetables and the directory.
var AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent, RoleParent}

const ErrOnlyAdminsCanAccess = "only admin can access %s"

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}
