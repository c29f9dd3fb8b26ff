package model

// Role роль пользователя портала
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid сообщает, известна ли роль
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}
