// Package authz memusatkan pengecekan hak akses supaya tidak ada
// perbandingan string role yang tersebar di tiap endpoint.
package authz

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
)

func IsAdmin(role string) bool {
	return role == models.RoleAdmin
}

// CanAccessUser mengizinkan admin mengakses siapa pun dan karyawan hanya
// mengakses datanya sendiri.
func CanAccessUser(actorRole string, actorID, targetID primitive.ObjectID) bool {
	if IsAdmin(actorRole) {
		return true
	}
	return actorID == targetID
}

// CanDecideLeave hanya admin yang boleh menyetujui/menolak pengajuan.
func CanDecideLeave(actorRole string) bool {
	return IsAdmin(actorRole)
}

// CanManagePayroll hanya admin yang boleh membuat dan membayar payroll.
func CanManagePayroll(actorRole string) bool {
	return IsAdmin(actorRole)
}
