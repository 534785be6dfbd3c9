package service

import "errors"

// Error sentinel supaya handler bisa memetakan kegagalan ke kode HTTP
// lewat errors.Is tanpa membandingkan string pesan.
var (
	ErrUserNotFound        = errors.New("user tidak ditemukan")
	ErrLeaveNotFound       = errors.New("pengajuan cuti tidak ditemukan")
	ErrAlreadyCheckedIn    = errors.New("Anda sudah melakukan check-in hari ini")
	ErrNoCheckInFound      = errors.New("belum ada check-in untuk hari ini")
	ErrAlreadyCheckedOut   = errors.New("Anda sudah melakukan check-out hari ini")
	ErrLeaveAlreadyDecided = errors.New("pengajuan sudah diputuskan sebelumnya")
)
