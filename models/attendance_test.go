package models

import (
	"testing"
	"time"
)

func TestAttendanceIsOpen(t *testing.T) {
	now := time.Now()
	later := now.Add(8 * time.Hour)

	var nilAttendance *Attendance
	if nilAttendance.IsOpen() {
		t.Error("nil attendance tidak mungkin terbuka")
	}
	if (&Attendance{}).IsOpen() {
		t.Error("tanpa check-in tidak terbuka")
	}
	if !(&Attendance{CheckIn: &now}).IsOpen() {
		t.Error("check-in tanpa check-out harus terbuka")
	}
	if (&Attendance{CheckIn: &now, CheckOut: &later}).IsOpen() {
		t.Error("check-in dan check-out berarti tertutup")
	}
}

func TestLeaveRequestCoversDate(t *testing.T) {
	lr := &LeaveRequest{StartDate: "2026-03-01", EndDate: "2026-03-05"}

	cases := []struct {
		date string
		want bool
	}{
		{"2026-02-28", false},
		{"2026-03-01", true},
		{"2026-03-05", true},
		{"2026-03-06", false},
	}
	for _, tc := range cases {
		if got := lr.CoversDate(tc.date); got != tc.want {
			t.Errorf("CoversDate(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}
