package details

import (
	attendanceRoute "tahfidz_backend/internals/features/attendance/route"
	attendanceService "tahfidz_backend/internals/features/attendance/service"
	hafalanRoute "tahfidz_backend/internals/features/hafalan/route"
	hafalanService "tahfidz_backend/internals/features/hafalan/service"
	santriRoute "tahfidz_backend/internals/features/santri/route"
	santriService "tahfidz_backend/internals/features/santri/service"
	scheduleRoute "tahfidz_backend/internals/features/schedules/route"
	scheduleService "tahfidz_backend/internals/features/schedules/service"
	ustadzRoute "tahfidz_backend/internals/features/ustadz/route"
	ustadzService "tahfidz_backend/internals/features/ustadz/service"

	"github.com/gofiber/fiber/v2"
)

type AcademicServices struct {
	Students   *santriService.StudentService
	Teachers   *ustadzService.TeacherService
	Attendance *attendanceService.AttendanceService
	Hafalan    *hafalanService.MemorizationService
	Schedules  *scheduleService.ScheduleService
}

// Permission dicek per route di masing-masing fitur.
func AcademicRoutes(admin fiber.Router, s AcademicServices) {
	santriRoute.StudentRoutes(admin, s.Students)
	ustadzRoute.TeacherRoutes(admin, s.Teachers)
	attendanceRoute.AttendanceRoutes(admin, s.Attendance)
	hafalanRoute.MemorizationRoutes(admin, s.Hafalan)
	scheduleRoute.ScheduleRoutes(admin, s.Schedules)
}
