package routes

import (
	"time"

	"tahfidz_backend/internals/configs"
	"tahfidz_backend/internals/databases/gateway"
	attendanceModel "tahfidz_backend/internals/features/attendance/model"
	attendanceService "tahfidz_backend/internals/features/attendance/service"
	hafalanModel "tahfidz_backend/internals/features/hafalan/model"
	hafalanService "tahfidz_backend/internals/features/hafalan/service"
	reportService "tahfidz_backend/internals/features/progress/report/service"
	summaryService "tahfidz_backend/internals/features/progress/summary/service"
	targetModel "tahfidz_backend/internals/features/progress/targets/model"
	targetService "tahfidz_backend/internals/features/progress/targets/service"
	"tahfidz_backend/internals/features/realtime"
	santriModel "tahfidz_backend/internals/features/santri/model"
	santriService "tahfidz_backend/internals/features/santri/service"
	scheduleModel "tahfidz_backend/internals/features/schedules/model"
	scheduleService "tahfidz_backend/internals/features/schedules/service"
	authModel "tahfidz_backend/internals/features/users/auth/model"
	authService "tahfidz_backend/internals/features/users/auth/service"
	userModel "tahfidz_backend/internals/features/users/user/model"
	userService "tahfidz_backend/internals/features/users/user/service"
	ustadzModel "tahfidz_backend/internals/features/ustadz/model"
	ustadzService "tahfidz_backend/internals/features/ustadz/service"

	"gorm.io/gorm"
)

type Services struct {
	Hub        *realtime.Hub
	Users      *userService.UserService
	Auth       *authService.AuthService
	Students   *santriService.StudentService
	Teachers   *ustadzService.TeacherService
	Attendance *attendanceService.AttendanceService
	Hafalan    *hafalanService.MemorizationService
	Schedules  *scheduleService.ScheduleService
	Targets    *targetService.TargetService
	Progress   *summaryService.Service
	Reports    *reportService.ReportService
}

// BuildServices merakit repository Postgres + service. Jika pgListen aktif,
// event datang dari trigger NOTIFY sehingga notifier in-process dimatikan.
func BuildServices(db *gorm.DB, hub *realtime.Hub, pgListen bool) *Services {
	var notify gateway.Notifier
	if !pgListen {
		notify = hub.Notify
	}

	users := gateway.New[userModel.UserModel](db, userModel.UserModel{}.TableName(), "id", userModel.Columns...).WithNotifier(notify)
	blacklist := gateway.New[authModel.TokenBlacklist](db, authModel.TokenBlacklist{}.TableName(), "id", authModel.Columns...)
	students := gateway.New[santriModel.StudentModel](db, santriModel.StudentModel{}.TableName(), "id", santriModel.Columns...).WithNotifier(notify)
	teachers := gateway.New[ustadzModel.TeacherModel](db, ustadzModel.TeacherModel{}.TableName(), "id", ustadzModel.Columns...).WithNotifier(notify)
	attendances := gateway.New[attendanceModel.TeacherAttendanceModel](db, attendanceModel.TeacherAttendanceModel{}.TableName(), "id", attendanceModel.Columns...).WithNotifier(notify)
	records := gateway.New[hafalanModel.MemorizationRecord](db, hafalanModel.MemorizationRecord{}.TableName(), "id", hafalanModel.Columns...).WithNotifier(notify)
	schedules := gateway.New[scheduleModel.ClassSchedule](db, scheduleModel.ClassSchedule{}.TableName(), "id", scheduleModel.Columns...).WithNotifier(notify)
	targets := gateway.New[targetModel.TargetConfiguration](db, targetModel.TargetConfiguration{}.TableName(), "id", targetModel.Columns...).WithNotifier(notify)

	s := &Services{Hub: hub}
	s.Users = userService.NewUserService(users)
	s.Auth = authService.NewAuthService(s.Users, blacklist, configs.JWTSecret, configs.JWTTTL)
	s.Students = santriService.NewStudentService(students)
	s.Teachers = ustadzService.NewTeacherService(teachers)
	s.Attendance = attendanceService.NewAttendanceService(attendances, s.Teachers)
	s.Hafalan = hafalanService.NewMemorizationService(records, students)
	s.Schedules = scheduleService.NewScheduleService(schedules, s.Teachers)
	s.Targets = targetService.NewTargetService(targets)

	s.Progress = summaryService.NewService(students, records, s.Students, s.Targets, hub)
	s.Progress.Timeout = configs.GetEnvDuration("PROGRESS_LOAD_TIMEOUT", summaryService.DefaultLoadTimeout)
	s.Progress.Debounce = configs.GetEnvDuration("PROGRESS_DEBOUNCE", summaryService.DefaultDebounce)
	s.Reports = reportService.NewReportService(s.Progress)
	return s
}

// WithCache memasang cache ringkasan (Redis) jika tersedia.
func (s *Services) WithCache(c summaryService.Cache) *Services {
	s.Progress.Cache = c
	return s
}

// BlacklistTTL lama token logout disimpan sebelum dibersihkan cron.
func BlacklistTTL() time.Duration {
	return time.Duration(configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)) * 24 * time.Hour
}
