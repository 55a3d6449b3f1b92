package database

import (
	"fmt"
	"log"

	attendanceModel "tahfidz_backend/internals/features/attendance/model"
	hafalanModel "tahfidz_backend/internals/features/hafalan/model"
	targetModel "tahfidz_backend/internals/features/progress/targets/model"
	santriModel "tahfidz_backend/internals/features/santri/model"
	scheduleModel "tahfidz_backend/internals/features/schedules/model"
	authModel "tahfidz_backend/internals/features/users/auth/model"
	userModel "tahfidz_backend/internals/features/users/user/model"
	ustadzModel "tahfidz_backend/internals/features/ustadz/model"

	"gorm.io/gorm"
)

type tabler interface {
	TableName() string
}

// Urutan mengikuti ketergantungan FK.
var models = []tabler{
	&userModel.UserModel{},
	&authModel.TokenBlacklist{},
	&ustadzModel.TeacherModel{},
	&santriModel.StudentModel{},
	&attendanceModel.TeacherAttendanceModel{},
	&hafalanModel.MemorizationRecord{},
	&scheduleModel.ClassSchedule{},
	&targetModel.TargetConfiguration{},
}

// Tabel yang perubahannya disiarkan lewat NOTIFY table_changes.
func NotifiedTables() []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		if t := m.TableName(); t != "token_blacklist" {
			out = append(out, t)
		}
	}
	return out
}

const notifyFunctionSQL = `
CREATE OR REPLACE FUNCTION notify_table_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('table_changes', json_build_object('table', TG_TABLE_NAME, 'op', TG_OP)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

func triggerSQL(table string) []string {
	name := fmt.Sprintf("trg_%s_notify", table)
	return []string{
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, name, table),
		fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s FOR EACH STATEMENT EXECUTE FUNCTION notify_table_change()`, name, table),
	}
}

// Migrate membuat/menyesuaikan tabel lalu memasang trigger NOTIFY.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] pgcrypto: %v", err)
	}

	dst := make([]any, len(models))
	for i, m := range models {
		dst[i] = m
	}
	if err := db.AutoMigrate(dst...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(notifyFunctionSQL).Error; err != nil {
			return fmt.Errorf("fungsi notify: %w", err)
		}
		for _, t := range NotifiedTables() {
			for _, stmt := range triggerSQL(t) {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("trigger %s: %w", t, err)
				}
			}
		}
		log.Printf("[INFO] Migrasi selesai (%d tabel)", len(models))
		return nil
	})
}
