package database

import (
	"testing"

	"tahfidz_backend/internals/features/realtime"

	"github.com/stretchr/testify/assert"
)

func TestNotifiedTablesMatchRealtime(t *testing.T) {
	tables := NotifiedTables()
	assert.NotContains(t, tables, "token_blacklist")
	for _, want := range []string{
		realtime.TableUsers,
		realtime.TableStudents,
		realtime.TableTeachers,
		realtime.TableAttendances,
		realtime.TableMemorization,
		realtime.TableSchedules,
		realtime.TableTargetConfigs,
	} {
		assert.Contains(t, tables, want)
	}
}

func TestTriggerSQL(t *testing.T) {
	stmts := triggerSQL("students")
	assert.Len(t, stmts, 2)
	assert.Equal(t, "DROP TRIGGER IF EXISTS trg_students_notify ON students", stmts[0])
	assert.Contains(t, stmts[1], "AFTER INSERT OR UPDATE OR DELETE ON students")
	assert.Contains(t, stmts[1], "EXECUTE FUNCTION notify_table_change()")
}
