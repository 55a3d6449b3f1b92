package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/santri/dto"
	"tahfidz_backend/internals/features/santri/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSvc() (*StudentService, *[]string) {
	var events []string
	store := gateway.NewMemoryStore[model.StudentModel]("students", "id").
		WithNotifier(func(table, ev string) { events = append(events, table+":"+ev) })
	return NewStudentService(store), &events
}

func TestImportCSV(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateStudentRequest{NIS: "001", Name: "Lama", ClassName: "7A"})
	require.NoError(t, err)

	csv := "\ufeffNIS,Name,Class_Name,Gender\n" +
		"001,Ahmad Fauzi,7B,l\n" +
		"002,  Zaid   bin Tsabit ,7A,L\n" +
		"\n" +
		"003,,7A,P\n" +
		"002,Duplikat,7A,L\n" +
		"004,Fatimah,7C,X\n"

	rep, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Processed)
	assert.Equal(t, 2, rep.Upserted)
	assert.Equal(t, 3, rep.Failed)

	lines := []int{}
	for _, e := range rep.Errors {
		lines = append(lines, e.Line)
	}
	assert.Equal(t, []int{5, 6, 7}, lines)
	assert.Contains(t, rep.Errors[1].Error, "baris 3")

	rows, total, err := svc.List(ctx, ListFilter{}, helper.Paging{Page: 1, PerPage: 10, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	byNIS := map[string]model.StudentModel{}
	for _, r := range rows {
		byNIS[r.NIS] = r
	}
	assert.Equal(t, "Ahmad Fauzi", byNIS["001"].Name)
	assert.Equal(t, "7B", byNIS["001"].ClassName)
	assert.Equal(t, "L", byNIS["001"].Gender)
	assert.Equal(t, "Zaid bin Tsabit", byNIS["002"].Name)
}

func TestImportCSV_MissingHeader(t *testing.T) {
	svc, _ := newSvc()
	_, err := svc.ImportCSV(context.Background(), strings.NewReader("nis,nama\n1,a\n"))
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestClassesDistinctSorted(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	for i, k := range []string{"8B", "7A", "8B", "7A", "9"} {
		_, err := svc.Create(ctx, dto.CreateStudentRequest{NIS: string(rune('a' + i)), Name: "S", ClassName: k})
		require.NoError(t, err)
	}
	classes, err := svc.Classes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"7A", "8B", "9"}, classes)
}

func TestCreateRejectsDuplicateNIS(t *testing.T) {
	svc, events := newSvc()
	ctx := context.Background()
	_, err := svc.Create(ctx, dto.CreateStudentRequest{NIS: "10", Name: "A", ClassName: "7A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateStudentRequest{NIS: "10", Name: "B", ClassName: "7A"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Equal(t, []string{"students:INSERT"}, *events)
}

func TestUpdateClearsUstadz(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	m, err := svc.Create(ctx, dto.CreateStudentRequest{NIS: "1", Name: "A", ClassName: "7A"})
	require.NoError(t, err)
	assert.True(t, m.IsActive)

	off := false
	kelas := " 8A "
	up, err := svc.Update(ctx, m.ID, dto.UpdateStudentRequest{IsActive: &off, ClassName: &kelas, ClearUstadz: true})
	require.NoError(t, err)
	assert.False(t, up.IsActive)
	assert.Equal(t, "8A", up.ClassName)
	assert.Nil(t, up.UstadzID)
}

func TestExportCSVAndTemplate(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	_, err := svc.Create(ctx, dto.CreateStudentRequest{NIS: "1", Name: "Ahmad", ClassName: "7A", Gender: "L"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf, ListFilter{}))
	assert.Equal(t, "nis,name,class_name,gender,is_active\n1,Ahmad,7A,L,true\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteTemplate(&buf))
	rep, err := svc.ImportCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Upserted)

	wb, err := svc.ExportXLSX(ctx, ListFilter{})
	require.NoError(t, err)
	v, err := wb.GetCellValue("Santri", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Ahmad", v)
}
