package service

import (
	"context"
	"errors"

	"tahfidz_backend/internals/databases/gateway"
	"tahfidz_backend/internals/features/hafalan/dto"
	"tahfidz_backend/internals/features/hafalan/model"
	"tahfidz_backend/internals/features/progress/classifier"
	santriModel "tahfidz_backend/internals/features/santri/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemorizationService struct {
	Records  gateway.Store[model.MemorizationRecord]
	Students gateway.Store[santriModel.StudentModel]
}

func NewMemorizationService(records gateway.Store[model.MemorizationRecord], students gateway.Store[santriModel.StudentModel]) *MemorizationService {
	return &MemorizationService{Records: records, Students: students}
}

type ListFilter struct {
	StudentID *uuid.UUID
	ClassName string
}

func (s *MemorizationService) student(ctx context.Context, id uuid.UUID) (*santriModel.StudentModel, error) {
	st, err := s.Students.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Santri tidak ditemukan")
	}
	return st, err
}

func directory(rows []santriModel.StudentModel) map[uuid.UUID]dto.StudentInfo {
	out := make(map[uuid.UUID]dto.StudentInfo, len(rows))
	for _, r := range rows {
		out[r.ID] = dto.StudentInfo{Name: r.Name, ClassName: r.ClassName}
	}
	return out
}

func (s *MemorizationService) List(ctx context.Context, f ListFilter, p helper.Paging) ([]dto.MemorizationResponse, int64, error) {
	var sq gateway.Query
	if k := helper.NormalizeText(f.ClassName); k != "" {
		sq.Filters = append(sq.Filters, gateway.Eq("class_name", k))
	}
	students, err := s.Students.Query(ctx, sq)
	if err != nil {
		return nil, 0, err
	}
	who := directory(students)

	q := gateway.Query{}
	if f.StudentID != nil {
		q.Filters = append(q.Filters, gateway.Eq("student_id", *f.StudentID))
	}
	if len(sq.Filters) > 0 {
		if len(students) == 0 {
			return []dto.MemorizationResponse{}, 0, nil
		}
		ids := make([]uuid.UUID, 0, len(students))
		for _, st := range students {
			ids = append(ids, st.ID)
		}
		q.Filters = append(q.Filters, gateway.Filter{Column: "student_id", Op: gateway.OpIn, Value: ids})
	}

	total, err := s.Records.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	q.Order = []gateway.Order{{Column: "created_at", Desc: true}, {Column: "id", Desc: true}}
	q.Limit, q.Offset = p.Limit, p.Offset
	rows, err := s.Records.Query(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.MemorizationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.FromModel(r, who))
	}
	return out, total, nil
}

type History struct {
	StudentID      uuid.UUID                  `json:"student_id"`
	StudentName    string                     `json:"student_name"`
	ClassName      string                     `json:"class_name"`
	CurrentHafalan float64                    `json:"current_hafalan"`
	Records        []dto.MemorizationResponse `json:"records"`
}

// History riwayat setoran satu santri, urut waktu naik.
func (s *MemorizationService) History(ctx context.Context, studentID uuid.UUID) (*History, error) {
	st, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}
	rows, err := s.Records.Query(ctx, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("student_id", studentID)},
		Order:   []gateway.Order{{Column: "created_at"}, {Column: "id"}},
	})
	if err != nil {
		return nil, err
	}

	who := directory([]santriModel.StudentModel{*st})
	h := &History{
		StudentID:   st.ID,
		StudentName: st.Name,
		ClassName:   st.ClassName,
		Records:     make([]dto.MemorizationResponse, 0, len(rows)),
	}
	recs := make([]classifier.Record, 0, len(rows))
	for _, r := range rows {
		h.Records = append(h.Records, dto.FromModel(r, who))
		recs = append(recs, classifier.Record{ID: r.ID, StudentID: r.StudentID, QuantityX10: r.AccumulatedQuantityX10, CreatedAt: r.CreatedAt})
	}
	if latest, ok := classifier.LatestByStudent(recs)[st.ID]; ok {
		h.CurrentHafalan = classifier.DecodeJuz(latest.QuantityX10)
	}
	return h, nil
}

func (s *MemorizationService) Create(ctx context.Context, actor uuid.UUID, req dto.CreateMemorizationRequest) (*dto.MemorizationResponse, error) {
	req.Normalize()
	// dicek setelah dibulatkan ke satu desimal; 0.04 tersimpan sebagai 0
	encoded := classifier.EncodeJuz(req.Juz)
	if encoded <= 0 || req.Juz > classifier.MaxTargetJuz {
		return nil, fiber.NewError(fiber.StatusBadRequest, "juz minimal 0.1 dan maksimal 30")
	}
	st, err := s.student(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	m := model.MemorizationRecord{
		StudentID:              st.ID,
		AccumulatedQuantityX10: encoded,
		Quality:                model.Quality(req.Quality),
		Notes:                  req.Notes,
	}
	if actor != uuid.Nil {
		m.RecordedBy = &actor
	}
	if err := s.Records.Insert(ctx, &m); err != nil {
		return nil, err
	}
	resp := dto.FromModel(m, directory([]santriModel.StudentModel{*st}))
	return &resp, nil
}

func (s *MemorizationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Records.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Data hafalan tidak ditemukan")
	}
	return err
}
