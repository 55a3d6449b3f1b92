package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"tahfidz_backend/internals/databases/gateway"
	hafalanModel "tahfidz_backend/internals/features/hafalan/model"
	"tahfidz_backend/internals/features/progress/classifier"
	targetModel "tahfidz_backend/internals/features/progress/targets/model"
	"tahfidz_backend/internals/features/realtime"
	santriModel "tahfidz_backend/internals/features/santri/model"
	helper "tahfidz_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLoadTimeout = 5 * time.Second
	DefaultDebounce    = 750 * time.Millisecond
)

type State string

const (
	StateEmpty State = "empty" // belum pernah berhasil dihitung
	StateReady State = "ready"
	StateStale State = "stale" // hitung ulang terakhir gagal atau data dari cache
)

// Tabel yang perubahannya memicu hitung ulang.
var WatchedTables = []string{
	realtime.TableStudents,
	realtime.TableMemorization,
	realtime.TableTargetConfigs,
}

type Snapshot struct {
	Summary    []classifier.ClassProgressSummary `json:"summary"`
	ComputedAt *time.Time                        `json:"computed_at"`
	State      State                             `json:"state"`
}

type Overview struct {
	Classes    []string                          `json:"classes"`
	Targets    []targetModel.TargetConfiguration `json:"targets"`
	Summary    []classifier.ClassProgressSummary `json:"summary"`
	ComputedAt *time.Time                        `json:"computed_at"`
	State      State                             `json:"state"`
}

type ClassSource interface {
	Classes(ctx context.Context) ([]string, error)
}

type TargetSource interface {
	List(ctx context.Context) ([]targetModel.TargetConfiguration, error)
}

type Service struct {
	Students gateway.Store[santriModel.StudentModel]
	Records  gateway.Store[hafalanModel.MemorizationRecord]
	Classes  ClassSource
	Targets  TargetSource
	Hub      *realtime.Hub
	Cache    Cache

	Timeout  time.Duration
	Debounce time.Duration
	Now      func() time.Time

	// Setiap panggilan Recompute mengambil nomor antrian. Satu hitung ulang
	// melayani semua nomor yang diambil sebelum pemuatannya dimulai.
	runMu     sync.Mutex
	requested atomic.Uint64
	served    uint64
	servedSn  Snapshot
	servedErr error

	bg sync.WaitGroup

	mu   sync.RWMutex
	snap Snapshot
}

func NewService(
	students gateway.Store[santriModel.StudentModel],
	records gateway.Store[hafalanModel.MemorizationRecord],
	classes ClassSource,
	targets TargetSource,
	hub *realtime.Hub,
) *Service {
	return &Service{
		Students: students,
		Records:  records,
		Classes:  classes,
		Targets:  targets,
		Hub:      hub,
		Timeout:  DefaultLoadTimeout,
		Debounce: DefaultDebounce,
		Now:      time.Now,
		snap:     Snapshot{Summary: []classifier.ClassProgressSummary{}, State: StateEmpty},
	}
}

func (s *Service) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultLoadTimeout
	}
	return s.Timeout
}

func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Recompute memuat santri, setoran dan target secara paralel lalu menghitung
// ringkasan baru. Panggilan yang datang selama hitung ulang berjalan menunggu
// lalu dilayani oleh satu hitung ulang berikutnya, sehingga data yang ditulis
// sebelum panggilan selalu ikut terbaca. Jika gagal atau melewati batas waktu,
// ringkasan lama tetap disajikan.
func (s *Service) Recompute(ctx context.Context) (Snapshot, error) {
	return s.recomputeFor(ctx, s.requested.Add(1))
}

func (s *Service) recomputeFor(ctx context.Context, ticket uint64) (Snapshot, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.served >= ticket {
		if s.servedErr != nil {
			return s.Snapshot(), s.servedErr
		}
		return s.servedSn, nil
	}

	upTo := s.requested.Load()
	snap, err := s.recompute(ctx)
	s.served, s.servedSn, s.servedErr = upTo, snap, err
	if err != nil {
		return s.Snapshot(), err
	}
	return snap, nil
}

func (s *Service) recompute(parent context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(parent, s.timeout())
	defer cancel()

	var (
		students []santriModel.StudentModel
		records  []hafalanModel.MemorizationRecord
		targets  []targetModel.TargetConfiguration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = s.Students.Query(gctx, gateway.Query{
			Filters: []gateway.Filter{gateway.Eq("is_active", true)},
		})
		return err
	})
	g.Go(func() (err error) {
		records, err = s.Records.Query(gctx, gateway.Query{})
		return err
	})
	g.Go(func() (err error) {
		targets, err = s.Targets.List(gctx)
		return err
	})
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.markStale()
		return Snapshot{}, err
	}

	bands := make([]classifier.TargetBands, 0, len(targets))
	for _, t := range targets {
		bands = append(bands, t.Bands())
	}
	summary := classifier.Aggregate(toStudents(students), toRecords(records), bands)

	now := s.Now()
	snap := Snapshot{Summary: summary, ComputedAt: &now, State: StateReady}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.saveCache(snap)
	return snap, nil
}

func (s *Service) markStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State == StateReady {
		s.snap.State = StateStale
	}
}

func toStudents(rows []santriModel.StudentModel) []classifier.Student {
	out := make([]classifier.Student, 0, len(rows))
	for _, r := range rows {
		out = append(out, classifier.Student{ID: r.ID, Name: r.Name, Kelas: r.ClassName})
	}
	return out
}

func toRecords(rows []hafalanModel.MemorizationRecord) []classifier.Record {
	out := make([]classifier.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, classifier.Record{
			ID:          r.ID,
			StudentID:   r.StudentID,
			QuantityX10: r.AccumulatedQuantityX10,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}

// Refresh menjalankan Recompute di background. Kegagalan hanya dicatat di log.
func (s *Service) Refresh() {
	ticket := s.requested.Add(1)
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		start := time.Now()
		snap, err := s.recomputeFor(context.Background(), ticket)
		if err != nil {
			log.Printf("[PROGRESS] hitung ulang gagal: %v", err)
			return
		}
		log.Printf("[PROGRESS] ringkasan %d kelas dihitung dalam %s", len(snap.Summary), time.Since(start))
	}()
}

// Wait menunggu semua Refresh yang sedang berjalan.
func (s *Service) Wait() {
	s.bg.Wait()
}

// Start memuat cache, memicu hitung awal, lalu berlangganan perubahan tabel
// dengan debounce. stop melepas langganan; juga dipanggil saat ctx selesai.
func (s *Service) Start(ctx context.Context) (stop func()) {
	s.warmFromCache(ctx)

	d := s.Debounce
	if d <= 0 {
		d = DefaultDebounce
	}
	deb := realtime.NewDebouncer(d, s.Refresh)

	var unsubs []func()
	if s.Hub != nil {
		for _, table := range WatchedTables {
			unsubs = append(unsubs, s.Hub.Subscribe(table, func(realtime.Event) {
				deb.Trigger()
			}))
		}
	}
	s.Refresh()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			deb.Stop()
			for _, u := range unsubs {
				u()
			}
		})
	}
	go func() {
		<-ctx.Done()
		stop()
	}()
	return stop
}

// StartCron hitung ulang berkala sebagai jaring pengaman jika ada notifikasi yang terlewat.
func (s *Service) StartCron(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if _, err := s.Recompute(context.Background()); err != nil {
			log.Printf("[PROGRESS] cron hitung ulang gagal: %v", err)
		}
	})
}

func (s *Service) warmFromCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	raw, err := s.Cache.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("[PROGRESS] baca cache gagal: %v", err)
		}
		return
	}
	var snap Snapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		log.Printf("[PROGRESS] cache rusak: %v", err)
		return
	}
	snap.State = StateStale

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State == StateEmpty {
		s.snap = snap
	}
}

func (s *Service) saveCache(snap Snapshot) {
	if s.Cache == nil {
		return
	}
	raw, err := sonic.Marshal(snap)
	if err != nil {
		log.Printf("[PROGRESS] encode cache gagal: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Save(ctx, raw); err != nil {
		log.Printf("[PROGRESS] simpan cache gagal: %v", err)
	}
}

// Overview daftar kelas dan target dimuat paralel per request; ringkasan
// diambil dari hasil background terakhir.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	var (
		classes []string
		targets []targetModel.TargetConfiguration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		classes, err = s.Classes.Classes(gctx)
		return err
	})
	g.Go(func() (err error) {
		targets, err = s.Targets.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := s.Snapshot()
	return &Overview{
		Classes:    classes,
		Targets:    targets,
		Summary:    snap.Summary,
		ComputedAt: snap.ComputedAt,
		State:      snap.State,
	}, nil
}

func (s *Service) ClassSummary(kelas string) (*classifier.ClassProgressSummary, error) {
	kelas = helper.NormalizeText(kelas)
	for _, c := range s.Snapshot().Summary {
		if c.Kelas == kelas {
			return &c, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusNotFound, "Ringkasan kelas tidak ditemukan")
}
