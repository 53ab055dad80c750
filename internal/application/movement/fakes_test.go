package movement

import (
	"context"
	"sync"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	rule "github.com/jhoicas/Intendencia-api/internal/domain/ledger"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

// memStore implementa en memoria los puertos que usa el registrador.
// Run no tiene rollback real: las escrituras de fn quedan en un buffer que se aplica solo si fn retorna nil.
type memStore struct {
	mu           sync.Mutex
	bases        map[int64]bool
	equipment    map[int64]bool
	opening      []*entity.OpeningStock
	purchases    []*entity.Purchase
	transfers    []*entity.Transfer
	assignments  []*entity.Assignment
	expenditures []*entity.Expenditure
	locks        int
}

func newMemStore() *memStore {
	return &memStore{
		bases:     map[int64]bool{1: true, 2: true, 3: true},
		equipment: map[int64]bool{1: true, 2: true},
	}
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.opening) + len(s.purchases) + len(s.transfers) + len(s.assignments) + len(s.expenditures)
}

// Run serializa las transacciones con el mutex, igual que el store SQLite de una conexión.
func (s *memStore) Run(ctx context.Context, fn func(repository.MovementRepository, repository.LedgerRepository, StockLocker) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memTx{s: s}
	if err := fn(tx, tx, tx); err != nil {
		return err
	}
	for _, apply := range tx.pending {
		apply()
	}
	return nil
}

type memBaseRepo struct{ s *memStore }

func (r memBaseRepo) Create(context.Context, *entity.Base) error { return nil }
func (r memBaseRepo) GetByID(_ context.Context, id int64) (*entity.Base, error) {
	if !r.s.bases[id] {
		return nil, nil
	}
	return &entity.Base{ID: id}, nil
}
func (r memBaseRepo) List(context.Context) ([]*entity.Base, error) { return nil, nil }

type memEquipmentRepo struct{ s *memStore }

func (r memEquipmentRepo) Create(context.Context, *entity.EquipmentType) error { return nil }
func (r memEquipmentRepo) GetByID(_ context.Context, id int64) (*entity.EquipmentType, error) {
	if !r.s.equipment[id] {
		return nil, nil
	}
	return &entity.EquipmentType{ID: id}, nil
}
func (r memEquipmentRepo) List(context.Context) ([]*entity.EquipmentType, error) { return nil, nil }

// memTx ve el estado confirmado del store; el mutex ya está tomado por Run.
type memTx struct {
	s       *memStore
	pending []func()
}

func (t *memTx) LockStock(context.Context, int64, int64) error {
	t.s.locks++
	return nil
}

func (t *memTx) CreateOpeningStock(_ context.Context, rec *entity.OpeningStock) error {
	rec.ID = int64(len(t.s.opening) + 1)
	t.pending = append(t.pending, func() { t.s.opening = append(t.s.opening, rec) })
	return nil
}

func (t *memTx) CreatePurchase(_ context.Context, rec *entity.Purchase) error {
	rec.ID = int64(len(t.s.purchases) + 1)
	t.pending = append(t.pending, func() { t.s.purchases = append(t.s.purchases, rec) })
	return nil
}

func (t *memTx) CreateTransfer(_ context.Context, rec *entity.Transfer) error {
	rec.ID = int64(len(t.s.transfers) + 1)
	t.pending = append(t.pending, func() { t.s.transfers = append(t.s.transfers, rec) })
	return nil
}

func (t *memTx) CreateAssignment(_ context.Context, rec *entity.Assignment) error {
	rec.ID = int64(len(t.s.assignments) + 1)
	t.pending = append(t.pending, func() { t.s.assignments = append(t.s.assignments, rec) })
	return nil
}

func (t *memTx) CreateExpenditure(_ context.Context, rec *entity.Expenditure) error {
	rec.ID = int64(len(t.s.expenditures) + 1)
	t.pending = append(t.pending, func() { t.s.expenditures = append(t.s.expenditures, rec) })
	return nil
}

func (t *memTx) ListOpeningStock(context.Context, repository.MovementFilter) ([]*entity.OpeningStock, error) {
	return t.s.opening, nil
}
func (t *memTx) ListPurchases(context.Context, repository.MovementFilter) ([]*entity.Purchase, error) {
	return t.s.purchases, nil
}
func (t *memTx) ListTransfers(context.Context, repository.MovementFilter) ([]*entity.Transfer, error) {
	return t.s.transfers, nil
}
func (t *memTx) ListAssignments(context.Context, repository.MovementFilter) ([]*entity.Assignment, error) {
	return t.s.assignments, nil
}
func (t *memTx) ListExpenditures(context.Context, repository.MovementFilter) ([]*entity.Expenditure, error) {
	return t.s.expenditures, nil
}

func (t *memTx) Sum(_ context.Context, m rule.Metric, f repository.LedgerFilter) (int64, error) {
	eq := func(id int64) bool { return f.EquipmentID == nil || *f.EquipmentID == id }
	var total int64
	switch m {
	case rule.MetricOpening:
		for _, r := range t.s.opening {
			if r.BaseID == f.BaseID && eq(r.EquipmentID) {
				total += r.Quantity
			}
		}
	case rule.MetricPurchases:
		for _, r := range t.s.purchases {
			if r.BaseID == f.BaseID && eq(r.EquipmentID) && f.Range.Contains(r.Date) {
				total += r.Quantity
			}
		}
	case rule.MetricTransferIn:
		for _, r := range t.s.transfers {
			if r.ToBaseID == f.BaseID && eq(r.EquipmentID) && f.Range.Contains(r.Date) {
				total += r.Quantity
			}
		}
	case rule.MetricTransferOut:
		for _, r := range t.s.transfers {
			if r.FromBaseID == f.BaseID && eq(r.EquipmentID) && f.Range.Contains(r.Date) {
				total += r.Quantity
			}
		}
	case rule.MetricAssigned:
		for _, r := range t.s.assignments {
			if r.BaseID == f.BaseID && eq(r.EquipmentID) && f.Range.Contains(r.Date) {
				total += r.Quantity
			}
		}
	case rule.MetricExpended:
		for _, r := range t.s.expenditures {
			if r.BaseID == f.BaseID && eq(r.EquipmentID) && f.Range.Contains(r.Date) {
				total += r.Quantity
			}
		}
	}
	return total, nil
}

// fakeMetrics cuenta llamadas al puerto de métricas.
type fakeMetrics struct {
	mu       sync.Mutex
	recorded map[string]int
	rejected map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{recorded: map[string]int{}, rejected: map[string]int{}}
}

func (m *fakeMetrics) MovementRecorded(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded[kind]++
}

func (m *fakeMetrics) MovementRejected(kind, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[kind+"/"+code]++
}

func (m *fakeMetrics) BalanceComputed(float64) {}
