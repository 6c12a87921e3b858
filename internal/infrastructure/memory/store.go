// Package memory implementa los puertos de repositorio en memoria. Lo usan los tests de
// casos de uso, bridge y handlers; Run emula la transacción restaurando una copia del estado.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.HistoryRepository   = (*HistoryRepo)(nil)
	_ repository.DashboardRepository = (*DashboardRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ inventory.TxRunner             = (*Store)(nil)
)

// Store estado en memoria compartido por los repositorios.
// FailAppend, si no es nil, hace fallar el próximo Append del histórico.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	now      func() time.Time
	nextPID  int64
	nextHID  int64
	products map[int64]*entity.Product
	history  []*entity.HistoryEntry
	users    map[string]*entity.User

	FailAppend error
}

// ProductRepo vista de productos sobre el Store.
type ProductRepo struct{ s *Store }

// HistoryRepo vista del histórico sobre el Store.
type HistoryRepo struct{ s *Store }

// DashboardRepo agregados sobre el Store.
type DashboardRepo struct{ s *Store }

// UserRepo vista de usuarios sobre el Store.
type UserRepo struct{ s *Store }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// History devuelve el repositorio del histórico.
func (s *Store) History() *HistoryRepo { return &HistoryRepo{s: s} }

// Dashboard devuelve el repositorio del painel.
func (s *Store) Dashboard() *DashboardRepo { return &DashboardRepo{s: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// NewStore crea un store vacío con reloj real.
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		products: make(map[int64]*entity.Product),
		users:    make(map[string]*entity.User),
	}
}

// WithClock fija el reloj usado para timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Run ejecuta fn con el propio store; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.Products(), s.History()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type state struct {
	nextPID, nextHID int64
	products         map[int64]*entity.Product
	history          []*entity.HistoryEntry
}

func (s *Store) snapshot() state {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := state{nextPID: s.nextPID, nextHID: s.nextHID, products: make(map[int64]*entity.Product, len(s.products))}
	for id, p := range s.products {
		cp := *p
		st.products[id] = &cp
	}
	st.history = append([]*entity.HistoryEntry(nil), s.history...)
	return st
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPID, s.nextHID = st.nextPID, st.nextHID
	s.products = st.products
	s.history = st.history
}

// ─── ProductRepository ───────────────────────────────────────────────────────

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Quantity < 0 || !p.Value.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	s.nextPID++
	now := s.now()
	p.ID = s.nextPID
	p.Status = entity.StatusActive
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetAll(ctx context.Context) ([]*entity.Product, error) {
	list, _, err := r.Search(ctx, repository.ProductFilter{Status: entity.StatusActive, SortDesc: true})
	return list, err
}

func (r *ProductRepo) GetExpiring(_ context.Context, from, to time.Time) ([]*entity.Product, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	lo, hi := dateOnly(from), dateOnly(to)
	list := make([]*entity.Product, 0)
	for _, p := range s.products {
		e := dateOnly(p.Expiry)
		if p.IsActive() && !e.Before(lo) && !e.After(hi) {
			cp := *p
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Expiry.Equal(list[j].Expiry) {
			return list[i].Expiry.Before(list[j].Expiry)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *ProductRepo) Search(_ context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	list := make([]*entity.Product, 0)
	for _, p := range s.products {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Supplier), needle) {
			continue
		}
		e := dateOnly(p.Expiry)
		if f.ExpiringFrom != nil && f.ExpiringTo != nil &&
			(e.Before(dateOnly(*f.ExpiringFrom)) || e.After(dateOnly(*f.ExpiringTo))) {
			continue
		}
		if f.ExpiredBefore != nil && !e.Before(dateOnly(*f.ExpiredBefore)) {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.SliceStable(list, func(i, j int) bool {
		c := compareProducts(list[i], list[j], f.SortBy)
		if c == 0 {
			c = compareInt64(list[i].ID, list[j].ID)
		}
		if f.SortDesc {
			return c > 0
		}
		return c < 0
	})
	total := len(list)
	if f.Offset > 0 {
		if f.Offset >= len(list) {
			list = list[:0]
		} else {
			list = list[f.Offset:]
		}
	}
	if f.Limit > 0 && len(list) > f.Limit {
		list = list[:f.Limit]
	}
	return list, total, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = s.now()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id int64, quantity int) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	p.Quantity = quantity
	p.UpdatedAt = s.now()
	return nil
}

func (r *ProductRepo) SoftDelete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.StatusInactive
	p.UpdatedAt = s.now()
	return nil
}

// ─── HistoryRepository ───────────────────────────────────────────────────────

func (r *HistoryRepo) Append(_ context.Context, e *entity.HistoryEntry) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppend != nil {
		err := s.FailAppend
		s.FailAppend = nil
		return err
	}
	if _, ok := s.products[e.ProductID]; !ok {
		return domain.ErrNotFound
	}
	s.nextHID++
	e.ID = s.nextHID
	e.CreatedAt = s.now()
	cp := *e
	s.history = append(s.history, &cp)
	return nil
}

func (s *Store) historyWhere(keep func(*entity.HistoryEntry) bool, limit int) []*entity.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.HistoryEntry, 0)
	for i := len(s.history) - 1; i >= 0; i-- {
		e := s.history[i]
		if keep != nil && !keep(e) {
			continue
		}
		cp := *e
		if p, ok := s.products[e.ProductID]; ok {
			cp.ProductName = p.Name
		}
		out = append(out, &cp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (r *HistoryRepo) GetAll(_ context.Context) ([]*entity.HistoryEntry, error) {
	return r.s.historyWhere(nil, 0), nil
}

func (r *HistoryRepo) GetByProduct(_ context.Context, productID int64) ([]*entity.HistoryEntry, error) {
	return r.s.historyWhere(func(e *entity.HistoryEntry) bool { return e.ProductID == productID }, 0), nil
}

func (r *HistoryRepo) GetByDateRange(_ context.Context, from, to time.Time) ([]*entity.HistoryEntry, error) {
	return r.s.historyWhere(func(e *entity.HistoryEntry) bool {
		return !e.CreatedAt.Before(from) && e.CreatedAt.Before(to)
	}, 0), nil
}

func (r *HistoryRepo) GetByType(_ context.Context, historyType string) ([]*entity.HistoryEntry, error) {
	return r.s.historyWhere(func(e *entity.HistoryEntry) bool { return e.Type == historyType }, 0), nil
}

func (r *HistoryRepo) GetRecent(_ context.Context, limit int) ([]*entity.HistoryEntry, error) {
	return r.s.historyWhere(nil, limit), nil
}

// ─── DashboardRepository ─────────────────────────────────────────────────────

func (r *DashboardRepo) GetStockTotals(_ context.Context) (repository.StockTotals, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	t := repository.StockTotals{TotalValue: decimal.Zero}
	for _, p := range s.products {
		if !p.IsActive() {
			continue
		}
		t.Products++
		t.Units += int64(p.Quantity)
		t.TotalValue = t.TotalValue.Add(p.StockValue())
	}
	return t, nil
}

func (r *DashboardRepo) GetUnitsByCategory(_ context.Context) ([]repository.CategoryUnits, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	byCat := map[string]*repository.CategoryUnits{}
	for _, p := range s.products {
		if !p.IsActive() {
			continue
		}
		c, ok := byCat[p.Category]
		if !ok {
			c = &repository.CategoryUnits{Category: p.Category}
			byCat[p.Category] = c
		}
		c.Products++
		c.Units += int64(p.Quantity)
	}
	out := make([]repository.CategoryUnits, 0, len(byCat))
	for _, c := range byCat {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *DashboardRepo) CountExpiring(ctx context.Context, from, to time.Time) (int, error) {
	list, err := r.s.Products().GetExpiring(ctx, from, to)
	return len(list), err
}

func (r *DashboardRepo) CountExpired(_ context.Context, before time.Time) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.products {
		if p.IsActive() && dateOnly(p.Expiry).Before(dateOnly(before)) {
			n++
		}
	}
	return n, nil
}

// ─── UserRepository ──────────────────────────────────────────────────────────

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, ok := s.users[key]; ok {
		return domain.ErrDuplicate
	}
	cp := *u
	s.users[key] = &cp
	return nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) TouchLogin(_ context.Context, id string, at time.Time) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			t := at
			u.LastLoginAt = &t
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *UserRepo) DeleteByEmail(_ context.Context, email string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, strings.ToLower(email))
	return nil
}

// Put reemplaza un usuario existente (tests).
func (r *UserRepo) Put(u *entity.User) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[strings.ToLower(u.Email)] = &cp
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func compareProducts(a, b *entity.Product, by string) int {
	switch by {
	case repository.SortByName:
		return strings.Compare(a.Name, b.Name)
	case repository.SortByCategory:
		return strings.Compare(a.Category, b.Category)
	case repository.SortByExpiry:
		return a.Expiry.Compare(b.Expiry)
	case repository.SortByQuantity:
		return compareInt64(int64(a.Quantity), int64(b.Quantity))
	case repository.SortByValue:
		return a.Value.Cmp(b.Value)
	case repository.SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return compareInt64(a.ID, b.ID)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
