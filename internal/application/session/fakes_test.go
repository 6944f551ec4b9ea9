package session_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
	domstock "github.com/jhoicas/sectorial-api/internal/domain/stock"
	"github.com/jhoicas/sectorial-api/pkg/logger"
)

// Fakes en memoria de los puertos que toca el ciclo de sesiones. Reproducen el
// contrato observable de los adaptadores PostgreSQL para ejercitar los casos de
// uso sin base de datos.

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

type fakeSessionRepo struct {
	sessions map[string]*entity.InventorySession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.InventorySession)}
}

func (r *fakeSessionRepo) Create(s *entity.InventorySession) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(id string) (*entity.InventorySession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetForUpdate(id string) (*entity.InventorySession, error) {
	return r.GetByID(id)
}

func (r *fakeSessionRepo) FindActiveBySector(companyID, sectorID string) (*entity.InventorySession, error) {
	for _, s := range r.sessions {
		if s.CompanyID == companyID && s.SectorID == sectorID && s.Estado != entity.SessionCompletado {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Update(s *entity.InventorySession) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.InventorySession, error) {
	var out []*entity.InventorySession
	for _, s := range r.sessions {
		if s.CompanyID == companyID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListByCounter(userID string, limit, offset int) ([]*entity.InventorySession, error) {
	var out []*entity.InventorySession
	for _, s := range r.sessions {
		if s.CounterAID == userID || s.CounterBID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeDetailRepo struct {
	details map[string]*entity.CountDetail
}

func newFakeDetailRepo() *fakeDetailRepo {
	return &fakeDetailRepo{details: make(map[string]*entity.CountDetail)}
}

func (r *fakeDetailRepo) CreateBatch(details []*entity.CountDetail) error {
	for _, d := range details {
		cp := *d
		r.details[d.ID] = &cp
	}
	return nil
}

func (r *fakeDetailRepo) GetActive(sessionID, productID string) (*entity.CountDetail, error) {
	for _, d := range r.details {
		if d.SessionID == sessionID && d.ProductID == productID && d.IsActive() {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDetailRepo) GetActiveForUpdate(sessionID, productID string) (*entity.CountDetail, error) {
	return r.GetActive(sessionID, productID)
}

func (r *fakeDetailRepo) Update(d *entity.CountDetail) error {
	cp := *d
	r.details[d.ID] = &cp
	return nil
}

func (r *fakeDetailRepo) ListActiveBySession(sessionID string) ([]*entity.CountDetail, error) {
	var out []*entity.CountDetail
	for _, d := range r.details {
		if d.SessionID == sessionID && d.IsActive() {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortDetails(out)
	return out, nil
}

func (r *fakeDetailRepo) ListBySession(sessionID string) ([]*entity.CountDetail, error) {
	var out []*entity.CountDetail
	for _, d := range r.details {
		if d.SessionID == sessionID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sortDetails(out)
	return out, nil
}

func (r *fakeDetailRepo) Supersede(ids []string) error {
	for _, id := range ids {
		if d, ok := r.details[id]; ok {
			d.Superseded = true
		}
	}
	return nil
}

// sortDetails replica el ORDER BY round, product_id del adaptador real.
func sortDetails(out []*entity.CountDetail) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].ProductID < out[j].ProductID
	})
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmailAndCompany(email, companyID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.CompanyID == companyID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }

type fakeSectorRepo struct {
	sectors map[string]*entity.Sector
}

func newFakeSectorRepo(sectors ...*entity.Sector) *fakeSectorRepo {
	m := make(map[string]*entity.Sector)
	for _, s := range sectors {
		m[s.ID] = s
	}
	return &fakeSectorRepo{sectors: m}
}

func (r *fakeSectorRepo) Create(s *entity.Sector) error { r.sectors[s.ID] = s; return nil }

func (r *fakeSectorRepo) GetByID(id string) (*entity.Sector, error) {
	s, ok := r.sectors[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSectorRepo) Update(s *entity.Sector) error { r.sectors[s.ID] = s; return nil }

func (r *fakeSectorRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sector, error) {
	var out []*entity.Sector
	for _, s := range r.sectors {
		if s.CompanyID == companyID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSectorRepo) Delete(id string) error { delete(r.sectors, id); return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) UpdateStock(productID string, totalStock int, sectorTag string) error {
	if p, ok := r.products[productID]; ok {
		p.TotalStock = totalStock
		p.SectorTag = sectorTag
	}
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeSectorStockRepo struct {
	rows map[string]*entity.SectorStock // key: productID|sectorID
}

func newFakeSectorStockRepo() *fakeSectorStockRepo {
	return &fakeSectorStockRepo{rows: make(map[string]*entity.SectorStock)}
}

func (r *fakeSectorStockRepo) seed(productID, sectorID string, qty int) {
	r.rows[productID+"|"+sectorID] = &entity.SectorStock{ProductID: productID, SectorID: sectorID, Quantity: qty}
}

func (r *fakeSectorStockRepo) Get(productID, sectorID string) (*entity.SectorStock, error) {
	row, ok := r.rows[productID+"|"+sectorID]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeSectorStockRepo) ListByProduct(productID string) ([]entity.SectorStock, error) {
	var out []entity.SectorStock
	for _, row := range r.rows {
		if row.ProductID == productID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeSectorStockRepo) ListBySector(sectorID string) ([]entity.SectorStock, error) {
	var out []entity.SectorStock
	for _, row := range r.rows {
		if row.SectorID == sectorID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *fakeSectorStockRepo) Upsert(row *entity.SectorStock) error {
	cp := *row
	r.rows[row.ProductID+"|"+row.SectorID] = &cp
	return nil
}

func (r *fakeSectorStockRepo) Delete(productID, sectorID string) error {
	delete(r.rows, productID+"|"+sectorID)
	return nil
}

func (r *fakeSectorStockRepo) DeleteZeroRows(productID string) (int64, error) {
	var n int64
	for k, row := range r.rows {
		if row.ProductID == productID && row.Quantity <= 0 {
			delete(r.rows, k)
			n++
		}
	}
	return n, nil
}

func (r *fakeSectorStockRepo) DeleteOrphans() (int64, error) { return 0, nil }

// fakeTxRunner pasa los mismos fakes al callback; la atomicidad real la cubren
// los tests de integración con PostgreSQL.
type fakeTxRunner struct {
	sessions     *fakeSessionRepo
	details      *fakeDetailRepo
	products     *fakeProductRepo
	sectorStocks *fakeSectorStockRepo
}

func (tr *fakeTxRunner) RunSession(ctx context.Context, fn func(
	sessionRepo repository.InventorySessionRepository,
	detailRepo repository.CountDetailRepository,
	productRepo repository.ProductRepository,
	sectorStockRepo repository.SectorStockRepository,
) error) error {
	return fn(tr.sessions, tr.details, tr.products, tr.sectorStocks)
}

// fakeAllocator registra los ajustes que la sesión empuja al motor.
type fakeAllocator struct {
	calls []allocCall
}

type allocCall struct {
	productID string
	delta     int
	reason    string
}

func (a *fakeAllocator) Allocate(ctx context.Context, companyID, userID, productID string, delta int, reason string) (*domstock.AllocationReceipt, error) {
	a.calls = append(a.calls, allocCall{productID: productID, delta: delta, reason: reason})
	return &domstock.AllocationReceipt{
		TransactionID: "tx-fake",
		ProductID:     productID,
		Delta:         delta,
		Reason:        reason,
	}, nil
}

var precioUnitario = decimal.NewFromInt(1200)
