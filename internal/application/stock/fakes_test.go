package stock_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/sectorial-api/internal/domain/entity"
	"github.com/jhoicas/sectorial-api/internal/domain/repository"
	"github.com/jhoicas/sectorial-api/pkg/logger"
)

// Fakes en memoria de los puertos de persistencia. Reproducen el contrato
// observable de los adaptadores PostgreSQL (orden de ListByProduct incluido)
// para ejercitar los casos de uso sin base de datos.

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

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

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

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

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if existing, ok := r.products[p.ID]; ok {
		cp := *p
		cp.TotalStock = existing.TotalStock
		cp.SectorTag = existing.SectorTag
		r.products[p.ID] = &cp
	}
	return nil
}

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

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

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

type fakeSectorStockRepo struct {
	rows     map[string]*entity.SectorStock // key: productID|sectorID
	products *fakeProductRepo
	sectors  *fakeSectorRepo
}

func newFakeSectorStockRepo(products *fakeProductRepo, sectors *fakeSectorRepo) *fakeSectorStockRepo {
	return &fakeSectorStockRepo{rows: make(map[string]*entity.SectorStock), products: products, sectors: sectors}
}

func key(productID, sectorID string) string { return productID + "|" + sectorID }

func (r *fakeSectorStockRepo) seed(productID, sectorID string, qty int) {
	r.rows[key(productID, sectorID)] = &entity.SectorStock{ProductID: productID, SectorID: sectorID, Quantity: qty, UpdatedAt: time.Now()}
}

func (r *fakeSectorStockRepo) Get(productID, sectorID string) (*entity.SectorStock, error) {
	row, ok := r.rows[key(productID, sectorID)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

// ListByProduct replica el ORDER BY quantity ASC, sector_id ASC del adaptador real.
func (r *fakeSectorStockRepo) ListByProduct(productID string) ([]entity.SectorStock, error) {
	var out []entity.SectorStock
	for _, row := range r.rows {
		if row.ProductID == productID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].SectorID < out[j].SectorID
	})
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
	r.rows[key(row.ProductID, row.SectorID)] = &cp
	return nil
}

func (r *fakeSectorStockRepo) Delete(productID, sectorID string) error {
	delete(r.rows, key(productID, sectorID))
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

func (r *fakeSectorStockRepo) DeleteOrphans() (int64, error) {
	var n int64
	for k := range r.rows {
		parts := strings.SplitN(k, "|", 2)
		_, pOK := r.products.products[parts[0]]
		_, sOK := r.sectors.sectors[parts[1]]
		if !pOK || !sOK {
			delete(r.rows, k)
			n++
		}
	}
	return n, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.TransactionID == transactionID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner pasa los mismos fakes al callback; la atomicidad real la
// cubren los tests de integración con PostgreSQL.
type fakeTxRunner struct {
	products     *fakeProductRepo
	sectorStocks *fakeSectorStockRepo
	movements    *fakeMovementRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	sectorStockRepo repository.SectorStockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return fn(tr.products, tr.sectorStocks, tr.movements)
}
