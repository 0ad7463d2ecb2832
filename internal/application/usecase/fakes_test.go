package usecase_test

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// Fakes en memoria para los casos de uso de catálogo y partes.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

type memProductoRepo struct {
	productos map[string]*entity.Producto
}

func newMemProductoRepo(productos ...*entity.Producto) *memProductoRepo {
	r := &memProductoRepo{productos: make(map[string]*entity.Producto)}
	for _, p := range productos {
		r.productos[p.ID] = p
	}
	return r
}

func (r *memProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	return r.productos[id], nil
}

func (r *memProductoRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *memProductoRepo) UpdateCosto(_ context.Context, id string, costo decimal.Decimal) error {
	if p, ok := r.productos[id]; ok {
		p.CostoUnitario = costo
	}
	return nil
}

func (r *memProductoRepo) Delete(_ context.Context, id string) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *memProductoRepo) List(_ context.Context, buscar string, soloActivos bool, _, _ int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.productos {
		if soloActivos && !p.Activo {
			continue
		}
		if buscar != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(buscar)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductoRepo) ListStockBajo(_ context.Context) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.productos {
		if p.Activo && p.TieneStockBajo() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductoRepo) GetForUpdate(_ context.Context, id string) (*entity.Producto, error) {
	return r.productos[id], nil
}

func (r *memProductoRepo) DescontarStock(_ context.Context, id string, cantidad int) (bool, error) {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return false, nil
	}
	p.Stock -= cantidad
	return true, nil
}

func (r *memProductoRepo) ReponerStock(_ context.Context, id string, cantidad int) error {
	if p, ok := r.productos[id]; ok {
		p.Stock += cantidad
	}
	return nil
}

type memClienteRepo struct {
	clientes map[string]*entity.Cliente
}

func newMemClienteRepo(clientes ...*entity.Cliente) *memClienteRepo {
	r := &memClienteRepo{clientes: make(map[string]*entity.Cliente)}
	for _, c := range clientes {
		r.clientes[c.ID] = c
	}
	return r
}

func (r *memClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *memClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	return r.clientes[id], nil
}

func (r *memClienteRepo) GetByRUT(_ context.Context, rut string) (*entity.Cliente, error) {
	for _, c := range r.clientes {
		if c.RUT == rut {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClienteRepo) GetByUsuarioID(_ context.Context, usuarioID string) (*entity.Cliente, error) {
	for _, c := range r.clientes {
		if c.UsuarioID != nil && *c.UsuarioID == usuarioID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *memClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *memClienteRepo) List(_ context.Context, _, _ int) ([]*entity.Cliente, error) {
	out := make([]*entity.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, c)
	}
	return out, nil
}
