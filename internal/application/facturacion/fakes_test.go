package facturacion_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// Fakes en memoria para ejercitar los casos de uso de tesorería sin base de
// datos. Implementan los puertos completos; los métodos que un test no toca
// devuelven valores cero.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func paginar[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ── DocumentoRepository ───────────────────────────────────────────────────────

type memDocumentoRepo struct {
	documentos map[string]*entity.DocumentoVenta
	detalles   map[string][]*entity.DetalleDocumento
}

func newMemDocumentoRepo(docs ...*entity.DocumentoVenta) *memDocumentoRepo {
	r := &memDocumentoRepo{
		documentos: make(map[string]*entity.DocumentoVenta),
		detalles:   make(map[string][]*entity.DetalleDocumento),
	}
	for _, d := range docs {
		r.documentos[d.ID] = d
	}
	return r
}

func (r *memDocumentoRepo) Create(_ context.Context, d *entity.DocumentoVenta) error {
	r.documentos[d.ID] = d
	return nil
}

func (r *memDocumentoRepo) GetByID(_ context.Context, id string) (*entity.DocumentoVenta, error) {
	return r.documentos[id], nil
}

func (r *memDocumentoRepo) GetByPedidoID(_ context.Context, pedidoID string) (*entity.DocumentoVenta, error) {
	for _, d := range r.documentos {
		if d.PedidoID != nil && *d.PedidoID == pedidoID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *memDocumentoRepo) UpdateEstado(_ context.Context, id string, estado entity.EstadoDocumento) error {
	if d, ok := r.documentos[id]; ok {
		d.Estado = estado
	}
	return nil
}

func (r *memDocumentoRepo) UpdateTotales(_ context.Context, id string, neto, iva, total decimal.Decimal) error {
	if d, ok := r.documentos[id]; ok {
		d.Neto, d.IVA, d.Total = neto, iva, total
	}
	return nil
}

func (r *memDocumentoRepo) List(_ context.Context, tipo entity.TipoDocumento, estado entity.EstadoDocumento, limit, offset int) ([]*entity.DocumentoVenta, error) {
	var filtrados []*entity.DocumentoVenta
	for _, d := range r.documentos {
		if tipo != "" && d.TipoDocumento != tipo {
			continue
		}
		if estado != "" && d.Estado != estado {
			continue
		}
		filtrados = append(filtrados, d)
	}
	sort.Slice(filtrados, func(i, j int) bool { return filtrados[i].Folio < filtrados[j].Folio })
	return paginar(filtrados, limit, offset), nil
}

func (r *memDocumentoRepo) ListPorCliente(_ context.Context, clienteID string, _, _ int) ([]*entity.DocumentoVenta, error) {
	var out []*entity.DocumentoVenta
	for _, d := range r.documentos {
		if d.ClienteID == clienteID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocumentoRepo) MaxFolio(_ context.Context, tipo entity.TipoDocumento) (int, error) {
	max := 0
	for _, d := range r.documentos {
		if d.TipoDocumento == tipo && d.Folio > max {
			max = d.Folio
		}
	}
	return max, nil
}

func (r *memDocumentoRepo) CreateDetalle(_ context.Context, d *entity.DetalleDocumento) error {
	r.detalles[d.DocumentoID] = append(r.detalles[d.DocumentoID], d)
	return nil
}

func (r *memDocumentoRepo) DeleteDetalles(_ context.Context, documentoID string) error {
	delete(r.detalles, documentoID)
	return nil
}

func (r *memDocumentoRepo) GetDetalles(_ context.Context, documentoID string) ([]*entity.DetalleDocumento, error) {
	return r.detalles[documentoID], nil
}

func (r *memDocumentoRepo) ListFacturasPorVencer(_ context.Context, vencimiento time.Time) ([]*entity.DocumentoVenta, error) {
	var out []*entity.DocumentoVenta
	for _, d := range r.documentos {
		if d.TipoDocumento != entity.DocFactura || !d.Estado.Pendiente() || d.FechaVencimiento == nil {
			continue
		}
		if mismaFecha(*d.FechaVencimiento, vencimiento) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocumentoRepo) ListFacturasVencidas(_ context.Context, hoy time.Time) ([]*entity.DocumentoVenta, error) {
	var out []*entity.DocumentoVenta
	for _, d := range r.documentos {
		if d.TipoDocumento == entity.DocFactura && d.EstaVencida(hoy) {
			out = append(out, d)
		}
	}
	return out, nil
}

func mismaFecha(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ── PagoRepository ────────────────────────────────────────────────────────────

type memPagoRepo struct {
	pagos map[string][]*entity.Pago
	// sumFalla simula una agregación de pagos fallida.
	sumFalla error
}

func newMemPagoRepo() *memPagoRepo {
	return &memPagoRepo{pagos: make(map[string][]*entity.Pago)}
}

func (r *memPagoRepo) Create(_ context.Context, p *entity.Pago) error {
	r.pagos[p.DocumentoID] = append(r.pagos[p.DocumentoID], p)
	return nil
}

func (r *memPagoRepo) ListByDocumento(_ context.Context, documentoID string) ([]*entity.Pago, error) {
	return r.pagos[documentoID], nil
}

func (r *memPagoRepo) SumByDocumento(_ context.Context, documentoID string) (decimal.Decimal, error) {
	if r.sumFalla != nil {
		return decimal.Zero, r.sumFalla
	}
	sum := decimal.Zero
	for _, p := range r.pagos[documentoID] {
		sum = sum.Add(p.MontoPagado)
	}
	return sum, nil
}

// ── NotaCreditoRepository ─────────────────────────────────────────────────────

type memNotaRepo struct {
	notas    map[string]*entity.NotaCredito
	detalles map[string][]*entity.DetalleNotaCredito
}

func newMemNotaRepo() *memNotaRepo {
	return &memNotaRepo{
		notas:    make(map[string]*entity.NotaCredito),
		detalles: make(map[string][]*entity.DetalleNotaCredito),
	}
}

func (r *memNotaRepo) Create(_ context.Context, n *entity.NotaCredito) error {
	r.notas[n.ID] = n
	return nil
}

func (r *memNotaRepo) MaxFolio(_ context.Context) (int, error) {
	max := 0
	for _, n := range r.notas {
		if n.Folio > max {
			max = n.Folio
		}
	}
	return max, nil
}

func (r *memNotaRepo) GetByID(_ context.Context, id string) (*entity.NotaCredito, error) {
	return r.notas[id], nil
}

func (r *memNotaRepo) UpdateEstado(_ context.Context, id string, estado entity.EstadoNotaCredito) error {
	if n, ok := r.notas[id]; ok {
		n.Estado = estado
	}
	return nil
}

func (r *memNotaRepo) ListByFactura(_ context.Context, facturaID string) ([]*entity.NotaCredito, error) {
	var out []*entity.NotaCredito
	for _, n := range r.notas {
		if n.FacturaID == facturaID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotaRepo) CreateDetalle(_ context.Context, d *entity.DetalleNotaCredito) error {
	r.detalles[d.NotaID] = append(r.detalles[d.NotaID], d)
	return nil
}

func (r *memNotaRepo) GetDetalles(_ context.Context, notaID string) ([]*entity.DetalleNotaCredito, error) {
	return r.detalles[notaID], nil
}

// ── ProductoRepository ────────────────────────────────────────────────────────

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

func (r *memProductoRepo) List(_ context.Context, _ string, _ bool, _, _ int) ([]*entity.Producto, error) {
	return nil, nil
}

func (r *memProductoRepo) ListStockBajo(_ context.Context) ([]*entity.Producto, error) {
	return nil, nil
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

// ── PedidoRepository ──────────────────────────────────────────────────────────

type memPedidoRepo struct {
	pedidos  map[string]*entity.Pedido
	detalles map[string][]*entity.DetallePedido
}

func newMemPedidoRepo() *memPedidoRepo {
	return &memPedidoRepo{
		pedidos:  make(map[string]*entity.Pedido),
		detalles: make(map[string][]*entity.DetallePedido),
	}
}

func (r *memPedidoRepo) Create(_ context.Context, p *entity.Pedido) error {
	r.pedidos[p.ID] = p
	return nil
}

func (r *memPedidoRepo) GetByID(_ context.Context, id string) (*entity.Pedido, error) {
	return r.pedidos[id], nil
}

func (r *memPedidoRepo) UpdateEstado(_ context.Context, id string, estado entity.EstadoPedido) error {
	if p, ok := r.pedidos[id]; ok {
		p.Estado = estado
	}
	return nil
}

func (r *memPedidoRepo) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	if p, ok := r.pedidos[id]; ok {
		p.Total = total
	}
	return nil
}

func (r *memPedidoRepo) List(_ context.Context, _ entity.EstadoPedido, _, _ int) ([]*entity.Pedido, error) {
	return nil, nil
}

func (r *memPedidoRepo) ListPorCliente(_ context.Context, _ string, _, _ int) ([]*entity.Pedido, error) {
	return nil, nil
}

func (r *memPedidoRepo) CreateDetalle(_ context.Context, d *entity.DetallePedido) error {
	r.detalles[d.PedidoID] = append(r.detalles[d.PedidoID], d)
	return nil
}

func (r *memPedidoRepo) UpdateDetalle(_ context.Context, d *entity.DetallePedido) error {
	for i, existente := range r.detalles[d.PedidoID] {
		if existente.ID == d.ID {
			r.detalles[d.PedidoID][i] = d
		}
	}
	return nil
}

func (r *memPedidoRepo) DeleteDetalle(_ context.Context, id string) error {
	for pedidoID, lista := range r.detalles {
		for i, d := range lista {
			if d.ID == id {
				r.detalles[pedidoID] = append(lista[:i], lista[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *memPedidoRepo) GetDetalles(_ context.Context, pedidoID string) ([]*entity.DetallePedido, error) {
	return r.detalles[pedidoID], nil
}

func (r *memPedidoRepo) GetDetallePorProducto(_ context.Context, pedidoID, productoID string) (*entity.DetallePedido, error) {
	for _, d := range r.detalles[pedidoID] {
		if d.ProductoID == productoID {
			return d, nil
		}
	}
	return nil, nil
}

// ── ClienteRepository ─────────────────────────────────────────────────────────

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
	return nil, nil
}

// ── Mailer ────────────────────────────────────────────────────────────────────

var (
	errEnvio = errors.New("smtp no disponible")
	errFalla = errors.New("fallo simulado")
)

type correoEnviado struct {
	Para   string
	Asunto string
	Cuerpo string
}

// fakeMailer acumula los correos enviados; las direcciones en fallan
// devuelven error.
type fakeMailer struct {
	enviados []correoEnviado
	fallan   map[string]bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{fallan: make(map[string]bool)}
}

func (m *fakeMailer) Enviar(_ context.Context, para, asunto, cuerpo string) error {
	if m.fallan[para] {
		return errEnvio
	}
	m.enviados = append(m.enviados, correoEnviado{Para: para, Asunto: asunto, Cuerpo: cuerpo})
	return nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner pasa siempre los mismos repos en memoria; la atomicidad no se
// simula, los tests verifican la lógica de negocio.
type fakeTxRunner struct {
	documentoRepo *memDocumentoRepo
	pagoRepo      *memPagoRepo
	notaRepo      *memNotaRepo
	productoRepo  *memProductoRepo
	pedidoRepo    *memPedidoRepo
}

var _ facturacion.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) RunTesoreria(ctx context.Context, fn func(
	documentoRepo repository.DocumentoRepository,
	pagoRepo repository.PagoRepository,
	notaRepo repository.NotaCreditoRepository,
	productoRepo repository.ProductoRepository,
	pedidoRepo repository.PedidoRepository,
) error) error {
	return fn(f.documentoRepo, f.pagoRepo, f.notaRepo, f.productoRepo, f.pedidoRepo)
}
