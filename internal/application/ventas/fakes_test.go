package ventas_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NinoOnFire/ticashop/internal/application/ventas"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// Fakes en memoria para ejercitar los casos de uso de ventas sin base de datos.
// Implementan los puertos completos; los métodos que un test no toca devuelven
// valores cero.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
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

func (r *memPedidoRepo) List(_ context.Context, estado entity.EstadoPedido, limit, offset int) ([]*entity.Pedido, error) {
	var out []*entity.Pedido
	for _, p := range r.pedidos {
		if estado != "" && p.Estado != estado {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPedidoRepo) ListPorCliente(_ context.Context, clienteID string, _, _ int) ([]*entity.Pedido, error) {
	var out []*entity.Pedido
	for _, p := range r.pedidos {
		if p.ClienteID == clienteID {
			out = append(out, p)
		}
	}
	return out, nil
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

// ── ProductoRepository ────────────────────────────────────────────────────────

type memProductoRepo struct {
	productos map[string]*entity.Producto
	// bloqueos registra el orden de los GetForUpdate para verificar el
	// bloqueo en orden estable.
	bloqueos []string
	// descontarForzadoFalla simula un decremento condicional sin filas
	// afectadas a pesar de la verificación previa.
	descontarForzadoFalla bool
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
	r.bloqueos = append(r.bloqueos, id)
	return r.productos[id], nil
}

func (r *memProductoRepo) DescontarStock(_ context.Context, id string, cantidad int) (bool, error) {
	if r.descontarForzadoFalla {
		return false, nil
	}
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

// ── DocumentoRepository ───────────────────────────────────────────────────────

type memDocumentoRepo struct {
	documentos map[string]*entity.DocumentoVenta
	detalles   map[string][]*entity.DetalleDocumento
}

func newMemDocumentoRepo() *memDocumentoRepo {
	return &memDocumentoRepo{
		documentos: make(map[string]*entity.DocumentoVenta),
		detalles:   make(map[string][]*entity.DetalleDocumento),
	}
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

func (r *memDocumentoRepo) List(_ context.Context, _ entity.TipoDocumento, _ entity.EstadoDocumento, _, _ int) ([]*entity.DocumentoVenta, error) {
	return nil, nil
}

func (r *memDocumentoRepo) ListPorCliente(_ context.Context, _ string, _, _ int) ([]*entity.DocumentoVenta, error) {
	return nil, nil
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

func (r *memDocumentoRepo) ListFacturasPorVencer(_ context.Context, _ time.Time) ([]*entity.DocumentoVenta, error) {
	return nil, nil
}

func (r *memDocumentoRepo) ListFacturasVencidas(_ context.Context, _ time.Time) ([]*entity.DocumentoVenta, error) {
	return nil, nil
}

// ── PagoRepository ────────────────────────────────────────────────────────────

type memPagoRepo struct {
	pagos map[string][]*entity.Pago
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
	sum := decimal.Zero
	for _, p := range r.pagos[documentoID] {
		sum = sum.Add(p.MontoPagado)
	}
	return sum, nil
}

// ── CarritoRepository ─────────────────────────────────────────────────────────

type memCarritoRepo struct {
	carritos map[string]*entity.Carrito
}

func newMemCarritoRepo() *memCarritoRepo {
	return &memCarritoRepo{carritos: make(map[string]*entity.Carrito)}
}

func (r *memCarritoRepo) Get(_ context.Context, usuarioID string) (*entity.Carrito, error) {
	return r.carritos[usuarioID], nil
}

func (r *memCarritoRepo) Save(_ context.Context, c *entity.Carrito) error {
	r.carritos[c.UsuarioID] = c
	return nil
}

func (r *memCarritoRepo) Delete(_ context.Context, usuarioID string) error {
	delete(r.carritos, usuarioID)
	return nil
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

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner pasa siempre los mismos repos en memoria; la atomicidad no se
// simula, los tests verifican la lógica de negocio.
type fakeTxRunner struct {
	pedidoRepo    *memPedidoRepo
	productoRepo  *memProductoRepo
	documentoRepo *memDocumentoRepo
	pagoRepo      *memPagoRepo
	carritoRepo   *memCarritoRepo
}

var _ ventas.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) RunVentas(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
	productoRepo repository.ProductoRepository,
	documentoRepo repository.DocumentoRepository,
	pagoRepo repository.PagoRepository,
	carritoRepo repository.CarritoRepository,
) error) error {
	return fn(f.pedidoRepo, f.productoRepo, f.documentoRepo, f.pagoRepo, f.carritoRepo)
}
