package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NinoOnFire/ticashop/internal/application/auth"
	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/internal/application/reportes"
	"github.com/NinoOnFire/ticashop/internal/application/usecase"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
	"github.com/NinoOnFire/ticashop/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductoUC  *usecase.ProductoUseCase
	ClienteUC   *usecase.ClienteUseCase
	ProveedorUC *usecase.ProveedorUseCase
	PedidoUC    *ventas.PedidoUseCase
	ConfirmarUC *ventas.ConfirmarPedidoUseCase
	CarritoUC   *ventas.CarritoUseCase
	EmitirUC    *facturacion.EmitirDocumentoUseCase
	PagosUC     *facturacion.PagosUseCase
	NotasUC     *facturacion.NotaCreditoUseCase
	PDFUC       *facturacion.PDFUseCase
	ReportesUC  *reportes.UseCase
	Planilla    reportes.PlanillaWriter
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	backoffice := RequireRol(entity.RolAdministrador, entity.RolVendedor)
	admin := RequireRol(entity.RolAdministrador)

	// Productos: catálogo legible por cualquier usuario autenticado,
	// escritura solo back-office, costos masivos solo administrador.
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", productoHandler.List)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Post("/", backoffice, productoHandler.Create)
	productos.Put("/:id", backoffice, productoHandler.Update)
	productos.Delete("/:id", admin, productoHandler.Delete)
	productos.Post("/importar-costos", admin, productoHandler.ImportarCostos)

	// Clientes (back-office)
	clientes := protected.Group("/clientes", backoffice)
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/rut/:rut", clienteHandler.GetByRUT)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", clienteHandler.Update)

	// Proveedores (back-office)
	proveedores := protected.Group("/proveedores", backoffice)
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Create)
	proveedores.Get("/", proveedorHandler.List)
	proveedores.Get("/:id", proveedorHandler.GetByID)
	proveedores.Put("/:id", proveedorHandler.Update)
	proveedores.Delete("/:id", admin, proveedorHandler.Delete)

	// Pedidos (back-office)
	pedidos := protected.Group("/pedidos", backoffice)
	pedidoHandler := NewPedidoHandler(deps.PedidoUC, deps.ConfirmarUC)
	pedidos.Post("/", pedidoHandler.Crear)
	pedidos.Get("/", pedidoHandler.List)
	pedidos.Get("/:id", pedidoHandler.Get)
	pedidos.Post("/:id/detalles", pedidoHandler.AgregarLinea)
	pedidos.Delete("/:id/detalles/:productoId", pedidoHandler.QuitarLinea)
	pedidos.Post("/:id/enviar", pedidoHandler.Enviar)
	pedidos.Post("/:id/confirmar", pedidoHandler.Confirmar)
	pedidos.Post("/:id/despachar", pedidoHandler.Despachar)
	pedidos.Post("/:id/cancelar", pedidoHandler.Cancelar)

	// Carrito (solo rol Cliente, opera sobre el usuario autenticado)
	carrito := protected.Group("/carrito", RequireRol(entity.RolCliente))
	carritoHandler := NewCarritoHandler(deps.CarritoUC)
	carrito.Get("/", carritoHandler.Ver)
	carrito.Delete("/", carritoHandler.Vaciar)
	carrito.Post("/items", carritoHandler.Agregar)
	carrito.Delete("/items/:productoId", carritoHandler.Quitar)
	carrito.Post("/checkout", carritoHandler.Checkout)

	// Documentos de venta (back-office)
	documentos := protected.Group("/documentos", backoffice)
	documentoHandler := NewDocumentoHandler(deps.EmitirUC, deps.PagosUC, deps.NotasUC, deps.PDFUC)
	documentos.Post("/", documentoHandler.Emitir)
	documentos.Get("/", documentoHandler.List)
	documentos.Get("/:id", documentoHandler.Get)
	documentos.Get("/:id/pagos", documentoHandler.ListPagos)
	documentos.Post("/:id/pagos", documentoHandler.RegistrarPago)
	documentos.Post("/:id/anular", documentoHandler.Anular)
	documentos.Get("/:id/pdf", documentoHandler.PDF)
	documentos.Post("/:id/notas-credito", documentoHandler.EmitirNotaCredito)
	documentos.Get("/:id/notas-credito", documentoHandler.ListNotasCredito)
	protected.Get("/notas-credito/:id", backoffice, documentoHandler.GetNotaCredito)

	// Reportes (solo administrador)
	reportesGroup := protected.Group("/reportes", admin)
	reporteHandler := NewReporteHandler(deps.ReportesUC, deps.Planilla)
	reportesGroup.Get("/ventas", reporteHandler.Ventas)
	reportesGroup.Get("/rentabilidad", reporteHandler.Rentabilidad)
	reportesGroup.Post("/rentabilidad/exportar", reporteHandler.ExportarRentabilidad)
}
