package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/NinoOnFire/ticashop/internal/application/auth"
	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/internal/application/reportes"
	"github.com/NinoOnFire/ticashop/internal/application/usecase"
	"github.com/NinoOnFire/ticashop/internal/application/ventas"
	infrapdf "github.com/NinoOnFire/ticashop/internal/infrastructure/pdf"
	"github.com/NinoOnFire/ticashop/internal/infrastructure/planilla"
	"github.com/NinoOnFire/ticashop/internal/infrastructure/postgres"
	httpRouter "github.com/NinoOnFire/ticashop/internal/interfaces/http"
	"github.com/NinoOnFire/ticashop/pkg/config"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:      cfg.App.Env,
		Level:    "info",
		Servicio: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	documentoRepo := postgres.NewDocumentoRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	notaRepo := postgres.NewNotaCreditoRepository(pool)
	carritoRepo := postgres.NewCarritoRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, clienteRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productoUC := usecase.NewProductoUseCase(productoRepo, log)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)

	emitirUC := facturacion.NewEmitirDocumentoUseCase(txRunner, clienteRepo, log)
	pagosUC := facturacion.NewPagosUseCase(txRunner, documentoRepo, pagoRepo, productoRepo, log)
	notasUC := facturacion.NewNotaCreditoUseCase(txRunner, notaRepo, productoRepo, log)
	pdfUC := facturacion.NewPDFUseCase(documentoRepo, productoRepo, infrapdf.NewGeneradorMaroto(cfg.Empresa))

	pedidoUC := ventas.NewPedidoUseCase(txRunner, pedidoRepo, productoRepo, clienteRepo, documentoRepo, log)
	confirmarUC := ventas.NewConfirmarPedidoUseCase(txRunner, log)
	carritoUC := ventas.NewCarritoUseCase(txRunner, emitirUC, carritoRepo, productoRepo, clienteRepo, log)

	reportesUC := reportes.NewUseCase(reporteRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ticashop API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductoUC:  productoUC,
		ClienteUC:   clienteUC,
		ProveedorUC: proveedorUC,
		PedidoUC:    pedidoUC,
		ConfirmarUC: confirmarUC,
		CarritoUC:   carritoUC,
		EmitirUC:    emitirUC,
		PagosUC:     pagosUC,
		NotasUC:     notasUC,
		PDFUC:       pdfUC,
		ReportesUC:  reportesUC,
		Planilla:    planilla.NewCSVWriter("./reportes"),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
