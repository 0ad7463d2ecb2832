// recordatorios envía por correo los avisos de cobranza del día: facturas
// que vencen en tres días y facturas ya vencidas con saldo pendiente.
// Pensado para correr una vez al día vía cron.
//
// Uso: go run ./cmd/recordatorios [-fecha YYYY-MM-DD]
// Por defecto usa la fecha de hoy.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/internal/infrastructure/mail"
	"github.com/NinoOnFire/ticashop/internal/infrastructure/postgres"
	"github.com/NinoOnFire/ticashop/pkg/config"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

func main() {
	fechaFlag := flag.String("fecha", "", "fecha de corte YYYY-MM-DD (por defecto hoy)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:      cfg.App.Env,
		Level:    "info",
		Servicio: "recordatorios",
	})

	hoy := time.Now()
	if *fechaFlag != "" {
		hoy, err = time.Parse("2006-01-02", *fechaFlag)
		if err != nil {
			log.Fatal().Str("fecha", *fechaFlag).Msg("fecha inválida, se espera YYYY-MM-DD")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	documentoRepo := postgres.NewDocumentoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	mailer := mail.NewGomailMailer(cfg.SMTP)

	uc := facturacion.NewVencimientosUseCase(documentoRepo, clienteRepo, mailer, cfg.SMTP.AdminEmail, log)

	resumen, err := uc.EnviarRecordatorios(ctx, hoy)
	if err != nil {
		log.Fatal().Err(err).Msg("corrida de recordatorios")
	}

	log.Info().
		Str("fecha", hoy.Format("2006-01-02")).
		Int("por_vencer", resumen.PorVencer).
		Int("vencidas", resumen.Vencidas).
		Int("enviados", resumen.Enviados).
		Int("fallidos", resumen.Fallidos).
		Msg("recordatorios de cobranza completados")
}
