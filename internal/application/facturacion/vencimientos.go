package facturacion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NinoOnFire/ticashop/internal/domain/entity"
	"github.com/NinoOnFire/ticashop/internal/domain/repository"
	"github.com/NinoOnFire/ticashop/internal/domain/rut"
	"github.com/NinoOnFire/ticashop/pkg/logger"
)

// DiasAvisoVencimiento anticipación del recordatorio de cobranza.
const DiasAvisoVencimiento = 3

// VencimientosUseCase recordatorios de cobranza: facturas pendientes que
// vencen en exactamente DiasAvisoVencimiento días y facturas ya vencidas.
// Cada cliente recibe su recordatorio y el administrador un resumen.
type VencimientosUseCase struct {
	docRepo     repository.DocumentoRepository
	clienteRepo repository.ClienteRepository
	mailer      Mailer
	adminEmail  string
	log         *logger.Logger
}

// NewVencimientosUseCase construye el caso de uso.
func NewVencimientosUseCase(docRepo repository.DocumentoRepository, clienteRepo repository.ClienteRepository, mailer Mailer, adminEmail string, log *logger.Logger) *VencimientosUseCase {
	return &VencimientosUseCase{docRepo: docRepo, clienteRepo: clienteRepo, mailer: mailer, adminEmail: adminEmail, log: log}
}

// ResumenRecordatorios conteo de recordatorios procesados en una corrida.
type ResumenRecordatorios struct {
	PorVencer int
	Vencidas  int
	Enviados  int
	Fallidos  int
}

// EnviarRecordatorios corre el ciclo completo de recordatorios para la
// fecha dada. Un envío fallido se registra y no detiene la corrida.
func (uc *VencimientosUseCase) EnviarRecordatorios(ctx context.Context, hoy time.Time) (*ResumenRecordatorios, error) {
	vencimiento := hoy.AddDate(0, 0, DiasAvisoVencimiento)
	porVencer, err := uc.docRepo.ListFacturasPorVencer(ctx, vencimiento)
	if err != nil {
		return nil, err
	}
	vencidas, err := uc.docRepo.ListFacturasVencidas(ctx, hoy)
	if err != nil {
		return nil, err
	}

	resumen := &ResumenRecordatorios{PorVencer: len(porVencer), Vencidas: len(vencidas)}
	var lineasResumen []string

	for _, doc := range porVencer {
		asunto := fmt.Sprintf("Recordatorio: Factura %d vence el %s", doc.Folio, doc.FechaVencimiento.Format("02-01-2006"))
		cuerpo := fmt.Sprintf(
			"Estimado(a) %s (%s):\n\nSu factura N°%d por $%s vence el %s.\nLe recordamos regularizar el pago antes de esa fecha.\n",
			doc.RazonSocial, rut.Formatear(doc.RUT), doc.Folio, doc.Total.StringFixed(0), doc.FechaVencimiento.Format("02-01-2006"),
		)
		uc.enviar(ctx, doc, asunto, cuerpo, resumen)
		lineasResumen = append(lineasResumen, fmt.Sprintf("POR VENCER  Factura %d  %s  $%s", doc.Folio, doc.RazonSocial, doc.Total.StringFixed(0)))
	}
	for _, doc := range vencidas {
		asunto := fmt.Sprintf("Factura %d vencida", doc.Folio)
		cuerpo := fmt.Sprintf(
			"Estimado(a) %s (%s):\n\nSu factura N°%d por $%s se encuentra vencida desde el %s.\nPor favor regularice el pago a la brevedad.\n",
			doc.RazonSocial, rut.Formatear(doc.RUT), doc.Folio, doc.Total.StringFixed(0), doc.FechaVencimiento.Format("02-01-2006"),
		)
		uc.enviar(ctx, doc, asunto, cuerpo, resumen)
		lineasResumen = append(lineasResumen, fmt.Sprintf("VENCIDA     Factura %d  %s  $%s", doc.Folio, doc.RazonSocial, doc.Total.StringFixed(0)))
	}

	if uc.adminEmail != "" && len(lineasResumen) > 0 {
		asunto := fmt.Sprintf("Resumen de cobranza %s: %d por vencer, %d vencidas", hoy.Format("02-01-2006"), resumen.PorVencer, resumen.Vencidas)
		if err := uc.mailer.Enviar(ctx, uc.adminEmail, asunto, strings.Join(lineasResumen, "\n")+"\n"); err != nil {
			uc.log.Error().Err(err).Msg("no se pudo enviar el resumen de cobranza")
			resumen.Fallidos++
		} else {
			resumen.Enviados++
		}
	}
	uc.log.Info().
		Int("por_vencer", resumen.PorVencer).
		Int("vencidas", resumen.Vencidas).
		Int("enviados", resumen.Enviados).
		Int("fallidos", resumen.Fallidos).
		Msg("corrida de recordatorios completada")
	return resumen, nil
}

// enviar manda el recordatorio al email de facturación del cliente.
func (uc *VencimientosUseCase) enviar(ctx context.Context, doc *entity.DocumentoVenta, asunto, cuerpo string, resumen *ResumenRecordatorios) {
	cliente, err := uc.clienteRepo.GetByID(ctx, doc.ClienteID)
	if err != nil || cliente == nil || cliente.EmailFacturacion == "" {
		uc.log.Warn().Str("documento_id", doc.ID).Msg("cliente sin email de facturación, recordatorio omitido")
		resumen.Fallidos++
		return
	}
	if err := uc.mailer.Enviar(ctx, cliente.EmailFacturacion, asunto, cuerpo); err != nil {
		uc.log.Error().Err(err).Str("documento_id", doc.ID).Str("para", cliente.EmailFacturacion).Msg("falló el envío del recordatorio")
		resumen.Fallidos++
		return
	}
	resumen.Enviados++
}
