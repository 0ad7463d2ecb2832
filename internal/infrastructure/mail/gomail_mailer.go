// Package mail implementa el puerto Mailer sobre SMTP usando gomail.
package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/NinoOnFire/ticashop/internal/application/facturacion"
	"github.com/NinoOnFire/ticashop/pkg/config"
)

var _ facturacion.Mailer = (*GomailMailer)(nil)

// GomailMailer envía correos de texto plano vía SMTP.
type GomailMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewGomailMailer construye el mailer desde la configuración SMTP.
func NewGomailMailer(cfg config.SMTPConfig) *GomailMailer {
	return &GomailMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Enviar envía un correo de texto plano. Respeta la cancelación del contexto
// antes de abrir la conexión; gomail no soporta cancelación en vuelo.
func (m *GomailMailer) Enviar(ctx context.Context, para, asunto, cuerpo string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", para)
	msg.SetHeader("Subject", asunto)
	msg.SetBody("text/plain", cuerpo)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", para, err)
	}
	return nil
}
