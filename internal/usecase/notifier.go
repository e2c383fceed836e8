package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/envatex/internal/domain"
)

var responseTmpl = template.Must(template.New("response").Parse(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#1f2937">
<img src="{{.LogoURL}}" alt="Envatex" style="max-height:60px">
<p>Hola {{.Q.CustomerName}},</p>
<p>Gracias por tu consulta. Esta es nuestra respuesta a la cotización #{{.Q.ID}}:</p>
<blockquote style="border-left:4px solid #0ea5e9;padding-left:12px">{{.Response}}</blockquote>
{{if .Q.Items}}<table cellpadding="6" style="border-collapse:collapse">
<tr><th align="left">Producto</th><th align="right">Cantidad</th></tr>
{{range .Q.Items}}<tr><td>{{if .Product}}{{.Product.Name}}{{else}}Producto no disponible{{end}}</td><td align="right">{{.Quantity}}</td></tr>
{{end}}</table>{{end}}
<p>Saludos,<br>Equipo Envatex</p>
</body></html>`))

// Dispatcher emails the customer when an admin responds to a quotation.
type Dispatcher struct {
	Mailer      domain.Mailer
	Enabled     bool
	FrontendURL string
}

func (d *Dispatcher) Notify(ctx context.Context, q *domain.Quotation) domain.EmailOutcome {
	if !d.Enabled || d.Mailer == nil || !d.Mailer.Configured() {
		zlog.Warn().Uint("quotation", q.ID).Msg("SMTP no configurado, se omite envío de email")
		return domain.EmailSkipped
	}
	body, err := d.render(q)
	if err != nil {
		zlog.Error().Err(err).Uint("quotation", q.ID).Msg("render email")
		return domain.EmailFailed
	}
	subject := fmt.Sprintf("Respuesta a tu cotización #%d", q.ID)
	if err := d.Mailer.Send(ctx, q.CustomerEmail, subject, body); err != nil {
		zlog.Error().Err(err).Uint("quotation", q.ID).Str("to", q.CustomerEmail).Msg("email send")
		return domain.EmailFailed
	}
	zlog.Info().Uint("quotation", q.ID).Str("to", q.CustomerEmail).Msg("email de respuesta enviado")
	return domain.EmailSent
}

func (d *Dispatcher) render(q *domain.Quotation) (string, error) {
	resp := ""
	if q.AdminResponse != nil {
		resp = *q.AdminResponse
	}
	var buf bytes.Buffer
	err := responseTmpl.Execute(&buf, struct {
		Q        *domain.Quotation
		Response string
		LogoURL  string
	}{Q: q, Response: resp, LogoURL: d.FrontendURL + "/logo.png"})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
