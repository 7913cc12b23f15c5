package service

import (
	"context"
	"event_ticketing/model"
	"event_ticketing/utils"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"
)

// passQR renders the attachment mailed with each pass.
var passQR = utils.QRCode{Size: 256, Level: qrcode.High}

type Notifier interface {
	PaymentSucceeded(ctx context.Context, payment *model.Payment, passes []model.Attendee, tickets []model.Ticket) error
	PaymentFailed(ctx context.Context, payment *model.Payment) error
}

var successTemplate = template.Must(template.New("payment_success").Parse(`<p>Hi {{.Name}},</p>
<p>Your payment <b>{{.Reference}}</b> of {{.Amount}} {{.Currency}} for <b>{{.EventTitle}}</b> was successful.</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Check-in code</th><th>Table</th><th>Seat</th><th>Special request</th><th>Car access</th></tr>
{{range .Rows}}<tr><td>{{.Code}}</td><td>{{.Table}}</td><td>{{.Seat}}</td><td>{{.SpecialRequest}}</td><td>{{if .CarAccess}}Yes{{else}}No{{end}}</td></tr>
{{end}}</table>
<p>Show the attached QR code at the entrance.</p>`))

var failureTemplate = template.Must(template.New("payment_failed").Parse(`<p>Hi {{.Name}},</p>
<p>Your payment <b>{{.Reference}}</b> for <b>{{.EventTitle}}</b> could not be completed. No tickets were issued.</p>`))

type passRow struct {
	Code           string
	Table          int
	Seat           int
	SpecialRequest string
	CarAccess      bool
}

type successMail struct {
	Name       string
	Reference  string
	Amount     string
	Currency   string
	EventTitle string
	Rows       []passRow
}

// MailNotifier renders payment outcomes into HTML mail with one QR code per pass.
type MailNotifier struct {
	mailer utils.Mailer
}

func NewMailNotifier(mailer utils.Mailer) *MailNotifier {
	return &MailNotifier{mailer: mailer}
}

func (n *MailNotifier) PaymentSucceeded(ctx context.Context, payment *model.Payment, passes []model.Attendee, tickets []model.Ticket) error {
	data := successMail{
		Name:       payment.Name,
		Reference:  payment.Reference,
		Amount:     payment.Amount.StringFixed(2),
		Currency:   payment.Currency,
		EventTitle: payment.EventTitle,
	}

	byID := make(map[string]model.Ticket, len(tickets))
	for _, t := range tickets {
		byID[t.ID] = t
	}

	var attachments []utils.Attachment
	for _, pass := range passes {
		ticket := byID[pass.TicketId]
		data.Rows = append(data.Rows, passRow{
			Code:           pass.CheckInCode,
			Table:          pass.TableNumber,
			Seat:           pass.SeatNumber,
			SpecialRequest: ticket.SpecialRequest,
			CarAccess:      ticket.CarAccess,
		})

		png, err := passQR.PNG(pass.CheckInCode)
		if err != nil {
			return err
		}
		attachments = append(attachments, utils.Attachment{
			Filename:    fmt.Sprintf("ticket-%s.png", pass.CheckInCode),
			ContentType: "image/png",
			Data:        png,
		})
	}

	body, err := utils.RenderTemplate(successTemplate, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your tickets for %s", payment.EventTitle)
	return n.mailer.Send(payment.Email, subject, body, attachments...)
}

func (n *MailNotifier) PaymentFailed(ctx context.Context, payment *model.Payment) error {
	body, err := utils.RenderTemplate(failureTemplate, payment)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Payment failed for %s", payment.EventTitle)
	return n.mailer.Send(payment.Email, subject, body)
}
