package utils

import (
	"bytes"
	"errors"
	"event_ticketing/config"
	"fmt"
	"html/template"
	"io"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

var ErrDelivery = errors.New("mail delivery failed")

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer sends one HTML message.
type Mailer interface {
	Send(to, subject, htmlBody string, attachments ...Attachment) error
}

func NewMailer(cfg config.MailConfig) Mailer {
	if cfg.Driver == "email" {
		return NewEmailMailer(cfg)
	}
	return NewGomailMailer(cfg)
}

type GomailMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailMailer(cfg config.MailConfig) *GomailMailer {
	return &GomailMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *GomailMailer) Send(to, subject, htmlBody string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	for _, a := range attachments {
		data := a.Data
		msg.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(data))
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

// EmailMailer sends through jordan-wright/email with PLAIN auth.
type EmailMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewEmailMailer(cfg config.MailConfig) *EmailMailer {
	return &EmailMailer{
		addr: cfg.Host + ":" + strconv.Itoa(cfg.Port),
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		from: cfg.From,
	}
}

func (m *EmailMailer) Send(to, subject, htmlBody string, attachments ...Attachment) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	for _, a := range attachments {
		if _, err := e.Attach(bytes.NewReader(a.Data), a.Filename, a.ContentType); err != nil {
			return fmt.Errorf("%w: attach %s: %v", ErrDelivery, a.Filename, err)
		}
	}

	if err := e.Send(m.addr, m.auth); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

func RenderTemplate(tmpl *template.Template, data any) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
