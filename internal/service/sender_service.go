package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"truckbook/internal/utils"
)

const emailSubject = "FASTIQ Logistics: fleet update"

type emailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type smsClient interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// EmailNotifier sends a plain-text copy of each announcement through SendGrid.
type EmailNotifier struct {
	client     emailClient
	from       *mail.Email
	recipients []string
}

func NewEmailNotifier(apiKey, fromEmail, fromName string, recipients []string) *EmailNotifier {
	if fromName == "" {
		fromName = "FASTIQ Logistics"
	}
	return &EmailNotifier{
		client:     sendgrid.NewSendClient(apiKey),
		from:       mail.NewEmail(fromName, fromEmail),
		recipients: recipients,
	}
}

func (n *EmailNotifier) Announce(ctx context.Context, message string) error {
	body := utils.PlainText(message)
	var errs []error
	for _, to := range n.recipients {
		email := mail.NewSingleEmail(n.from, emailSubject, mail.NewEmail("", to), body, "")
		response, err := n.client.SendWithContext(ctx, email)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to send email to %s: %w", to, err))
			continue
		}
		if response.StatusCode < 200 || response.StatusCode >= 300 {
			errs = append(errs, fmt.Errorf("SendGrid returned status %d for %s: %s", response.StatusCode, to, response.Body))
			continue
		}
		log.WithFields(log.Fields{"to": to, "status": response.StatusCode}).Debug("Announcement e-mailed")
	}
	return errors.Join(errs...)
}

// SMSNotifier texts each announcement through Twilio.
type SMSNotifier struct {
	client     smsClient
	from       string
	recipients []string
}

func NewSMSNotifier(accountSid, authToken, fromNumber string, recipients []string) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})
	return &SMSNotifier{client: client.Api, from: fromNumber, recipients: recipients}
}

func (n *SMSNotifier) Announce(ctx context.Context, message string) error {
	body := utils.PlainText(message)
	var errs []error
	for _, to := range n.recipients {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("SMS to %s not sent: %w", to, err))
			continue
		}
		if !strings.HasPrefix(to, "+") {
			log.WithField("to", to).Warn("SMS recipient is not in E.164 format, delivery may fail")
		}
		params := &openapi.CreateMessageParams{}
		params.SetTo(to)
		params.SetFrom(n.from)
		params.SetBody(body)

		resp, err := n.client.CreateMessage(params)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to send SMS to %s: %w", to, err))
			continue
		}
		if resp != nil && resp.Sid != nil {
			log.WithFields(log.Fields{"to": to, "sid": *resp.Sid}).Debug("Announcement texted")
		}
	}
	return errors.Join(errs...)
}
