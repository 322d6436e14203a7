package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Client sends operational alert mail through the SendGrid v3 API.
type Client struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewClient(apiKey string, fromEmail string, fromName string) *Client {
	return &Client{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// SendAlert delivers a plain-text alert to a single recipient.
func (c *Client) SendAlert(ctx context.Context, to string, subject string, content string) error {

	from := mail.NewEmail(c.fromName, c.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(recipient)
	personalization.Subject = subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", content))

	response, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send alert email, status code: %d", response.StatusCode)
	}

	return nil
}

// GetSendGridClient provides access to the internal sendgrid.Client.
func (c *Client) GetSendGridClient() *sendgrid.Client {
	return c.client
}
