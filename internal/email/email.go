package email

import (
	"fmt"
	"log/slog"

	"github.com/inbucket/html2text"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	TLS      bool   `mapstructure:"tls"`
}

// Message represents an email message
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string // optional, will be auto-generated from HTML if empty
}

// Client represents an email client
type Client struct {
	cfg SMTPConfig
}

// NewClient creates a new email client
func NewClient(cfg SMTPConfig) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is not configured")
	}
	return &Client{cfg: cfg}, nil
}

// Send sends an email message
func (c *Client) Send(msg *Message) error {
	if msg.Text == "" {
		text, err := htmlToText(msg.HTML)
		if err != nil {
			return fmt.Errorf("failed to convert HTML to text: %w", err)
		}
		msg.Text = text
	}

	m := mail.NewMsg()
	if err := m.From(c.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	client, err := c.dial()
	if err != nil {
		return err
	}

	return client.DialAndSend(m)
}

func (c *Client) dial() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
	}

	if c.cfg.TLS {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	if c.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.cfg.Username),
			mail.WithPassword(c.cfg.Password),
		)
	}

	client, err := mail.NewClient(c.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return client, nil
}

// htmlToText converts HTML to plain text
func htmlToText(htmlContent string) (string, error) {
	text, err := html2text.FromString(htmlContent, html2text.Options{
		PrettyTables: true,
		OmitLinks:    false,
	})
	if err != nil {
		slog.Error("failed to convert HTML to text", "error", err)
		return "", err
	}
	return text, nil
}
