// Package email implements a phonecrawl.ResultSink that mails a crawl
// summary with the result files attached.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/fwojciec/phonecrawl"
	"github.com/jordan-wright/email"
)

// Environment variables holding the SMTP settings.
const (
	EnvHost     = "PHONECRAWL_SMTP_HOST"
	EnvPort     = "PHONECRAWL_SMTP_PORT"
	EnvUser     = "PHONECRAWL_SMTP_USER"
	EnvPassword = "PHONECRAWL_SMTP_PASSWORD"
	EnvFrom     = "PHONECRAWL_SMTP_FROM"
	EnvTo       = "PHONECRAWL_SMTP_TO"
)

// DefaultPort is the SMTP submission port used when none is configured.
const DefaultPort = 587

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
}

// ConfigFromEnv reads the SMTP settings from the environment using getenv.
// Host and at least one recipient are required. From defaults to User.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Host:     strings.TrimSpace(getenv(EnvHost)),
		Port:     DefaultPort,
		User:     getenv(EnvUser),
		Password: getenv(EnvPassword),
		From:     getenv(EnvFrom),
	}
	if cfg.Host == "" {
		return Config{}, phonecrawl.Errorf(phonecrawl.EINVALID, "%s required", EnvHost)
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return Config{}, phonecrawl.Errorf(phonecrawl.EINVALID, "invalid %s %q", EnvPort, v)
		}
		cfg.Port = port
	}
	for _, to := range strings.Split(getenv(EnvTo), ",") {
		if to = strings.TrimSpace(to); to != "" {
			cfg.To = append(cfg.To, to)
		}
	}
	if len(cfg.To) == 0 {
		return Config{}, phonecrawl.Errorf(phonecrawl.EINVALID, "%s required", EnvTo)
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	if cfg.From == "" {
		return Config{}, phonecrawl.Errorf(phonecrawl.EINVALID, "%s or %s required", EnvFrom, EnvUser)
	}
	return cfg, nil
}

// Addr returns the host:port address of the SMTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SendFunc delivers a message. It matches (*email.Email).Send.
type SendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// Ensure Notifier implements phonecrawl.ResultSink at compile time.
var _ phonecrawl.ResultSink = (*Notifier)(nil)

// Notifier mails a summary of each published report.
type Notifier struct {
	config      Config
	attachments func(site string) []string
	send        SendFunc
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAttachments sets the function returning the files to attach for a site.
func WithAttachments(fn func(site string) []string) Option {
	return func(n *Notifier) {
		n.attachments = fn
	}
}

// WithSendFunc replaces SMTP delivery.
func WithSendFunc(fn SendFunc) Option {
	return func(n *Notifier) {
		n.send = fn
	}
}

// NewNotifier creates a new Notifier.
func NewNotifier(cfg Config, opts ...Option) *Notifier {
	n := &Notifier{
		config: cfg,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewMessage builds the summary message for report.
func (n *Notifier) NewMessage(report *phonecrawl.Report) (*email.Email, error) {
	mail := email.NewEmail()
	mail.From = fmt.Sprintf("phonecrawl <%s>", n.config.From)
	mail.To = n.config.To
	mail.Subject = fmt.Sprintf("Crawl results for %s", report.Site)

	body := fmt.Sprintf(`Hello,

Please find attached the numbers collected from %s.

Total numbers: %d
Pages visited: %d
Pages failed: %d
Queue remaining: %d
`, report.Site, len(report.Numbers), report.Stats.PagesVisited, report.Stats.PagesFailed, report.Stats.QueueRemaining)
	mail.Text = []byte(body)

	if n.attachments != nil {
		for _, path := range n.attachments(report.Site) {
			if _, err := mail.AttachFile(path); err != nil {
				return nil, fmt.Errorf("attach %s: %w", path, err)
			}
		}
	}

	return mail, nil
}

// Publish mails the report summary. Servers that do not support AUTH are
// retried without authentication.
func (n *Notifier) Publish(ctx context.Context, report *phonecrawl.Report) error {
	mail, err := n.NewMessage(report)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if n.config.User != "" {
		auth = smtp.PlainAuth("", n.config.User, n.config.Password, n.config.Host)
	}

	err = n.send(mail, n.config.Addr(), auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = n.send(mail, n.config.Addr(), nil)
	}
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
