package email_test

import (
	"context"
	"errors"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/phonecrawl"
	phoneemail "github.com/fwojciec/phonecrawl/email"
	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestConfigFromEnv(t *testing.T) {
	t.Parallel()

	t.Run("reads all settings", func(t *testing.T) {
		t.Parallel()

		cfg, err := phoneemail.ConfigFromEnv(env(map[string]string{
			phoneemail.EnvHost:     "smtp.example.com",
			phoneemail.EnvPort:     "2525",
			phoneemail.EnvUser:     "crawler@example.com",
			phoneemail.EnvPassword: "secret",
			phoneemail.EnvFrom:     "results@example.com",
			phoneemail.EnvTo:       "a@example.com, b@example.com",
		}))

		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com:2525", cfg.Addr())
		assert.Equal(t, "results@example.com", cfg.From)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.To)
		assert.Equal(t, "secret", cfg.Password)
	})

	t.Run("defaults port and sender", func(t *testing.T) {
		t.Parallel()

		cfg, err := phoneemail.ConfigFromEnv(env(map[string]string{
			phoneemail.EnvHost: "smtp.example.com",
			phoneemail.EnvUser: "crawler@example.com",
			phoneemail.EnvTo:   "a@example.com",
		}))

		require.NoError(t, err)
		assert.Equal(t, phoneemail.DefaultPort, cfg.Port)
		assert.Equal(t, "crawler@example.com", cfg.From)
	})

	t.Run("rejects incomplete settings", func(t *testing.T) {
		t.Parallel()

		cases := map[string]map[string]string{
			"missing host":   {phoneemail.EnvTo: "a@example.com", phoneemail.EnvFrom: "x@example.com"},
			"missing to":     {phoneemail.EnvHost: "smtp.example.com", phoneemail.EnvFrom: "x@example.com"},
			"missing sender": {phoneemail.EnvHost: "smtp.example.com", phoneemail.EnvTo: "a@example.com"},
			"bad port": {
				phoneemail.EnvHost: "smtp.example.com", phoneemail.EnvTo: "a@example.com",
				phoneemail.EnvFrom: "x@example.com", phoneemail.EnvPort: "smtp",
			},
		}
		for name, vars := range cases {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				_, err := phoneemail.ConfigFromEnv(env(vars))
				require.Error(t, err)
				assert.Equal(t, phonecrawl.EINVALID, phonecrawl.ErrorCode(err))
			})
		}
	})
}

func testConfig() phoneemail.Config {
	return phoneemail.Config{
		Host:     "smtp.example.com",
		Port:     587,
		User:     "crawler@example.com",
		Password: "secret",
		From:     "crawler@example.com",
		To:       []string{"team@example.com"},
	}
}

func testReport() *phonecrawl.Report {
	return &phonecrawl.Report{
		Site:    "jiji-ci",
		Numbers: []string{"0101010101", "0707070707"},
		Stats:   phonecrawl.Stats{PagesVisited: 42, PagesFailed: 3, QueueRemaining: 7},
	}
}

func TestNotifier_NewMessage(t *testing.T) {
	t.Parallel()

	t.Run("summarizes the report", func(t *testing.T) {
		t.Parallel()

		n := phoneemail.NewNotifier(testConfig())

		msg, err := n.NewMessage(testReport())

		require.NoError(t, err)
		assert.Equal(t, "phonecrawl <crawler@example.com>", msg.From)
		assert.Equal(t, []string{"team@example.com"}, msg.To)
		assert.Equal(t, "Crawl results for jiji-ci", msg.Subject)
		body := string(msg.Text)
		assert.Contains(t, body, "Total numbers: 2")
		assert.Contains(t, body, "Pages visited: 42")
		assert.Contains(t, body, "Pages failed: 3")
		assert.Empty(t, msg.Attachments)
	})

	t.Run("attaches result files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		jsonPath := filepath.Join(dir, "jiji-ci_numbers.json")
		txtPath := filepath.Join(dir, "jiji-ci_numbers.txt")
		require.NoError(t, os.WriteFile(jsonPath, []byte(`["0101010101"]`), 0644))
		require.NoError(t, os.WriteFile(txtPath, []byte("0101010101"), 0644))

		var askedFor string
		n := phoneemail.NewNotifier(testConfig(), phoneemail.WithAttachments(func(site string) []string {
			askedFor = site
			return []string{jsonPath, txtPath}
		}))

		msg, err := n.NewMessage(testReport())

		require.NoError(t, err)
		assert.Equal(t, "jiji-ci", askedFor)
		require.Len(t, msg.Attachments, 2)
		assert.Equal(t, "jiji-ci_numbers.json", msg.Attachments[0].Filename)
		assert.Equal(t, "jiji-ci_numbers.txt", msg.Attachments[1].Filename)
	})

	t.Run("fails when an attachment is missing", func(t *testing.T) {
		t.Parallel()

		n := phoneemail.NewNotifier(testConfig(), phoneemail.WithAttachments(func(string) []string {
			return []string{filepath.Join(t.TempDir(), "missing.csv")}
		}))

		_, err := n.NewMessage(testReport())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing.csv")
	})
}

func TestNotifier_Publish(t *testing.T) {
	t.Parallel()

	t.Run("sends with plain auth", func(t *testing.T) {
		t.Parallel()

		var gotAddr string
		var gotAuth smtp.Auth
		var gotMsg *email.Email
		n := phoneemail.NewNotifier(testConfig(), phoneemail.WithSendFunc(func(e *email.Email, addr string, auth smtp.Auth) error {
			gotMsg, gotAddr, gotAuth = e, addr, auth
			return nil
		}))

		err := n.Publish(context.Background(), testReport())

		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.NotNil(t, gotAuth)
		assert.Equal(t, "Crawl results for jiji-ci", gotMsg.Subject)
	})

	t.Run("retries without auth when server does not support it", func(t *testing.T) {
		t.Parallel()

		var auths []smtp.Auth
		n := phoneemail.NewNotifier(testConfig(), phoneemail.WithSendFunc(func(_ *email.Email, _ string, auth smtp.Auth) error {
			auths = append(auths, auth)
			if auth != nil {
				return errors.New("smtp: server doesn't support AUTH")
			}
			return nil
		}))

		err := n.Publish(context.Background(), testReport())

		require.NoError(t, err)
		require.Len(t, auths, 2)
		assert.Nil(t, auths[1])
	})

	t.Run("returns send errors", func(t *testing.T) {
		t.Parallel()

		n := phoneemail.NewNotifier(testConfig(), phoneemail.WithSendFunc(func(*email.Email, string, smtp.Auth) error {
			return errors.New("connection refused")
		}))

		err := n.Publish(context.Background(), testReport())

		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "connection refused"))
	})

	t.Run("does not send on canceled context", func(t *testing.T) {
		t.Parallel()

		sent := false
		n := phoneemail.NewNotifier(testConfig(), phoneemail.WithSendFunc(func(*email.Email, string, smtp.Auth) error {
			sent = true
			return nil
		}))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := n.Publish(ctx, testReport())

		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, sent)
	})
}
