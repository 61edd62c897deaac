package emailsvc

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hagwon/core"
	testutil "github.com/trezcool/hagwon/tests"
)

var admin = mail.Address{Name: "Admin", Address: "admin@hagwon.test"}

func TestConsoleServiceMock_SendMessages(t *testing.T) {
	conf := testutil.NewConfig()
	svc := NewConsoleServiceMock(conf, testutil.Logger{T: t})

	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{admin}, Subject: "plain", BodyStr: "hello"},
		&core.EmailMessage{
			To:           []mail.Address{admin},
			Subject:      "report",
			TemplateName: "promotion_report",
			TemplateData: map[string]interface{}{"Year": 2024, "Promoted": 3},
		},
		&core.EmailMessage{Subject: "no recipients", BodyStr: "dropped"},
		&core.EmailMessage{To: []mail.Address{admin}, Subject: "no content"},
	)

	sent := svc.SentMessages()
	require.Len(t, sent, 2)
	assert.Equal(t, "hello", sent[0].TextContent)
	assert.Contains(t, sent[1].TextContent, "2024")
	assert.Contains(t, sent[1].TextContent, "3")
}

func TestConsoleService_format(t *testing.T) {
	defer func(f func() time.Time) { nowFunc = f }(nowFunc)
	nowFunc = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }

	conf := testutil.NewConfig()
	svc := NewConsoleServiceMock(conf, testutil.Logger{T: t})
	body := svc.format(core.EmailMessage{To: []mail.Address{admin}, Subject: "hi", TextContent: "body"})

	assert.Contains(t, body, "Subject: ["+conf.AppName+"] hi\r\n")
	assert.Contains(t, body, "To: \"Admin\" <admin@hagwon.test>\r\n")
	assert.Contains(t, body, "Date: Fri, 01 Mar 2024 09:00:00 +0000\r\n")
	assert.Contains(t, body, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.Contains(t, body, "\r\n\r\nbody\r\n")
}

func TestSendgridService_send(t *testing.T) {
	var (
		mu   sync.Mutex
		reqs []rest.Request
	)
	defer func(f func(rest.Request) (*rest.Response, error)) { apiFunc = f }(apiFunc)
	apiFunc = func(req rest.Request) (*rest.Response, error) {
		mu.Lock()
		defer mu.Unlock()
		reqs = append(reqs, req)
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}

	conf := testutil.NewConfig()
	conf.SendgridApiKey = "key"
	svc := NewSendgridService(conf, testutil.Logger{T: t})

	res := svc.send(core.EmailMessage{To: []mail.Address{admin}, Subject: "hi", TextContent: "body"})
	require.NotNil(t, res)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)

	require.Len(t, reqs, 1)
	assert.Equal(t, rest.Method(http.MethodPost), reqs[0].Method)
	assert.Equal(t, host+endpoint, reqs[0].BaseURL)

	var payload struct {
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(reqs[0].Body, &payload))
	require.Len(t, payload.Personalizations, 1)
	assert.Equal(t, "["+conf.AppName+"] hi", payload.Personalizations[0].Subject)
	assert.Equal(t, "admin@hagwon.test", payload.Personalizations[0].To[0].Email)
	assert.Equal(t, "body", payload.Content[0].Value)
}

func TestNewService(t *testing.T) {
	conf := testutil.NewConfig()
	conf.Debug = true
	_, ok := NewService(conf, testutil.Logger{T: t}).(*consoleService)
	assert.True(t, ok)

	conf.Debug, conf.SendgridApiKey = false, "key"
	_, ok = NewService(conf, testutil.Logger{T: t}).(*sendgridService)
	assert.True(t, ok)
}
