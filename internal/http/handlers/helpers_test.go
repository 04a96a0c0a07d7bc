package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/http/middlewares"
	"github.com/jobhive/jobhive/internal/mailer"
)

// Keep gin quiet during tests.
func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asUser stands in for the auth guard: it seeds the identity the handler
// would normally get from a verified token.
func asUser(id, email, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middlewares.SetAuthContext(c, id, email, role)
		c.Next()
	}
}

func doRaw(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelopeBody struct {
	Status      bool            `json:"status"`
	Message     string          `json:"message"`
	LongMessage string          `json:"longMessage"`
	Data        json.RawMessage `json:"data"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var body envelopeBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

// recordingMailer captures sends so tests can assert on notifications.
type recordingMailer struct {
	verifications []mailer.VerificationInput
	passwords     []mailer.PasswordChangedInput
	deletions     []mailer.AccountDeletedInput
	applications  []mailer.ApplicationSubmittedInput
}

func (m *recordingMailer) SendVerification(_ context.Context, in mailer.VerificationInput) error {
	m.verifications = append(m.verifications, in)
	return nil
}

func (m *recordingMailer) SendPasswordChanged(_ context.Context, in mailer.PasswordChangedInput) error {
	m.passwords = append(m.passwords, in)
	return nil
}

func (m *recordingMailer) SendAccountDeleted(_ context.Context, in mailer.AccountDeletedInput) error {
	m.deletions = append(m.deletions, in)
	return nil
}

func (m *recordingMailer) SendApplicationSubmitted(_ context.Context, in mailer.ApplicationSubmittedInput) error {
	m.applications = append(m.applications, in)
	return nil
}
