package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"vendazap/internal/gateway"
	"vendazap/internal/nlu"
	"vendazap/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDetector returns canned fulfillment messages
type fakeDetector struct {
	calls    int
	sessions []string
	messages []nlu.Message
	err      error
}

func (f *fakeDetector) DetectIntent(ctx context.Context, sessionID, text string) ([]nlu.Message, error) {
	f.calls++
	f.sessions = append(f.sessions, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.messages, nil
}

// fakeSender records outbound messages
type fakeSender struct {
	sent    []*gateway.OutboundMessage
	failOn  int // 1-based index of the call to fail; 0 = never
	callNum int
}

func (f *fakeSender) SendMessage(ctx context.Context, msg *gateway.OutboundMessage) (*gateway.SendResult, error) {
	f.callNum++
	if f.failOn != 0 && f.callNum == f.failOn {
		return nil, errors.New("gateway unavailable")
	}
	f.sent = append(f.sent, msg)
	return &gateway.SendResult{SID: "SM1"}, nil
}

func newWebhookRouter(detector nlu.Detector, sender gateway.Sender, validateSig bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewGatewayWebhookHandler(
		detector,
		sender,
		store.NewNoop(),
		"whatsapp:+5511000000000",
		"secret-token",
		validateSig,
		zap.NewNop(),
	)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postForm(router *gin.Engine, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/gateway", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Host = "bridge.example.com"
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEmptyBodyIsAcknowledgedNoOp(t *testing.T) {
	detector := &fakeDetector{}
	sender := &fakeSender{}
	router := newWebhookRouter(detector, sender, false)

	form := url.Values{}
	form.Set("From", "whatsapp:+5511999998888")
	form.Set("To", "whatsapp:+5511000000000")

	w := postForm(router, form, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sent!", w.Body.String())
	assert.Equal(t, 0, detector.calls)
	assert.Empty(t, sender.sent)
}

func TestAbsentBodyFieldIsAcknowledgedNoOp(t *testing.T) {
	detector := &fakeDetector{}
	sender := &fakeSender{}
	router := newWebhookRouter(detector, sender, false)

	w := postForm(router, url.Values{}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sent!", w.Body.String())
	assert.Equal(t, 0, detector.calls)
	assert.Empty(t, sender.sent)
}

func TestSegmentsRelayedInOrder(t *testing.T) {
	detector := &fakeDetector{messages: []nlu.Message{
		nlu.NewTextMessage("primeiro"),
		nlu.NewMediaMessage("https://cdn.example.com/menu.png", "cardápio"),
		nlu.NewTextMessage("terceiro"),
	}}
	sender := &fakeSender{}
	router := newWebhookRouter(detector, sender, false)

	form := url.Values{}
	form.Set("Body", "quero ver o cardápio")
	form.Set("From", "whatsapp:+5511999998888")
	form.Set("To", "whatsapp:+5511000000000")

	w := postForm(router, form, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sent!", w.Body.String())

	// Session keyed by the sender's number, without the channel prefix
	require.Len(t, detector.sessions, 1)
	assert.Equal(t, "+5511999998888", detector.sessions[0])

	require.Len(t, sender.sent, 3)
	assert.Equal(t, "primeiro", sender.sent[0].Body)
	assert.Equal(t, "cardápio", sender.sent[1].Body)
	assert.Equal(t, "https://cdn.example.com/menu.png", sender.sent[1].MediaURL)
	assert.Equal(t, "terceiro", sender.sent[2].Body)

	for _, msg := range sender.sent {
		assert.Equal(t, "whatsapp:+5511000000000", msg.From)
		assert.Equal(t, "whatsapp:+5511999998888", msg.To)
	}
}

func TestDetectorFailureIsSwallowed(t *testing.T) {
	detector := &fakeDetector{err: errors.New("nlu down")}
	sender := &fakeSender{}
	router := newWebhookRouter(detector, sender, false)

	form := url.Values{}
	form.Set("Body", "oi")
	form.Set("From", "whatsapp:+5511999998888")

	w := postForm(router, form, nil)

	// The gateway still gets its acknowledgment; the user gets silence
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sent!", w.Body.String())
	assert.Empty(t, sender.sent)
}

func TestFailedSendDoesNotHaltLaterSegments(t *testing.T) {
	detector := &fakeDetector{messages: []nlu.Message{
		nlu.NewTextMessage("primeiro"),
		nlu.NewTextMessage("segundo"),
	}}
	sender := &fakeSender{failOn: 1}
	router := newWebhookRouter(detector, sender, false)

	form := url.Values{}
	form.Set("Body", "oi")
	form.Set("From", "whatsapp:+5511999998888")

	w := postForm(router, form, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "segundo", sender.sent[0].Body)
}

func TestSignatureRejected(t *testing.T) {
	detector := &fakeDetector{}
	sender := &fakeSender{}
	router := newWebhookRouter(detector, sender, true)

	form := url.Values{}
	form.Set("Body", "oi")
	form.Set("From", "whatsapp:+5511999998888")

	w := postForm(router, form, map[string]string{"X-Twilio-Signature": "forged"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 0, detector.calls)
}

func TestSignatureAccepted(t *testing.T) {
	detector := &fakeDetector{messages: []nlu.Message{nlu.NewTextMessage("oi!")}}
	sender := &fakeSender{}
	router := newWebhookRouter(detector, sender, true)

	form := url.Values{}
	form.Set("Body", "oi")
	form.Set("From", "whatsapp:+5511999998888")

	// Sign the way the gateway does: URL plus params in lexical order
	mac := hmac.New(sha1.New, []byte("secret-token"))
	mac.Write([]byte("http://bridge.example.com/api/v1/webhook/gateway"))
	for _, key := range []string{"Body", "From"} {
		mac.Write([]byte(key))
		mac.Write([]byte(form.Get(key)))
	}
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	w := postForm(router, form, map[string]string{"X-Twilio-Signature": signature})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, detector.calls)
	require.Len(t, sender.sent, 1)
}
