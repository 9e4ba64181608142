package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"voice-chatbot-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	answer   string
	err      error
	gotQuery string
}

func (f *fakeChatService) Respond(ctx context.Context, query string, organisationId, projectId int) (string, error) {
	f.gotQuery = query
	return f.answer, f.err
}

type fakeAudioService struct {
	transcript string
	audioURL   string
}

func (f *fakeAudioService) TranscribeUpload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return f.transcript, nil
}

func (f *fakeAudioService) SynthesizeReply(ctx context.Context, text string) (string, error) {
	return f.audioURL, nil
}

func newChatTestApp(chat *fakeChatService, audio *fakeAudioService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewChatController(chat, audio, true).RegisterRoutes(api)
	return app
}

func decodeBody(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&payload))
	return payload
}

func TestMessageReturnsFlatPayload(t *testing.T) {
	chat := &fakeChatService{answer: "You can return items within 30 days."}
	app := newChatTestApp(chat, &fakeAudioService{})

	req := httptest.NewRequest("POST", "/api/v1/message", bytes.NewBufferString(`{"message":"What is the return policy?"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)

	// Answer fields live at the top level, no envelope around them
	assert.Equal(t, "You can return items within 30 days.", payload["answer"])
	assert.Equal(t, false, payload["is_voice"])
	assert.Greater(t, payload["timestamp"].(float64), 0.0)
	assert.NotContains(t, payload, "data")
	assert.NotContains(t, payload, "success")
}

func TestChatTextReturnsFlatPayload(t *testing.T) {
	chat := &fakeChatService{answer: "Shipping takes 3-5 business days."}
	app := newChatTestApp(chat, &fakeAudioService{})

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("text", "How long does shipping take?"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/api/v1/chat", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "Shipping takes 3-5 business days.", payload["answer"])
	assert.Equal(t, false, payload["is_voice"])
	assert.NotContains(t, payload, "data")
	assert.Equal(t, "How long does shipping take?", chat.gotQuery)
}

func TestChatRejectsTextAndAudioTogether(t *testing.T) {
	app := newChatTestApp(&fakeChatService{}, &fakeAudioService{})

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("text", "hello"))
	part, err := form.CreateFormFile("audio", "question.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-audio-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/api/v1/chat", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestChatRejectsNeitherTextNorAudio(t *testing.T) {
	app := newChatTestApp(&fakeChatService{}, &fakeAudioService{})

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/api/v1/chat", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestChatVoiceCarriesTranscriptAndAudioURL(t *testing.T) {
	chat := &fakeChatService{answer: "We are open until 6pm."}
	audio := &fakeAudioService{
		transcript: "When do you close?",
		audioURL:   "http://localhost:3000/static/audio/reply.mp3",
	}
	app := newChatTestApp(chat, audio)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("audio", "question.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-audio-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/api/v1/chat", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeBody(t, resp.Body)
	assert.Equal(t, "We are open until 6pm.", payload["answer"])
	assert.Equal(t, "When do you close?", payload["transcript"])
	assert.Equal(t, audio.audioURL, payload["audio_url"])
	assert.Equal(t, true, payload["is_voice"])
	assert.Equal(t, "When do you close?", chat.gotQuery)
}
