package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"testing"

	"voice-chatbot-be/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	answer string
	err    error
}

func (f *fakeChatService) Respond(ctx context.Context, query string, organisationId, projectId int) (string, error) {
	return f.answer, f.err
}

type fakeAudioService struct {
	url   string
	err   error
	calls int
}

func (f *fakeAudioService) TranscribeUpload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return "", nil
}

func (f *fakeAudioService) SynthesizeReply(ctx context.Context, text string) (string, error) {
	f.calls++
	return f.url, f.err
}

type dispatchLogger struct{}

func (dispatchLogger) Debug(module, message string, details map[string]interface{}) {}
func (dispatchLogger) Info(module, message string, details map[string]interface{})  {}
func (dispatchLogger) Warn(module, message string, details map[string]interface{})  {}
func (dispatchLogger) Error(module, message string, details map[string]interface{}) {}
func (dispatchLogger) Sync() error                                                  { return nil }

func collectFrames(t *testing.T, d *Dispatcher, raw string) []map[string]interface{} {
	t.Helper()
	var frames []map[string]interface{}
	d.Dispatch(context.Background(), []byte(raw), func(data []byte) {
		var frame map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &frame))
		frames = append(frames, frame)
	})
	return frames
}

func TestDispatchMalformedJSON(t *testing.T) {
	d := NewDispatcher(&fakeChatService{}, &fakeAudioService{}, true, dispatchLogger{})

	frames := collectFrames(t, d, "{not json")

	require.Len(t, frames, 1)
	assert.Equal(t, "error", frames[0]["type"])
	assert.Equal(t, "Invalid message format", frames[0]["message"])
}

func TestDispatchUnknownType(t *testing.T) {
	d := NewDispatcher(&fakeChatService{}, &fakeAudioService{}, true, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"shutdown"}`)

	require.Len(t, frames, 1)
	assert.Equal(t, "error", frames[0]["type"])
	assert.Contains(t, frames[0]["message"], "shutdown")
}

func TestDispatchPing(t *testing.T) {
	d := NewDispatcher(&fakeChatService{}, &fakeAudioService{}, true, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"ping"}`)

	require.Len(t, frames, 1)
	assert.Equal(t, map[string]interface{}{"type": "pong"}, frames[0])
}

func TestDispatchUserMessage(t *testing.T) {
	d := NewDispatcher(&fakeChatService{answer: "Returns are accepted within 30 days."}, &fakeAudioService{}, true, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"user_message","text":"What is the return policy?"}`)

	// typing indicator, then the reply; nothing after it
	require.Len(t, frames, 2)
	assert.Equal(t, "typing", frames[0]["type"])
	assert.Equal(t, true, frames[0]["isTyping"])

	assert.Equal(t, "bot_response", frames[1]["type"])
	assert.Equal(t, "Returns are accepted within 30 days.", frames[1]["text"])
	assert.Equal(t, false, frames[1]["isVoice"])
	assert.Greater(t, frames[1]["timestamp"].(float64), 0.0)
}

func TestDispatchEmptyMessage(t *testing.T) {
	d := NewDispatcher(&fakeChatService{err: service.ErrEmptyMessage}, &fakeAudioService{}, true, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"user_message","text":"   "}`)

	require.Len(t, frames, 2)
	assert.Equal(t, "error", frames[1]["type"])
	assert.Equal(t, "Empty message received", frames[1]["message"])
}

func TestDispatchPipelineFailure(t *testing.T) {
	d := NewDispatcher(&fakeChatService{err: errors.New("index unavailable")}, &fakeAudioService{}, true, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"user_message","text":"anything"}`)

	require.Len(t, frames, 2)
	assert.Equal(t, "error", frames[1]["type"])
	assert.Equal(t, "Failed to process message", frames[1]["message"])
}

func TestDispatchVoiceMessageAttachesAudio(t *testing.T) {
	audio := &fakeAudioService{url: "http://localhost:3000/static/audio/abc.mp3"}
	d := NewDispatcher(&fakeChatService{answer: "Here you go."}, audio, true, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"user_message","text":"tell me","isVoice":true}`)

	require.Len(t, frames, 2)
	assert.Equal(t, "bot_response", frames[1]["type"])
	assert.Equal(t, true, frames[1]["isVoice"])
	assert.Equal(t, audio.url, frames[1]["audioUrl"])
	assert.Equal(t, 1, audio.calls)
}

func TestDispatchVoiceSynthesisFailureIsNonFatal(t *testing.T) {
	audio := &fakeAudioService{err: errors.New("tts down")}
	d := NewDispatcher(&fakeChatService{answer: "Here you go."}, audio, true, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"user_message","text":"tell me","isVoice":true}`)

	require.Len(t, frames, 2)
	assert.Equal(t, "bot_response", frames[1]["type"])
	assert.Equal(t, "Here you go.", frames[1]["text"])
	_, hasAudio := frames[1]["audioUrl"]
	assert.False(t, hasAudio, "failed synthesis must omit audioUrl")
}

func TestDispatchVoiceDisabledSkipsSynthesis(t *testing.T) {
	audio := &fakeAudioService{url: "http://localhost:3000/static/audio/abc.mp3"}
	d := NewDispatcher(&fakeChatService{answer: "Here you go."}, audio, false, dispatchLogger{})

	frames := collectFrames(t, d, `{"type":"user_message","text":"tell me","isVoice":true}`)

	require.Len(t, frames, 2)
	assert.Zero(t, audio.calls)
}
