package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"voice-chatbot-be/internal/pkg/logger"
	"voice-chatbot-be/internal/repository/memory"
	"voice-chatbot-be/pkg/speech"

	"github.com/google/uuid"
)

type IAudioService interface {
	TranscribeUpload(ctx context.Context, file *multipart.FileHeader) (string, error)
	SynthesizeReply(ctx context.Context, text string) (string, error)
}

type audioService struct {
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	audioRepo   *memory.AudioFileRepository
	staticDir   string
	baseURL     string
	logger      logger.ILogger
}

func NewAudioService(
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	audioRepo *memory.AudioFileRepository,
	staticDir string,
	baseURL string,
	log logger.ILogger,
) IAudioService {
	return &audioService{
		transcriber: transcriber,
		synthesizer: synthesizer,
		audioRepo:   audioRepo,
		staticDir:   staticDir,
		baseURL:     baseURL,
		logger:      log,
	}
}

// TranscribeUpload spools the uploaded audio to a temp file and runs it
// through the transcriber. The temp file is always removed.
func (s *audioService) TranscribeUpload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".webm"
	}

	tmp, err := os.CreateTemp("", "voice-upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	transcript, err := s.transcriber.Transcribe(ctx, tmpPath)
	if err != nil {
		s.logger.Error("AudioService", "Transcription failed", map[string]interface{}{"error": err})
		return "", err
	}

	s.logger.Info("AudioService", "Audio transcribed", map[string]interface{}{"length": len(transcript)})
	return transcript, nil
}

// SynthesizeReply renders the answer to an mp3 under the static dir and
// returns its public URL. The file is registered for TTL cleanup.
func (s *audioService) SynthesizeReply(ctx context.Context, text string) (string, error) {
	audioDir := filepath.Join(s.staticDir, "audio")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	id := uuid.New().String()
	fileName := id + ".mp3"
	path := filepath.Join(audioDir, fileName)

	if err := s.synthesizer.Synthesize(ctx, text, path); err != nil {
		s.logger.Error("AudioService", "Synthesis failed", map[string]interface{}{"error": err})
		return "", err
	}

	url := fmt.Sprintf("%s/static/audio/%s", s.baseURL, fileName)

	s.audioRepo.Save(&memory.AudioFile{
		ID:        id,
		Path:      path,
		URL:       url,
		CreatedAt: time.Now(),
	})

	return url, nil
}
