package openai

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
)

// TranscriptionRequest is the request to the audio transcriptions
// endpoint. Reader supplies the audio bytes; Filename must carry a
// recognized audio extension so the server can pick a decoder.
type TranscriptionRequest struct {
	Reader   io.Reader
	Filename string
	Model    string
	// Prompt guides the model's style or continues a previous segment.
	Prompt         string
	ResponseFormat string
	Temperature    *float32
	// Language is the input language in ISO-639-1 form.
	Language string
}

// Transcription is the JSON-format transcriptions response.
type Transcription struct {
	Text string `json:"text"`
}

// CreateTranscription transcribes audio into the input language.
func (c *Client) CreateTranscription(ctx context.Context, req TranscriptionRequest) (*Transcription, error) {
	var out Transcription
	err := c.postForm(ctx, "audio/transcriptions", func(w *multipart.Writer) error {
		if err := writeAudioFields(w, req.Reader, req.Filename, req.Model, req.Prompt, req.ResponseFormat, req.Temperature); err != nil {
			return err
		}
		if req.Language != "" {
			return w.WriteField("language", req.Language)
		}
		return nil
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTranscriptionPath transcribes an audio file from disk.
func (c *Client) CreateTranscriptionPath(ctx context.Context, path, model string) (*Transcription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()
	return c.CreateTranscription(ctx, TranscriptionRequest{
		Reader:   f,
		Filename: filepath.Base(path),
		Model:    model,
	})
}

// TranslationRequest is the request to the audio translations endpoint.
type TranslationRequest struct {
	Reader         io.Reader
	Filename       string
	Model          string
	Prompt         string
	ResponseFormat string
	Temperature    *float32
}

// Translation is the JSON-format translations response.
type Translation struct {
	Text string `json:"text"`
}

// CreateTranslation translates audio into English.
func (c *Client) CreateTranslation(ctx context.Context, req TranslationRequest) (*Translation, error) {
	var out Translation
	err := c.postForm(ctx, "audio/translations", func(w *multipart.Writer) error {
		return writeAudioFields(w, req.Reader, req.Filename, req.Model, req.Prompt, req.ResponseFormat, req.Temperature)
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func writeAudioFields(w *multipart.Writer, r io.Reader, filename, model, prompt, responseFormat string, temperature *float32) error {
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := w.WriteField("model", model); err != nil {
		return err
	}
	if prompt != "" {
		if err := w.WriteField("prompt", prompt); err != nil {
			return err
		}
	}
	if responseFormat != "" {
		if err := w.WriteField("response_format", responseFormat); err != nil {
			return err
		}
	}
	if temperature != nil {
		if err := w.WriteField("temperature", strconv.FormatFloat(float64(*temperature), 'f', -1, 32)); err != nil {
			return err
		}
	}
	return nil
}
