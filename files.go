package openai

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// File purposes accepted by the files endpoint.
const (
	FilePurposeAssistants = "assistants"
	FilePurposeBatch      = "batch"
	FilePurposeFineTune   = "fine-tune"
	FilePurposeVision     = "vision"
	FilePurposeUserData   = "user_data"
)

// File is a file stored with the API.
type File struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	Bytes    int64  `json:"bytes"`
	Created  int64  `json:"created_at"`
	Filename string `json:"filename"`
	Purpose  string `json:"purpose"`
}

// FileDeletion is the response to deleting a file.
type FileDeletion struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// UploadFile uploads the reader's contents under the given filename and
// purpose.
func (c *Client) UploadFile(ctx context.Context, r io.Reader, filename, purpose string) (*File, error) {
	var out File
	err := c.postForm(ctx, "files", func(w *multipart.Writer) error {
		if err := w.WriteField("purpose", purpose); err != nil {
			return err
		}
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, r)
		return err
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFilePath uploads a file from disk, using its base name as the
// stored filename.
func (c *Client) UploadFilePath(ctx context.Context, path, purpose string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return c.UploadFile(ctx, f, filepath.Base(path), purpose)
}

// ListFiles returns the files uploaded by the organization.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	var out List[File]
	if err := c.get(ctx, "files", &out, false); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetFile fetches one file's metadata by identifier.
func (c *Client) GetFile(ctx context.Context, id string) (*File, error) {
	var out File
	if err := c.get(ctx, "files/"+id, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFileContent downloads a file's contents. The caller must close the
// returned reader.
func (c *Client) GetFileContent(ctx context.Context, id string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, "GET", "files/"+id+"/content", nil, "", false)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, decodeAPIError(resp.StatusCode, body)
	}
	return resp.Body, nil
}

// DeleteFile deletes a stored file.
func (c *Client) DeleteFile(ctx context.Context, id string) (*FileDeletion, error) {
	var out FileDeletion
	if err := c.del(ctx, "files/"+id, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
