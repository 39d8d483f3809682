package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
)

// UploadRequest describes a video upload. Content is streamed, so Size is
// only used for progress reporting and may be zero when unknown.
type UploadRequest struct {
	Title       string
	Description string
	Filename    string
	Content     io.Reader
	Size        int64
}

// ProgressFunc receives upload progress. total is zero when the size is
// unknown.
type ProgressFunc func(written, total int64)

// UploadVideo uploads a video as a streamed multipart request. The upload
// is cancellable through ctx; cancelling aborts the request and the
// progress callback stops firing.
func (c *Client) UploadVideo(ctx context.Context, token string, req UploadRequest, progress ProgressFunc) (*Video, error) {
	if req.Content == nil {
		return nil, fmt.Errorf("upload content is required")
	}
	if req.Title == "" {
		return nil, fmt.Errorf("upload title is required")
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(form, req, progress)
		form.Close()
		// Propagate the writer error to the reading side
		pw.CloseWithError(err)
	}()

	httpReq, err := c.newRequest(ctx, "POST", "/api/videos/upload", token, pr)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	var video Video
	if err := c.send(httpReq, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func writeUploadForm(form *multipart.Writer, req UploadRequest, progress ProgressFunc) error {
	if err := form.WriteField("title", req.Title); err != nil {
		return err
	}
	if req.Description != "" {
		if err := form.WriteField("description", req.Description); err != nil {
			return err
		}
	}

	filename := req.Filename
	if filename == "" {
		filename = "video"
	}

	part, err := form.CreateFormFile("video", filepath.Base(filename))
	if err != nil {
		return err
	}

	src := io.Reader(req.Content)
	if progress != nil {
		src = &progressReader{r: req.Content, total: req.Size, fn: progress}
	}

	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to stream upload: %w", err)
	}
	return nil
}

type progressReader struct {
	r       io.Reader
	written int64
	total   int64
	fn      ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		p.fn(p.written, p.total)
	}
	return n, err
}
