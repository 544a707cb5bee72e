package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jobgrpc "github.com/dmitrijs2005/jobportal/internal/server/grpc"
)

// httpClient is used for transfers to and from presigned URLs.
var httpClient = http.DefaultClient

// UploadCV registers a CV and PUTs file to the presigned URL the server
// returns.
func (c *Client) UploadCV(ctx context.Context, fields *jobgrpc.CVFields, file []byte) (*jobgrpc.CV, error) {
	var resp jobgrpc.CVUploadResponse
	if err := c.Invoke(ctx, "RequestCVUpload", fields, &resp); err != nil {
		return nil, err
	}
	if err := UploadToPresignedURL(ctx, resp.UploadURL, file); err != nil {
		return nil, err
	}
	return resp.CV, nil
}

// DownloadCV fetches the file of a CV through a presigned URL.
func (c *Client) DownloadCV(ctx context.Context, cvID string) ([]byte, error) {
	var resp jobgrpc.URLResponse
	if err := c.Invoke(ctx, "GetCVDownloadURL", &jobgrpc.CVRequest{CVID: cvID}, &resp); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resp.URL, nil)
	if err != nil {
		return nil, err
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: %s", res.Status)
	}
	return io.ReadAll(res.Body)
}

func UploadToPresignedURL(ctx context.Context, url string, file []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(file))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
