package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/logger"
)

// httpProvider talks to a mirror over its HTTP API. All failure
// classification happens here so the failover loop only has to look at
// the error kind.
type httpProvider struct {
	client adapter.HTTPClient
	fs     adapter.FileSystem
}

// NewHTTPProvider creates a mirror-backed content provider
func NewHTTPProvider(client adapter.HTTPClient, fs adapter.FileSystem) ContentProvider {
	return &httpProvider{
		client: client,
		fs:     fs,
	}
}

func metadataURL(endpoint, itemID string) string {
	return fmt.Sprintf("%s/albums/%s", endpoint, itemID)
}

func archiveURL(endpoint, itemID string) string {
	return fmt.Sprintf("%s/albums/%s/archive", endpoint, itemID)
}

func coverURL(endpoint, itemID string) string {
	return fmt.Sprintf("%s/albums/%s/cover", endpoint, itemID)
}

// classifyStatus maps an HTTP status to an error kind. 404 means the
// item does not exist anywhere, other 4xx mean this mirror serves a
// shape we do not understand, 5xx and everything else is transient.
func classifyStatus(code int) domain.Kind {
	switch {
	case code == http.StatusNotFound:
		return domain.KindNotFound
	case code >= 400 && code < 500:
		return domain.KindStructural
	default:
		return domain.KindNetwork
	}
}

func (p *httpProvider) GetMetadata(ctx context.Context, endpoint, itemID string) (*AlbumMetadata, error) {
	var raw json.RawMessage
	if err := p.client.Get(ctx, metadataURL(endpoint, itemID), &raw); err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) {
			return nil, domain.WrapFetchError(classifyStatus(statusErr.Code), endpoint, err, "metadata request rejected")
		}
		return nil, domain.WrapFetchError(domain.KindNetwork, endpoint, err, "metadata request failed")
	}

	var meta AlbumMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, domain.WrapFetchError(domain.KindStructural, endpoint, err, "metadata response malformed")
	}
	if meta.ItemID == "" {
		meta.ItemID = itemID
	}
	return &meta, nil
}

func (p *httpProvider) FetchArchive(ctx context.Context, endpoint, itemID, destPath string) (int64, error) {
	return p.fetchFile(ctx, endpoint, archiveURL(endpoint, itemID), destPath)
}

func (p *httpProvider) FetchCover(ctx context.Context, endpoint, itemID, destPath string) error {
	_, err := p.fetchFile(ctx, endpoint, coverURL(endpoint, itemID), destPath)
	return err
}

// fetchFile streams a mirror response into destPath. A partial file is
// removed before the error is returned.
func (p *httpProvider) fetchFile(ctx context.Context, endpoint, url, destPath string) (int64, error) {
	resp, err := p.client.GetResponse(ctx, url)
	if err != nil {
		return 0, domain.WrapFetchError(domain.KindNetwork, endpoint, err, "download request failed")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, domain.WrapFetchError(classifyStatus(resp.StatusCode), endpoint,
			&adapter.StatusError{Code: resp.StatusCode, Body: string(body)}, "download request rejected")
	}

	file, err := p.fs.Create(destPath)
	if err != nil {
		return 0, domain.WrapFetchError(domain.KindFilesystem, endpoint, err, "failed to create destination file")
	}

	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()

	if copyErr != nil {
		p.discard(destPath)
		return 0, domain.WrapFetchError(domain.KindNetwork, endpoint, copyErr, "transfer interrupted")
	}
	if closeErr != nil {
		p.discard(destPath)
		return 0, domain.WrapFetchError(domain.KindFilesystem, endpoint, closeErr, "failed to finalize destination file")
	}

	return written, nil
}

func (p *httpProvider) discard(path string) {
	if err := p.fs.Remove(path); err != nil {
		logger.Warn("failed to remove partial file", zap.Error(err), zap.String("path", path))
	}
}
