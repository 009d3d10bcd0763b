package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const downloadTimeout = 30 * time.Minute

// download streams a remote file to destPath. The body is written to a
// .tmp sibling and renamed only after the size check passes, so an
// aborted download never leaves a plausible-looking media file behind.
func download(ctx context.Context, url, destPath string) (err error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}

	tmpPath := destPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		file.Close()
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	if resp.ContentLength > 0 && written != resp.ContentLength {
		err = fmt.Errorf("incomplete download: expected %d bytes, got %d", resp.ContentLength, written)
		return err
	}

	if err = os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename downloaded file: %w", err)
	}
	return nil
}
