// Package upload implements the photo upload pipeline: staged local files
// are exchanged for pre-authorized upload targets, transferred one at a
// time, and reported back as durable object-storage keys in input order.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dkomarov/garagehub/internal/common"
)

// Presigner requests a pre-authorized upload target for a file name and
// MIME type. The entry store's API client satisfies this.
type Presigner interface {
	PresignedUpload(ctx context.Context, fileName, fileType string) (url, key string, err error)
}

// File is one staged local image awaiting upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProgressFunc receives per-file transfer progress. index is the position of
// the file in the staging list; percent runs 0–100 and is monotonically
// non-decreasing for a given file.
type ProgressFunc func(index int, percent int)

// Pipeline stages files for one entry and uploads them sequentially.
// Transfers are never concurrent: a single shared progress counter stays
// meaningful and peak memory and network use stay bounded.
type Pipeline struct {
	presigner Presigner
	httpc     *http.Client
	progress  ProgressFunc

	existing int
	files    []File
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// WithHTTPClient overrides the HTTP client used for transfers.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Pipeline) { p.httpc = c }
}

// NewPipeline builds a pipeline for an entry that already owns existing
// persisted photos; the cap on staged files counts those too.
func NewPipeline(presigner Presigner, existing int, opts ...Option) *Pipeline {
	p := &Pipeline{
		presigner: presigner,
		httpc:     http.DefaultClient,
		progress:  func(int, int) {},
		existing:  existing,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Stage appends f to the staging list, enforcing the per-entry photo cap
// across existing and staged photos.
func (p *Pipeline) Stage(f File) error {
	if p.existing+len(p.files)+1 > common.MaxPhotosPerEntry {
		return fmt.Errorf("%w: an entry can hold at most %d photos", common.ErrValidation, common.MaxPhotosPerEntry)
	}
	p.files = append(p.files, f)
	return nil
}

// Remove drops the staged file at index i and releases its bytes.
func (p *Pipeline) Remove(i int) {
	if i < 0 || i >= len(p.files) {
		return
	}
	p.files = append(p.files[:i], p.files[i+1:]...)
}

// Discard drops every staged file, releasing their bytes. Called when the
// authoring form is abandoned.
func (p *Pipeline) Discard() {
	p.files = nil
}

// Staged returns the number of files currently staged.
func (p *Pipeline) Staged() int {
	return len(p.files)
}

// Run uploads every staged file in order and returns their durable keys:
// the Nth key corresponds to the Nth staged file. Each file is presigned,
// then transferred, before the next one starts. Any failure aborts the
// whole run: no keys are returned and nothing is committed. The staging
// list is left intact so a failed commit can be retried.
func (p *Pipeline) Run(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(p.files))
	for i, f := range p.files {
		url, key, err := p.presigner.PresignedUpload(ctx, f.Name, f.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: presign %q: %v", common.ErrTransfer, f.Name, err)
		}
		if err := p.transfer(ctx, i, url, f); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// transfer PUTs the raw file bytes directly to the pre-authorized target,
// reporting monotone percentage progress as the body is consumed.
func (p *Pipeline) transfer(ctx context.Context, index int, url string, f File) error {
	body := &progressReader{
		r:     bytes.NewReader(f.Data),
		total: len(f.Data),
		report: func(pct int) {
			p.progress(index, pct)
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", common.ErrTransfer, f.Name, err)
	}
	req.Header.Set("Content-Type", f.ContentType)
	req.ContentLength = int64(len(f.Data))

	p.progress(index, 0)

	resp, err := p.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: upload %q: %v", common.ErrTransfer, f.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: upload %q: %s", common.ErrTransfer, f.Name, resp.Status)
	}

	p.progress(index, 100)
	return nil
}

// progressReader reports cumulative read percentage, clamped to 0–100 and
// never decreasing.
type progressReader struct {
	r      io.Reader
	total  int
	read   int
	last   int
	report func(pct int)
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	pr.read += n
	pct := 100
	if pr.total > 0 {
		pct = pr.read * 100 / pr.total
	}
	if pct > 100 {
		pct = 100
	}
	if pct > pr.last {
		pr.last = pct
		pr.report(pct)
	}
	return n, err
}
