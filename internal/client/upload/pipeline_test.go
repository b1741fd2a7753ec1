package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkomarov/garagehub/internal/common"
)

// fakePresigner hands out one target URL per file name and can be told to
// fail from a given call onward.
type fakePresigner struct {
	base    string
	calls   int
	failAt  int // 1-based call number to fail at; 0 never fails
	gotType []string
}

func (f *fakePresigner) PresignedUpload(ctx context.Context, fileName, fileType string) (string, string, error) {
	f.calls++
	if f.failAt > 0 && f.calls >= f.failAt {
		return "", "", errors.New("presign denied")
	}
	f.gotType = append(f.gotType, fileType)
	return f.base + "/" + fileName, "stored/" + fileName, nil
}

func newUploadServer(t *testing.T) (*httptest.Server, *sync.Map) {
	t.Helper()
	var received sync.Map
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received.Store(r.URL.Path, struct {
			ContentType string
			Body        []byte
		}{r.Header.Get("Content-Type"), body})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestPipeline_PreservesInputOrder(t *testing.T) {
	srv, received := newUploadServer(t)
	pre := &fakePresigner{base: srv.URL}

	p := NewPipeline(pre, 0)
	for _, name := range []string{"f1.jpg", "f2.png", "f3.jpg"} {
		require.NoError(t, p.Stage(File{Name: name, ContentType: "image/jpeg", Data: []byte(name)}))
	}

	keys, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"stored/f1.jpg", "stored/f2.png", "stored/f3.jpg"}, keys)
	for _, name := range []string{"f1.jpg", "f2.png", "f3.jpg"} {
		got, ok := received.Load("/" + name)
		require.True(t, ok, "file %s must have been uploaded", name)
		stored := got.(struct {
			ContentType string
			Body        []byte
		})
		assert.Equal(t, []byte(name), stored.Body)
		assert.Equal(t, "image/jpeg", stored.ContentType)
	}
}

func TestPipeline_PresignFailureAbortsWholeRun(t *testing.T) {
	srv, received := newUploadServer(t)
	pre := &fakePresigner{base: srv.URL, failAt: 2}

	p := NewPipeline(pre, 0)
	require.NoError(t, p.Stage(File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")}))
	require.NoError(t, p.Stage(File{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")}))
	require.NoError(t, p.Stage(File{Name: "c.jpg", ContentType: "image/jpeg", Data: []byte("c")}))

	keys, err := p.Run(context.Background())

	require.ErrorIs(t, err, common.ErrTransfer)
	assert.Nil(t, keys, "no partial key list on failure")
	_, thirdUploaded := received.Load("/c.jpg")
	assert.False(t, thirdUploaded, "later files must not be transferred after a failure")
	assert.Equal(t, 3, p.Staged(), "staging list survives a failed run for retry")
}

func TestPipeline_TransferErrorStatusAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()
	pre := &fakePresigner{base: srv.URL}

	p := NewPipeline(pre, 0)
	require.NoError(t, p.Stage(File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")}))

	_, err := p.Run(context.Background())
	require.ErrorIs(t, err, common.ErrTransfer)
}

func TestPipeline_ProgressMonotonePerFile(t *testing.T) {
	srv, _ := newUploadServer(t)
	pre := &fakePresigner{base: srv.URL}

	var mu sync.Mutex
	progress := map[int][]int{}
	p := NewPipeline(pre, 0, WithProgress(func(index, pct int) {
		mu.Lock()
		progress[index] = append(progress[index], pct)
		mu.Unlock()
	}))

	data := make([]byte, 1<<16)
	require.NoError(t, p.Stage(File{Name: "big.jpg", ContentType: "image/jpeg", Data: data}))
	require.NoError(t, p.Stage(File{Name: "empty.jpg", ContentType: "image/jpeg", Data: nil}))

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	for index, seq := range progress {
		require.NotEmpty(t, seq)
		for i := 1; i < len(seq); i++ {
			assert.GreaterOrEqual(t, seq[i], seq[i-1], "file %d progress must not decrease", index)
		}
		assert.Equal(t, 100, seq[len(seq)-1], "file %d must finish at 100", index)
	}
}

func TestPipeline_StageEnforcesCap(t *testing.T) {
	p := NewPipeline(&fakePresigner{}, 4)

	require.NoError(t, p.Stage(File{Name: "1.jpg"}))
	require.NoError(t, p.Stage(File{Name: "2.jpg"}))

	err := p.Stage(File{Name: "3.jpg"})
	require.ErrorIs(t, err, common.ErrValidation, "4 existing + 2 staged leaves no room")
	assert.Equal(t, 2, p.Staged())
}

func TestPipeline_RemoveAndDiscard(t *testing.T) {
	srv, _ := newUploadServer(t)
	pre := &fakePresigner{base: srv.URL}
	p := NewPipeline(pre, 0)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Stage(File{Name: fmt.Sprintf("%d.jpg", i), ContentType: "image/jpeg"}))
	}

	p.Remove(1)
	assert.Equal(t, 2, p.Staged())
	p.Remove(99) // out of range is a no-op
	assert.Equal(t, 2, p.Staged())

	keys, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"stored/0.jpg", "stored/2.jpg"}, keys)

	p.Discard()
	assert.Equal(t, 0, p.Staged())
}

func TestPipeline_RunWithNothingStaged(t *testing.T) {
	p := NewPipeline(&fakePresigner{}, 0)
	keys, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestPipeline_CancelledContextAborts(t *testing.T) {
	srv, _ := newUploadServer(t)
	pre := &fakePresigner{base: srv.URL}
	p := NewPipeline(pre, 0)
	require.NoError(t, p.Stage(File{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx)
	require.ErrorIs(t, err, common.ErrTransfer)
}
