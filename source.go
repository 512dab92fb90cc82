package vcfunion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ErrUnreadableFile is returned when the input cannot be opened.
var ErrUnreadableFile = errors.New("input file cannot be opened")

const gsPrefix = "gs://"

// IsGoogleStorage reports whether path names an object in a Google Storage
// bucket.
func IsGoogleStorage(path string) bool {
	return strings.HasPrefix(path, gsPrefix)
}

// OpenSource opens a local path or, when client is non-nil, a gs:// object,
// and returns its size in bytes.
func OpenSource(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, int64, error) {
	if IsGoogleStorage(path) {
		if client == nil {
			return nil, 0, pfx.Err(fmt.Errorf("%w: %s: no storage client", ErrUnreadableFile, path))
		}
		return openObject(ctx, path, client)
	}

	path, err := ExpandHome(path)
	if err != nil {
		return nil, 0, pfx.Err(fmt.Errorf("%w: %v", ErrUnreadableFile, err))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, pfx.Err(fmt.Errorf("%w: %v", ErrUnreadableFile, err))
	}
	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, pfx.Err(fmt.Errorf("%w: %v", ErrUnreadableFile, err))
	}
	if fstat.IsDir() {
		f.Close()
		return nil, 0, pfx.Err(fmt.Errorf("%w: %s is a directory", ErrUnreadableFile, path))
	}

	return f, fstat.Size(), nil
}

// SplitObjectPath splits gs://bucket/path/to/object into its bucket and object
// names.
func SplitObjectPath(path string) (bucket, object string, err error) {
	parts := strings.SplitN(strings.TrimPrefix(path, gsPrefix), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: expected gs://bucket/object, got %q", ErrUnreadableFile, path)
	}
	return parts[0], parts[1], nil
}

func openObject(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, int64, error) {
	bucket, object, err := SplitObjectPath(path)
	if err != nil {
		return nil, 0, pfx.Err(err)
	}

	handle := client.Bucket(bucket).Object(object)

	// Make a hard call to get the filesize
	attrs, err := handle.Attrs(ctx)
	if err != nil {
		return nil, 0, pfx.Err(fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err))
	}

	r, err := handle.NewReader(ctx)
	if err != nil {
		return nil, 0, pfx.Err(fmt.Errorf("%w: %s: %v", ErrUnreadableFile, path, err))
	}

	return r, attrs.Size, nil
}
