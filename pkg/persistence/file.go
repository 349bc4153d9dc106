package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// File stores every key as <dir>/<key>.json.
//
// Values are written to a temporary file first and then renamed, so a
// crash never leaves a partially written value behind.
type File struct {
	dir        string
	maxRetries uint64
}

// NewFile creates the directory if it does not exist yet.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}

	return &File{dir: dir, maxRetries: 3}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *File) Load(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyEmpty
	}

	var data []byte
	err := f.retry(ctx, func() error {
		var err error
		data, err = os.ReadFile(f.path(key))
		if errors.Is(err, fs.ErrNotExist) {
			return backoff.Permanent(err)
		}
		return err
	})

	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("could not read %s: %w", key, err)
	}

	return string(data), true, nil
}

func (f *File) Save(ctx context.Context, key, text string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	err := f.retry(ctx, func() error {
		return f.write(key, text)
	})
	if err != nil {
		return fmt.Errorf("could not write %s: %w", key, err)
	}

	return nil
}

func (f *File) write(key, text string) error {
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return err
	}

	// Clean up if anything goes wrong before the rename
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), f.path(key))
}

// retry runs op with exponential backoff until it succeeds, the context
// is done or the maximum number of retries is reached.
func (f *File) retry(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond

	return backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, f.maxRetries), ctx), func(err error, d time.Duration) {
		log.Debug().Err(err).Dur("backoff", d).Str("dir", f.dir).Msg("retrying file operation")
	})
}
