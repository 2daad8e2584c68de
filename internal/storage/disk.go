package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskKV keeps one file per key under a base directory, for deployments
// that prefer plain files over a database.
type DiskKV struct {
	store *diskv.Diskv
}

func NewDiskKV(basePath string) *DiskKV {
	return &DiskKV{
		store: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024,
		}),
	}
}

func (store *DiskKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	value, err := store.store.Read(key)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %q: %w", key, err)
	}
	return string(value), true, nil
}

func (store *DiskKV) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := store.store.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

func (store *DiskKV) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := store.store.Erase(key)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}
