// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// AvatarStorage persists avatar images and reports where they can be fetched.
type AvatarStorage interface {
	// Save writes data under name and returns its public location.
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// LocalAvatarStorage writes avatars to a directory served by the API itself.
type LocalAvatarStorage struct {
	dir          string
	publicPrefix string
}

// NewLocalAvatarStorage creates dir if needed. Saved files are reported as
// publicPrefix + "/" + name.
func NewLocalAvatarStorage(dir, publicPrefix string) (*LocalAvatarStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("avatar_storage_mkdir_failed: %w", err)
	}
	return &LocalAvatarStorage{dir: dir, publicPrefix: publicPrefix}, nil
}

// Dir returns the directory avatars are written to.
func (storage *LocalAvatarStorage) Dir() string {
	return storage.dir
}

/*
Save writes the avatar atomically.

Description: The bytes go to a temporary file in the same directory which is
then renamed over the target, so readers never see a partial image.

Parameters:
  - ctx: context.Context
  - name: string (file name, no directories)
  - contentType: string (unused on disk)
  - data: []byte

Returns:
  - string: Public path of the stored file
  - error: Filesystem failures
*/
func (storage *LocalAvatarStorage) Save(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(name)

	temp, err := os.CreateTemp(storage.dir, ".avatar-*")
	if err != nil {
		return "", fmt.Errorf("avatar_storage_create_failed: %w", err)
	}
	tempName := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempName)
		return "", fmt.Errorf("avatar_storage_write_failed: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempName)
		return "", fmt.Errorf("avatar_storage_close_failed: %w", err)
	}

	if err := os.Rename(tempName, filepath.Join(storage.dir, name)); err != nil {
		_ = os.Remove(tempName)
		return "", fmt.Errorf("avatar_storage_rename_failed: %w", err)
	}

	return path.Join(storage.publicPrefix, name), nil
}
