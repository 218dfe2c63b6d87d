package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/moneybook/expense-tracker/domain"
)

// avatarRepo stores avatar blobs on local disk. The returned reference is
// the public URL path the static file server exposes.
type avatarRepo struct {
	uploadDir    string
	publicPrefix string
}

func CreateAvatarRepo(uploadDir, publicPrefix string) (domain.AvatarRepo, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir failed")
	}
	return &avatarRepo{
		uploadDir:    uploadDir,
		publicPrefix: publicPrefix,
	}, nil
}

func (a *avatarRepo) Upload(ctx context.Context, fileReader io.Reader, key string) (string, error) {
	filePath := filepath.Join(a.uploadDir, key)
	file, err := os.Create(filePath)
	if err != nil {
		return "", errors.Wrap(err, "create file failed")
	}
	defer file.Close()

	if _, err := io.Copy(file, fileReader); err != nil {
		os.Remove(filePath)
		return "", errors.Wrap(err, "write file failed")
	}

	return a.publicPrefix + "/" + key, nil
}

func (a *avatarRepo) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(a.uploadDir, key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove file failed")
	}
	return nil
}
