package manifest

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/registration"
)

const fileScheme = "file://"

// FileLoader is a registration.RemoteLoader reading manifests from disk.
// URLs are file:// URLs or plain paths; relative paths are resolved against
// BaseDir.
type FileLoader struct {
	BaseDir string
}

var _ registration.RemoteLoader = FileLoader{}

func (l FileLoader) Load(ctx context.Context, def registration.RemoteDefinition) (registration.RemoteModule, error) {
	if err := ctx.Err(); err != nil {
		return registration.RemoteModule{}, err
	}

	path, err := l.resolve(def.URL)
	if err != nil {
		return registration.RemoteModule{}, err
	}

	m, err := Load(path)
	if err != nil {
		return registration.RemoteModule{}, err
	}

	return registration.RemoteModule{Register: m.Entry()}, nil
}

func (l FileLoader) resolve(url string) (string, error) {
	path := url
	if strings.Contains(url, "://") {
		if !strings.HasPrefix(url, fileScheme) {
			return "", errors.Newf(errors.ErrRemoteLoad, "unsupported url %q, only file:// is supported", url).
				WithDetail("url", url)
		}
		path = strings.TrimPrefix(url, fileScheme)
	}

	if path == "" {
		return "", errors.New(errors.ErrRemoteLoad, "remote module url is empty")
	}

	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	return path, nil
}
