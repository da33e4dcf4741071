// This file is part of Tilewright.
//
// Tilewright is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tilewright is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tilewright.  If not, see <https://www.gnu.org/licenses/>.

package editor

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jetsetilly/tilewright/archivefs"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/jetsetilly/tilewright/storage/disk"
	"github.com/jetsetilly/tilewright/storage/memory"
	"github.com/jetsetilly/tilewright/storage/minio"
	"github.com/jetsetilly/tilewright/storage/packed"
	"github.com/jetsetilly/tilewright/storage/remote"
	"github.com/jetsetilly/tilewright/storage/s3"
)

// Sentinal error patterns.
const (
	BackendError = "editor: %s backend: %v"
)

// Options for NewBackend().
type Options struct {
	// one of the names in preferences.Backends
	Backend string

	// directory, zip file, URL or bucket/prefix depending on the backend
	Location string

	// compression of every file in the project
	Codec packed.Codec

	// remote backend rate limit. zero is unlimited
	RemoteRate  float64
	RemoteBurst int
}

// environment variables used by the object storage backends. the s3 backend
// also uses the standard AWS environment
const (
	envMinioEndpoint = "TILEWRIGHT_MINIO_ENDPOINT"
	envMinioAccess   = "TILEWRIGHT_MINIO_ACCESS_KEY"
	envMinioSecret   = "TILEWRIGHT_MINIO_SECRET_KEY"
	envMinioInsecure = "TILEWRIGHT_MINIO_INSECURE"
	envS3Region      = "TILEWRIGHT_S3_REGION"
)

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// splitBucket splits a location of the form "bucket/prefix"
func splitBucket(location string) (string, string) {
	bucket, prefix, _ := strings.Cut(strings.Trim(location, "/"), "/")
	return bucket, prefix
}

// NewBackend creates the storage backend described by the options. The
// returned io.Closer must be closed when the backend is no longer required.
// It is never nil.
func NewBackend(ctx context.Context, opts Options) (storage.Backend, io.Closer, error) {
	var backend storage.Backend
	var closer io.Closer = nopCloser{}

	switch strings.ToLower(opts.Backend) {
	case "", "disk":
		d, err := disk.NewDisk(opts.Location)
		if err != nil {
			return nil, nil, curated.Errorf(BackendError, "disk", err)
		}
		backend = d

	case "zip":
		a, err := archivefs.Open(opts.Location)
		if err != nil {
			return nil, nil, curated.Errorf(BackendError, "zip", err)
		}
		backend = a
		closer = a

	case "remote":
		client := &http.Client{Timeout: 30 * time.Second}
		r, err := remote.NewRemote(opts.Location, client, opts.RemoteRate, opts.RemoteBurst)
		if err != nil {
			return nil, nil, curated.Errorf(BackendError, "remote", err)
		}
		backend = r

	case "minio":
		bucket, prefix := splitBucket(opts.Location)
		secure := os.Getenv(envMinioInsecure) == ""
		m, err := minio.Dial(os.Getenv(envMinioEndpoint), os.Getenv(envMinioAccess), os.Getenv(envMinioSecret), secure, bucket, prefix)
		if err != nil {
			return nil, nil, curated.Errorf(BackendError, "minio", err)
		}
		backend = m

	case "s3":
		bucket, prefix := splitBucket(opts.Location)
		s, err := s3.NewFromEnvironment(ctx, os.Getenv(envS3Region), bucket, prefix)
		if err != nil {
			return nil, nil, curated.Errorf(BackendError, "s3", err)
		}
		backend = s

	case "memory":
		m := memory.NewMemory()
		if opts.Location != "" {
			d, err := disk.NewDisk(opts.Location)
			if err != nil {
				return nil, nil, curated.Errorf(BackendError, "memory", err)
			}
			n, err := copyBackend(ctx, d, m, "")
			if err != nil {
				return nil, nil, curated.Errorf(BackendError, "memory", err)
			}
			logger.Logf(logger.Allow, "editor", "copied %d files from %s into memory", n, opts.Location)
		}
		backend = m

	default:
		return nil, nil, curated.Errorf(BackendError, opts.Backend, "unknown backend")
	}

	if opts.Codec != packed.None {
		backend = packed.NewPacked(backend, opts.Codec)
	}

	logger.Logf(logger.Allow, "editor", "%s backend at %q", opts.Backend, opts.Location)

	return backend, closer, nil
}

// copyBackend copies every file under dir from src to dst. returns the
// number of files copied
func copyBackend(ctx context.Context, src storage.Backend, dst storage.Backend, dir string) (int, error) {
	ent, err := src.List(ctx, dir)
	if err != nil {
		return 0, err
	}

	var n int
	for _, e := range ent {
		p := e.Name
		if dir != "" {
			p = dir + "/" + e.Name
		}

		if e.IsDir {
			c, err := copyBackend(ctx, src, dst, p)
			n += c
			if err != nil {
				return n, err
			}
			continue
		}

		data, err := src.ReadBytes(ctx, p)
		if err != nil {
			return n, err
		}
		if err := dst.WriteBytes(ctx, p, data); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}
