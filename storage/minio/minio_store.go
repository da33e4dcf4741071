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

package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store is a project in a bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewStore is the preferred method of initialisation for the Store type. The
// rootPrefix is the location of the project in the bucket.
func NewStore(client *minio.Client, bucket string, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: storage.CleanPath(rootPrefix),
	}
}

// Dial creates a client for the endpoint and returns a Store for the bucket.
func Dial(endpoint string, accessKey string, secretKey string, secure bool, bucket string, rootPrefix string) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, curated.Errorf(storage.Fault, endpoint, err)
	}
	return NewStore(client, bucket, rootPrefix), nil
}

func (s *Store) String() string {
	return fmt.Sprintf("minio: %s/%s", s.bucket, s.prefix)
}

func (s *Store) key(name string) string {
	return storage.CleanPath(path.Join(s.prefix, storage.CleanPath(name)))
}

// classify the errors returned by the minio client
func classify(name string, err error) error {
	if err == nil {
		return nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return curated.Errorf(storage.NotFound, name)
	case "AccessDenied":
		return curated.Errorf(storage.PermissionDenied, name)
	}
	return storage.Classify(name, err)
}

// ReadBytes implements the storage.Backend interface.
func (s *Store) ReadBytes(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, classify(name, err)
	}
	defer obj.Close()

	// the minio client does not make the request until the object is read
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, classify(name, err)
	}
	return data, nil
}

// WriteBytes implements the storage.Backend interface.
func (s *Store) WriteBytes(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return classify(name, err)
}

// List implements the storage.Backend interface.
func (s *Store) List(ctx context.Context, name string) ([]storage.Entry, error) {
	prefix := s.key(name)
	if prefix != "" {
		prefix += "/"
	}

	var objects []minio.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}) {
		if obj.Err != nil {
			return nil, classify(name, obj.Err)
		}
		objects = append(objects, obj)
	}

	ent := entries(prefix, objects)
	if len(ent) == 0 && storage.CleanPath(name) != "" {
		return nil, curated.Errorf(storage.NotFound, name)
	}
	return ent, nil
}

// entries converts the result of a non-recursive listing to directory
// entries. Common prefixes in the listing have a trailing slash.
func entries(prefix string, objects []minio.ObjectInfo) []storage.Entry {
	ent := make([]storage.Entry, 0, len(objects))
	for _, obj := range objects {
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" {
			continue
		}
		name, isDir := strings.CutSuffix(name, "/")
		ent = append(ent, storage.Entry{Name: name, IsDir: isDir})
	}
	storage.SortEntries(ent)
	return ent
}
