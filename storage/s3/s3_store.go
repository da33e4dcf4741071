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

package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
)

// Client is the subset of the S3 client used by the Store.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store is a project in a bucket.
type Store struct {
	client Client
	bucket string
	prefix string
}

// NewStore is the preferred method of initialisation for the Store type. The
// rootPrefix is the location of the project in the bucket.
func NewStore(client Client, bucket string, rootPrefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: storage.CleanPath(rootPrefix),
	}
}

// NewFromEnvironment creates a Store using the default AWS configuration,
// which is taken from the environment and the shared configuration files.
func NewFromEnvironment(ctx context.Context, region string, bucket string, rootPrefix string) (*Store, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, curated.Errorf(storage.Fault, bucket, err)
	}

	return NewStore(s3.NewFromConfig(cfg), bucket, rootPrefix), nil
}

func (s *Store) String() string {
	return fmt.Sprintf("s3: %s/%s", s.bucket, s.prefix)
}

func (s *Store) key(name string) string {
	return storage.CleanPath(path.Join(s.prefix, storage.CleanPath(name)))
}

// classify the errors returned by the S3 client
func classify(name string, err error) error {
	if err == nil {
		return nil
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return curated.Errorf(storage.NotFound, name)
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return curated.Errorf(storage.NotFound, name)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return curated.Errorf(storage.NotFound, name)
	}

	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		switch re.HTTPStatusCode() {
		case http.StatusNotFound:
			return curated.Errorf(storage.NotFound, name)
		case http.StatusForbidden, http.StatusUnauthorized:
			return curated.Errorf(storage.PermissionDenied, name)
		}
	}

	return storage.Classify(name, err)
}

// ReadBytes implements the storage.Backend interface.
func (s *Store) ReadBytes(ctx context.Context, name string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, classify(name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(name, err)
	}
	return data, nil
}

// WriteBytes implements the storage.Backend interface.
func (s *Store) WriteBytes(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	return classify(name, err)
}

// List implements the storage.Backend interface.
func (s *Store) List(ctx context.Context, name string) ([]storage.Entry, error) {
	prefix := s.key(name)
	if prefix != "" {
		prefix += "/"
	}

	var ent []storage.Entry

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classify(name, err)
		}
		for _, p := range page.CommonPrefixes {
			d := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(p.Prefix), prefix), "/")
			if d != "" {
				ent = append(ent, storage.Entry{Name: d, IsDir: true})
			}
		}
		for _, obj := range page.Contents {
			f := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if f != "" {
				ent = append(ent, storage.Entry{Name: f})
			}
		}
	}

	if len(ent) == 0 && storage.CleanPath(name) != "" {
		return nil, curated.Errorf(storage.NotFound, name)
	}

	storage.SortEntries(ent)

	return ent, nil
}
