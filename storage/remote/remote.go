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

package remote

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
	"golang.org/x/time/rate"
)

// Remote is a project served over HTTP.
type Remote struct {
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
}

// NewRemote is the preferred method of initialisation for the Remote type.
// The perSecond argument limits the number of requests made each second,
// with bursts of up to burst requests. A perSecond value of zero or less
// means no limit.
func NewRemote(base string, client *http.Client, perSecond float64, burst int) (*Remote, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, curated.Errorf(storage.Fault, base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, curated.Errorf(storage.Fault, base, "unsupported scheme")
	}

	// the base is always treated as a directory
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}

	return &Remote{
		base:    u,
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
	}, nil
}

func (r *Remote) String() string {
	return fmt.Sprintf("remote: %s", r.base)
}

func (r *Remote) url(path string, list bool) string {
	u := r.base.JoinPath(storage.CleanPath(path))
	if list {
		u.RawQuery = "list"
	}
	return u.String()
}

func (r *Remote) do(ctx context.Context, path string, req *http.Request) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, storage.Classify(path, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, storage.Classify(path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, curated.Errorf(storage.NotFound, path)
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return nil, curated.Errorf(storage.PermissionDenied, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, curated.Errorf(storage.Fault, path, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, storage.Classify(path, err)
	}
	return data, nil
}

// ReadBytes implements the storage.Backend interface.
func (r *Remote) ReadBytes(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url(path, false), nil)
	if err != nil {
		return nil, storage.Classify(path, err)
	}
	return r.do(ctx, path, req)
}

// WriteBytes implements the storage.Backend interface.
func (r *Remote) WriteBytes(ctx context.Context, path string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, r.url(path, false), bytes.NewReader(data))
	if err != nil {
		return storage.Classify(path, err)
	}
	_, err = r.do(ctx, path, req)
	return err
}

// List implements the storage.Backend interface.
func (r *Remote) List(ctx context.Context, path string) ([]storage.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url(path, true), nil)
	if err != nil {
		return nil, storage.Classify(path, err)
	}

	data, err := r.do(ctx, path, req)
	if err != nil {
		return nil, err
	}

	var ent []storage.Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		l := strings.TrimSpace(scanner.Text())
		if l == "" {
			continue
		}
		name, isDir := strings.CutSuffix(l, "/")
		ent = append(ent, storage.Entry{Name: name, IsDir: isDir})
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(storage.Fault, path, err)
	}

	storage.SortEntries(ent)

	return ent, nil
}
