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
	"fmt"
	"io"
	"net/http"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/storage"
)

// Handler serves a storage.Backend using the protocol understood by Remote.
type Handler struct {
	backend  storage.Backend
	readOnly bool
}

// NewHandler is the preferred method of initialisation for the Handler type.
// PUT requests are refused if readOnly is true.
func NewHandler(backend storage.Backend, readOnly bool) *Handler {
	return &Handler{
		backend:  backend,
		readOnly: readOnly,
	}
}

func status(err error) int {
	switch {
	case curated.Is(err, storage.NotFound):
		return http.StatusNotFound
	case curated.Is(err, storage.PermissionDenied):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// ServeHTTP implements the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := storage.CleanPath(req.URL.Path)
	ctx := req.Context()

	switch req.Method {
	case http.MethodGet:
		if req.URL.Query().Has("list") {
			ent, err := h.backend.List(ctx, path)
			if err != nil {
				http.Error(w, err.Error(), status(err))
				return
			}
			for _, e := range ent {
				fmt.Fprintln(w, e.String())
			}
			return
		}

		data, err := h.backend.ReadBytes(ctx, path)
		if err != nil {
			http.Error(w, err.Error(), status(err))
			return
		}
		w.Write(data)

	case http.MethodPut:
		if h.readOnly {
			http.Error(w, "read only", http.StatusForbidden)
			return
		}

		data, err := io.ReadAll(req.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err = h.backend.WriteBytes(ctx, path, data)
		if err != nil {
			http.Error(w, err.Error(), status(err))
			return
		}
		logger.Logf(logger.Allow, "remote", "wrote %s (%d bytes)", path, len(data))

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
