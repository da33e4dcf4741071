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

package panels

import (
	"path"
	"strings"

	"github.com/jetsetilly/tilewright/storage"
)

// listing is a directory listing that is requested once and polled on every
// frame until it is complete.
type listing struct {
	dir     string
	pending storage.Pending[[]storage.Entry]

	done  bool
	names []string
	err   error
}

// poll the listing. the names are the files in the directory, without the
// file extension and in the order returned by the filesystem. files that
// differ only by extension are listed once
func (l *listing) poll(fs storage.Filesystem) ([]string, bool, error) {
	if l.done {
		return l.names, true, l.err
	}

	if l.pending == nil {
		l.pending = fs.List(l.dir)
	}

	ent, ok, err := l.pending.Poll()
	if !ok {
		return nil, false, nil
	}

	l.done = true
	l.pending = nil
	if err != nil {
		l.err = err
		return nil, true, err
	}

	seen := make(map[string]bool)
	for _, e := range ent {
		if e.IsDir {
			continue
		}
		n := strings.TrimSuffix(e.Name, path.Ext(e.Name))
		if !seen[n] {
			seen[n] = true
			l.names = append(l.names, n)
		}
	}

	return l.names, true, nil
}

// reset the listing so that the directory is listed again on the next poll
func (l *listing) reset() {
	*l = listing{dir: l.dir}
}
