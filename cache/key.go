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

package cache

import (
	"fmt"

	"github.com/jetsetilly/tilewright/storage"
)

// Category groups keys that are located and decoded in the same way.
type Category string

// Key identifies a resource. It is either a document ID or an asset path. Keys
// are comparable and equal keys refer to the same cache entry.
type Key struct {
	Category Category

	// ID is used for documents, which are numbered. It should be ignored for
	// keys created with AssetPath()
	ID int

	// Path is used for assets. It is always empty for keys created with
	// DocumentID()
	Path string
}

// DocumentID creates a key for a numbered document.
func DocumentID(category Category, id int) Key {
	return Key{Category: category, ID: id}
}

// AssetPath creates a key for an asset identified by its path. The path is
// cleaned so that equivalent spellings of the path result in equal keys.
func AssetPath(category Category, path string) Key {
	return Key{Category: category, Path: storage.CleanPath(path)}
}

// IsDocument returns true if the key was created with DocumentID().
func (k Key) IsDocument() bool {
	return k.Path == ""
}

func (k Key) String() string {
	if k.IsDocument() {
		return fmt.Sprintf("%s#%d", k.Category, k.ID)
	}
	return fmt.Sprintf("%s:%s", k.Category, k.Path)
}
