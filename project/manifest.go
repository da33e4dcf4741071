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

package project

import (
	"fmt"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/tilewright/curated"
)

// ManifestFile is the name of the manifest in the root of the project.
const ManifestFile = "project.toml"

// Layout names the directories in the project where each type of resource
// is stored. Directories are relative to the root of the project.
type Layout struct {
	Data     string `toml:"data"`
	Graphics string `toml:"graphics"`
	Audio    string `toml:"audio"`

	// MapFile is the format used to create the filename of a map from its
	// ID. the format must contain exactly one integer verb
	MapFile string `toml:"map_file"`

	Tilesets string `toml:"tilesets"`
	MapInfos string `toml:"mapinfos"`
}

// Manifest describes the project.
type Manifest struct {
	Title  string `toml:"title"`
	Layout Layout `toml:"layout"`
}

// DefaultManifest returns the manifest used for projects that do not have a
// manifest file.
func DefaultManifest() Manifest {
	return Manifest{
		Title: "Untitled",
		Layout: Layout{
			Data:     "Data",
			Graphics: "Graphics",
			Audio:    "Audio",
			MapFile:  "Map%03d.json",
			Tilesets: "Tilesets.json",
			MapInfos: "MapInfos.json",
		},
	}
}

// DecodeManifest decodes the contents of a manifest file. Fields missing from
// the file take their value from DefaultManifest().
func DecodeManifest(data []byte) (Manifest, error) {
	m := DefaultManifest()
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, curated.Errorf(FormatError, ManifestFile, err)
	}

	def := DefaultManifest()
	fill := func(v *string, d string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			*v = d
		}
	}
	fill(&m.Title, def.Title)
	fill(&m.Layout.Data, def.Layout.Data)
	fill(&m.Layout.Graphics, def.Layout.Graphics)
	fill(&m.Layout.Audio, def.Layout.Audio)
	fill(&m.Layout.MapFile, def.Layout.MapFile)
	fill(&m.Layout.Tilesets, def.Layout.Tilesets)
	fill(&m.Layout.MapInfos, def.Layout.MapInfos)

	if strings.Count(m.Layout.MapFile, "%") != 1 || !strings.Contains(m.Layout.MapFile, "d") {
		return Manifest{}, curated.Errorf(FormatError, ManifestFile, fmt.Sprintf("map_file %q needs one integer verb", m.Layout.MapFile))
	}

	for _, d := range []string{m.Layout.Data, m.Layout.Graphics, m.Layout.Audio} {
		if path.IsAbs(d) || strings.HasPrefix(path.Clean(d), "..") {
			return Manifest{}, curated.Errorf(FormatError, ManifestFile, fmt.Sprintf("directory %q is outside the project", d))
		}
	}

	return m, nil
}

// MapPath returns the path of the map with the ID.
func (m Manifest) MapPath(id int) string {
	return path.Join(m.Layout.Data, fmt.Sprintf(m.Layout.MapFile, id))
}

// TilesetsPath returns the path of the tileset table.
func (m Manifest) TilesetsPath() string {
	return path.Join(m.Layout.Data, m.Layout.Tilesets)
}

// MapInfosPath returns the path of the map tree.
func (m Manifest) MapInfosPath() string {
	return path.Join(m.Layout.Data, m.Layout.MapInfos)
}

// GraphicsPath returns the path of the graphics directory or a subdirectory
// of it.
func (m Manifest) GraphicsPath(sub ...string) string {
	return path.Join(append([]string{m.Layout.Graphics}, sub...)...)
}

// AudioPath returns the path of the audio directory or a subdirectory of it.
func (m Manifest) AudioPath(sub ...string) string {
	return path.Join(append([]string{m.Layout.Audio}, sub...)...)
}
