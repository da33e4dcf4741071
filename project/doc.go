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

// Package project describes the documents and assets that make up a game
// project, and how they are found and decoded.
//
// Documents are stored as JSON. The JSON may contain comments and trailing
// commas, which are common in hand edited files.
//
// The layout of a project is described by its manifest, the project.toml
// file in the root of the project. A project without a manifest uses the
// default layout:
//
//	Data/           maps, tilesets and map infos
//	Graphics/       images, in subdirectories by type
//	Audio/          sounds, in subdirectories by source (BGM, BGS, ME, SE)
//
// The Register() function installs the Locator and Decoder for every
// category of resource in a cache.Cache.
package project
