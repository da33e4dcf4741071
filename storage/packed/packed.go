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

package packed

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec is the compression used when writing files.
type Codec int

// List of valid Codec values.
const (
	None Codec = iota
	Zstd
	LZ4
)

func (c Codec) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return "none"
}

// ParseCodec returns the Codec for the name. Returns false if the name is not
// recognised.
func ParseCodec(name string) (Codec, bool) {
	switch name {
	case "", "none":
		return None, true
	case "zstd":
		return Zstd, true
	case "lz4":
		return LZ4, true
	}
	return None, false
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect returns the Codec used to compress the data.
func Detect(data []byte) Codec {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	}
	return None
}

// the zstd encoder and decoder are safe for concurrent use with EncodeAll()
// and DecodeAll()
var (
	zstdOnce sync.Once
	zstdDec  *zstd.Decoder
	zstdEnc  *zstd.Encoder
	zstdErr  error
)

func zstdCodec() (*zstd.Decoder, *zstd.Encoder, error) {
	zstdOnce.Do(func() {
		zstdDec, zstdErr = zstd.NewReader(nil)
		if zstdErr != nil {
			return
		}
		zstdEnc, zstdErr = zstd.NewWriter(nil)
	})
	return zstdDec, zstdEnc, zstdErr
}

// Unpack decompresses the data if it is compressed. Data that is not
// compressed is returned unchanged.
func Unpack(data []byte) ([]byte, error) {
	switch Detect(data) {
	case Zstd:
		dec, _, err := zstdCodec()
		if err != nil {
			return nil, err
		}
		return dec.DecodeAll(data, nil)
	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	}
	return data, nil
}

// Pack compresses the data with the Codec.
func Pack(codec Codec, data []byte) ([]byte, error) {
	switch codec {
	case Zstd:
		_, enc, err := zstdCodec()
		if err != nil {
			return nil, err
		}
		return enc.EncodeAll(data, nil), nil
	case LZ4:
		var b bytes.Buffer
		w := lz4.NewWriter(&b)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	}
	return data, nil
}

// Packed wraps a storage.Backend.
type Packed struct {
	backend storage.Backend
	codec   Codec
}

// NewPacked is the preferred method of initialisation for the Packed type.
// Files are compressed with the codec when they are written.
func NewPacked(backend storage.Backend, codec Codec) *Packed {
	return &Packed{
		backend: backend,
		codec:   codec,
	}
}

// ReadBytes implements the storage.Backend interface.
func (p *Packed) ReadBytes(ctx context.Context, path string) ([]byte, error) {
	data, err := p.backend.ReadBytes(ctx, path)
	if err != nil {
		return nil, err
	}
	data, err = Unpack(data)
	if err != nil {
		return nil, curated.Errorf(storage.Fault, path, err)
	}
	return data, nil
}

// WriteBytes implements the storage.Backend interface.
func (p *Packed) WriteBytes(ctx context.Context, path string, data []byte) error {
	data, err := Pack(p.codec, data)
	if err != nil {
		return curated.Errorf(storage.Fault, path, err)
	}
	return p.backend.WriteBytes(ctx, path, data)
}

// List implements the storage.Backend interface.
func (p *Packed) List(ctx context.Context, path string) ([]storage.Entry, error) {
	return p.backend.List(ctx, path)
}
