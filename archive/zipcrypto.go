// seehuhn.de/go/label - load and lay out packaged label documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package archive

import (
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zip"
)

const (
	flagEncrypted      = 0x1
	flagDataDescriptor = 0x8

	encryptionHeaderLen = 12
)

// zipKeys is the state of the traditional PKWARE stream cipher.
type zipKeys [3]uint32

func newZipKeys(passwd []byte) *zipKeys {
	k := &zipKeys{0x12345678, 0x23456789, 0x34567890}
	for _, c := range passwd {
		k.update(c)
	}
	return k
}

func crcByte(crc uint32, b byte) uint32 {
	return crc32.IEEETable[byte(crc)^b] ^ crc>>8
}

func (k *zipKeys) update(plain byte) {
	k[0] = crcByte(k[0], plain)
	k[1] = (k[1]+k[0]&0xFF)*134775813 + 1
	k[2] = crcByte(k[2], byte(k[1]>>24))
}

func (k *zipKeys) stream() byte {
	t := uint16(k[2] | 2)
	return byte(t * (t ^ 1) >> 8)
}

func (k *zipKeys) decrypt(buf []byte) {
	for i, c := range buf {
		p := c ^ k.stream()
		k.update(p)
		buf[i] = p
	}
}

// checkByte returns the value expected in the last byte of the
// decrypted encryption header.
func checkByte(f *zip.File) byte {
	if f.Flags&flagDataDescriptor != 0 {
		return byte(f.ModifiedTime >> 8)
	}
	return byte(f.CRC32 >> 24)
}

type decryptReader struct {
	r    io.Reader
	keys *zipKeys
}

// newDecryptReader consumes the encryption header of an entry and returns
// a reader for the decrypted data.
func newDecryptReader(r io.Reader, passwd []byte, check byte) (*decryptReader, error) {
	keys := newZipKeys(passwd)
	header := make([]byte, encryptionHeaderLen)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	keys.decrypt(header)
	if header[encryptionHeaderLen-1] != check {
		return nil, ErrPassword
	}
	return &decryptReader{r: r, keys: keys}, nil
}

func (r *decryptReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.keys.decrypt(p[:n])
	return n, err
}
