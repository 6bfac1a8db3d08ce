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

// Package archive extracts the payloads of a packaged label file.
//
// A label file is a zip archive.  The root of the archive holds the
// variables document, named after the label file with the extension
// ".slnx", and the directory "Formats/" holds the format document.
// Entries are usually protected with traditional PKWARE encryption.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/xdg-go/stringprep"
)

// DefaultPassword is the password used by the label designer for all
// label files.
const DefaultPassword = ",^_A5Fus&!?j='Epiq*e"

// VariablesExt is the file name extension of the variables document.
const VariablesExt = ".slnx"

// FormatsDir is the directory which contains the format document.
const FormatsDir = "Formats/"

// maxEntrySize limits the size of a decompressed payload.
const maxEntrySize = 64 << 20

// methodAES is the compression method used for WinZip AES encryption.
const methodAES = 99

var (
	// ErrPassword indicates that an entry could not be decrypted with the
	// given password.
	ErrPassword = errors.New("wrong password for label archive")

	// ErrUnsupported indicates an encryption or compression method which
	// is not implemented.
	ErrUnsupported = errors.New("unsupported archive entry")

	errChecksum = errors.New("checksum mismatch")
	errTooLarge = errors.New("archive entry too large")
)

// MissingEntryError is returned if one of the two payloads cannot be found
// in the archive.
type MissingEntryError struct {
	Name string
}

func (err *MissingEntryError) Error() string {
	return fmt.Sprintf("label archive has no entry %q", err.Name)
}

// Payload holds the two XML documents of a label file.
type Payload struct {
	Variables []byte
	Format    []byte

	// FormatName is the name of the archive entry which held the format
	// document.
	FormatName string
}

// Open reads the label file at path.  The name of the variables entry is
// derived from the file name.
func Open(path, password string) (*Payload, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return extract(&zr.Reader, BaseName(path), password)
}

// Read reads a label file from r.  The baseName is the name of the label
// file without directory and extension.
func Read(r io.ReaderAt, size int64, baseName, password string) (*Payload, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return extract(zr, baseName, password)
}

// BaseName returns the file name of path without directory and extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func extract(zr *zip.Reader, baseName, password string) (*Payload, error) {
	key, err := preparePassword(password)
	if err != nil {
		return nil, err
	}

	varsName := baseName + VariablesExt
	var varsFile, formatFile *zip.File
	for _, f := range zr.File {
		switch {
		case f.Name == varsName:
			if varsFile == nil {
				varsFile = f
			}
		case strings.HasPrefix(f.Name, FormatsDir) && !strings.HasSuffix(f.Name, "/"):
			if formatFile == nil {
				formatFile = f
			}
		}
	}
	if varsFile == nil {
		return nil, &MissingEntryError{Name: varsName}
	}
	if formatFile == nil {
		return nil, &MissingEntryError{Name: FormatsDir}
	}

	res := &Payload{FormatName: formatFile.Name}
	res.Variables, err = readEntry(varsFile, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", varsFile.Name, err)
	}
	res.Format, err = readEntry(formatFile, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", formatFile.Name, err)
	}
	return res, nil
}

// preparePassword returns the key bytes for passwd.  SASLprep only
// rejects prohibited characters here; the cipher keys are derived from the
// password bytes as given, since SASLprep mappings would change them.
func preparePassword(passwd string) ([]byte, error) {
	if _, err := stringprep.SASLprep.Prepare(passwd); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	return []byte(passwd), nil
}

// readEntry returns the decrypted and decompressed contents of f.
func readEntry(f *zip.File, key []byte) ([]byte, error) {
	if f.Method == methodAES {
		return nil, ErrUnsupported
	}
	if f.Flags&flagEncrypted == 0 {
		rc, err := f.Open()
		if err != nil {
			if errors.Is(err, zip.ErrAlgorithm) {
				return nil, ErrUnsupported
			}
			return nil, err
		}
		defer rc.Close()
		return readLimited(rc)
	}

	raw, err := f.OpenRaw()
	if err != nil {
		return nil, err
	}
	var r io.Reader
	r, err = newDecryptReader(raw, key, checkByte(f))
	if err != nil {
		return nil, err
	}

	switch f.Method {
	case zip.Store:
	case zip.Deflate:
		fr := flate.NewReader(r)
		defer fr.Close()
		r = fr
	default:
		return nil, ErrUnsupported
	}

	// A wrong password passes the header check with probability 1/256.
	data, err := readLimited(r)
	var corrupt flate.CorruptInputError
	if errors.As(err, &corrupt) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, ErrPassword
	} else if err != nil {
		return nil, err
	}
	if crc32.ChecksumIEEE(data) != f.CRC32 {
		return nil, ErrPassword
	}
	return data, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	buf := &bytes.Buffer{}
	n, err := io.Copy(buf, io.LimitReader(r, maxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if n > maxEntrySize {
		return nil, errTooLarge
	}
	return buf.Bytes(), nil
}
