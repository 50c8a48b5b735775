/*
 * files.go, part of molsvg.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chem

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//*zstd.Decoder doesn't implement io.ReadCloser, so we wrap it.
type zstdReadCloser struct {
	*zstd.Decoder
}

//Close closes the decoder. It can not be used after this call
func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//OpenStructure opens the file name, and returns a reader that decompresses it
//if needed. Files ending in .zst are read as z-standard, files ending in .gz as
//gzip, and anything else as plain text. Closing the returned reader closes the file.
func OpenStructure(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".zst"):
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdReadCloser{r}, nil
		}
	case strings.HasSuffix(strings.ToLower(name), ".gz"):
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	default:
		return f, nil
	}
	r, err := AnyNewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, WrapError(ErrorKindFormat, err, "can't decompress "+name, "OpenStructure")
	}
	return &fileReadCloser{ReadCloser: r, f: f}, nil
}

//fileReadCloser closes both the decompressor and the underlying file.
type fileReadCloser struct {
	io.ReadCloser
	f *os.File
}

func (F *fileReadCloser) Close() error {
	err := F.ReadCloser.Close()
	if err2 := F.f.Close(); err == nil {
		err = err2
	}
	return err
}

//SDFRead reads a structure-data file, possibly compressed (see OpenStructure),
//and returns the molecule in it.
func SDFRead(filename string) (*Molecule, error) {
	r, err := OpenStructure(filename)
	if err != nil {
		return nil, errDecorate(err, "SDFRead")
	}
	defer r.Close()
	mol, err := ParseSDF(r)
	if err != nil {
		return nil, errDecorate(err, "SDFRead "+filename)
	}
	return mol, nil
}
