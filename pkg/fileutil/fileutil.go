// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fileutil

import (
	"bufio"
	"io"
	"os"
)

// WriteFile calls write with a buffered writer for dst. It writes to a
// temporary file and then moves it into place, so dst is either left alone
// or fully replaced.
func WriteFile(dst string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	tempDst := dst + ".tmp"
	f, err := os.OpenFile(tempDst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		f.Close()
		if err == nil {
			err = os.Rename(tempDst, dst)
		}
		if err != nil {
			os.Remove(tempDst)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	return f.Sync()
}
