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

package script

import (
	"errors"
	"time"
)

// ErrTimeout is returned by runners created with [WithTimeout] when a
// script does not finish in time.
var ErrTimeout = errors.New("script timed out")

// WithTimeout returns a runner which gives up on scripts running for
// longer than d.  A script which times out keeps running in the background
// until it finishes; its result is discarded.
//
// If d is not positive, r is returned unchanged.
func WithTimeout(r Runner, d time.Duration) Runner {
	if d <= 0 {
		return r
	}
	return &timeoutRunner{r: r, d: d}
}

type timeoutRunner struct {
	r Runner
	d time.Duration
}

type runResult struct {
	val string
	err error
}

func (t *timeoutRunner) Run(src string, bindings map[string]string) (string, error) {
	c := make(chan runResult, 1)
	go func() {
		val, err := t.r.Run(src, bindings)
		c <- runResult{val, err}
	}()

	timer := time.NewTimer(t.d)
	defer timer.Stop()
	select {
	case res := <-c:
		return res.val, res.err
	case <-timer.C:
		return "", ErrTimeout
	}
}
