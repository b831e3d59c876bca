// This file is part of crtterm.
//
// crtterm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// crtterm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with crtterm.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"errors"
	"io"
	"testing"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packages commonly prefix their name to errors from sub-systems
	f := curated.Errorf("rasterizer: %v", curated.Errorf("rasterizer: %v", "texture too large"))
	test.ExpectEquality(t, f.Error(), "rasterizer: texture too large")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, testErrorB))

	// Has() should fail because we haven't wrapped anything
	test.ExpectFailure(t, curated.Has(e, testErrorB))

	f := curated.Errorf(testErrorB, e)
	test.ExpectSuccess(t, curated.Is(f, testErrorB))
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testErrorB))

	// plain errors are never curated
	test.ExpectFailure(t, curated.IsAny(io.EOF))
	test.ExpectFailure(t, curated.Is(nil, testError))
	test.ExpectSuccess(t, curated.IsAny(f))
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf("prefs: %v", io.EOF)
	test.ExpectSuccess(t, errors.Is(e, io.EOF))

	f := curated.Errorf("prefs: %v", "no error here")
	test.ExpectFailure(t, errors.Is(f, io.EOF))
}
