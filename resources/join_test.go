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

package resources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/crtterm/resources"
	"github.com/jetsetilly/crtterm/test"
)

func TestJoinPath(t *testing.T) {
	base := t.TempDir()
	resources.SetBase(base)
	defer resources.SetBase("")

	p, err := resources.JoinPath("fonts", "bell.wav")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, filepath.Join(base, "fonts", "bell.wav"))

	// directory has been created but not the file
	info, err := os.Stat(filepath.Join(base, "fonts"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.IsDir())
	_, err = os.Stat(p)
	test.ExpectFailure(t, err)

	// already prefixed paths are not prefixed again
	q, err := resources.JoinPath(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q, p)
}
