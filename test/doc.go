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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions stop the test with t.Fatalf() and
// should be used when later tests depend on the value being correct.
//
// ExpectSuccess() and ExpectFailure() test for success and failure under
// generic conditions. A bool is successful if it is true and an error is
// successful if it is nil. It is worth noting that an untyped nil is also
// considered a success, because of how errors are usually returned.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output.
package test
