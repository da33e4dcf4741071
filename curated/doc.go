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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The pattern is what identifies a curated error. Packages declare their
// patterns as exported constants so that callers can classify an error
// without comparing strings:
//
//	const NotFound = "storage: not found: %v"
//
//	err := curated.Errorf(storage.NotFound, "Data/Map001.json")
//	if curated.Is(err, storage.NotFound) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("cache: %v: %v", key, err)
//
//	if curated.Has(f, storage.NotFound) {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). Put another way, it returns true if the error is
// 'curated' (expected) and false if it is 'uncurated' (unexpected).
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. This means that a package can wrap an error from
// its own package without the message reading "storage: storage: ..."
//
// Curated errors also support the Unwrap() convention. The first error value
// given to Errorf() is returned, which means errors.Is() still works for
// sentinel errors such as os.ErrNotExist.
package curated
