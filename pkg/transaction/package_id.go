/*
Copyright 2026 The DNF-Go Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package transaction implements the transaction-set core of a system-level
// package manager: the in-memory structure that accumulates, classifies,
// cross-links, and topologically orders a set of package operations before
// they are committed by an external executor.
package transaction

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
)

// PackageID is the canonical identity of a single package version. Two
// PackageIDs are equal iff every field compares equal.
type PackageID struct {
	Name    string
	Arch    string
	Epoch   uint32
	Version string
	Release string
}

// String renders the identity as name.arch epoch:version-release.
func (id PackageID) String() string {
	return fmt.Sprintf("%s.%s %d:%s-%s", id.Name, id.Arch, id.Epoch, id.Version, id.Release)
}

// VersionComparator orders two PackageIDs' version/release pair. It is an
// external collaborator: the transaction set never invents its own version
// semantics, it defers to whatever the package manager uses.
type VersionComparator interface {
	// Compare returns <0, 0, or >0 as a's (version, release) is less than,
	// equal to, or greater than b's. Name, arch, and epoch are not compared
	// here; Less on PackageID handles those first.
	Compare(a, b PackageID) int
}

// Less reports whether id sorts before other: by name, then arch, then epoch
// numerically, then by version/release via cmp.
func (id PackageID) Less(other PackageID, cmp VersionComparator) bool {
	if id.Name != other.Name {
		return id.Name < other.Name
	}
	if id.Arch != other.Arch {
		return id.Arch < other.Arch
	}
	if id.Epoch != other.Epoch {
		return id.Epoch < other.Epoch
	}
	if cmp == nil {
		cmp = DefaultVersionComparator{}
	}
	return cmp.Compare(id, other) < 0
}

// SortPackageIDs sorts ids in place in ascending PackageID order using cmp.
// A nil cmp falls back to DefaultVersionComparator.
func SortPackageIDs(ids []PackageID, cmp VersionComparator) {
	if cmp == nil {
		cmp = DefaultVersionComparator{}
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j], cmp)
	})
}

// DefaultVersionComparator is the VersionComparator used when no collaborator
// is supplied. It prefers semantic-version comparison
// (github.com/Masterminds/semver) of "version-release" and falls back to a
// segment-wise alphanumeric comparison, the shape of the classic rpmvercmp
// algorithm, when either side does not parse. The semver parser is lenient:
// a distro version like "5.1-2.fc30" parses, with the release taken as a
// semver pre-release; strings such as "1.0.0.1" do not, and use the fallback.
type DefaultVersionComparator struct{}

// Compare implements VersionComparator.
func (DefaultVersionComparator) Compare(a, b PackageID) int {
	av, aerr := semver.NewVersion(joinVersionRelease(a))
	bv, berr := semver.NewVersion(joinVersionRelease(b))
	if aerr == nil && berr == nil {
		return av.Compare(bv)
	}

	if c := compareSegments(a.Version, b.Version); c != 0 {
		return c
	}
	return compareSegments(a.Release, b.Release)
}

func joinVersionRelease(id PackageID) string {
	if id.Release == "" {
		return id.Version
	}
	return id.Version + "-" + id.Release
}

// compareSegments implements rpmvercmp-style comparison: strings are split
// into alternating runs of digits and non-digits; digit runs compare
// numerically (leading zeros ignored), other runs compare lexically, a digit
// run outranks a non-digit run, and a missing segment always loses to a
// present one.
func compareSegments(a, b string) int {
	as, bs := splitSegments(a), splitSegments(b)
	for i := 0; i < len(as) || i < len(bs); i++ {
		if i >= len(as) {
			return -1
		}
		if i >= len(bs) {
			return 1
		}
		sa, sb := as[i], bs[i]
		aDigit := isDigitRun(sa)
		bDigit := isDigitRun(sb)
		switch {
		case aDigit && bDigit:
			na, _ := strconv.Atoi(strings.TrimLeft(sa, "0"))
			nb, _ := strconv.Atoi(strings.TrimLeft(sb, "0"))
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
		case aDigit && !bDigit:
			return 1
		case !aDigit && bDigit:
			return -1
		default:
			if sa != sb {
				if sa < sb {
					return -1
				}
				return 1
			}
		}
	}
	return 0
}

func isDigitRun(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitSegments(s string) []string {
	var segments []string
	var cur strings.Builder
	var curIsDigit bool
	started := false

	flush := func() {
		if cur.Len() > 0 {
			segments = append(segments, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		digit := r >= '0' && r <= '9'
		if !started {
			curIsDigit = digit
			started = true
		} else if digit != curIsDigit {
			flush()
			curIsDigit = digit
		}
		cur.WriteRune(r)
	}
	flush()
	return segments
}
