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

package transaction

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPackageIDLess(t *testing.T) {
	cmpVer := DefaultVersionComparator{}

	type args struct {
		a, b PackageID
	}
	cases := map[string]struct {
		reason string
		args   args
		want   bool
	}{
		"NameWins": {
			reason: "A lower name sorts first regardless of version.",
			args: args{
				a: PackageID{Name: "bash", Version: "9", Release: "1"},
				b: PackageID{Name: "zsh", Version: "1", Release: "1"},
			},
			want: true,
		},
		"ArchBreaksNameTie": {
			reason: "Equal names fall back to arch.",
			args: args{
				a: PackageID{Name: "bash", Arch: "i386", Version: "1", Release: "1"},
				b: PackageID{Name: "bash", Arch: "x86_64", Version: "1", Release: "1"},
			},
			want: true,
		},
		"EpochWins": {
			reason: "A higher epoch always outranks version/release.",
			args: args{
				a: PackageID{Name: "bash", Arch: "x86_64", Epoch: 0, Version: "99", Release: "99"},
				b: PackageID{Name: "bash", Arch: "x86_64", Epoch: 1, Version: "1", Release: "1"},
			},
			want: true,
		},
		"VersionFallsBackToSegments": {
			reason: "Non-semver RPM-style versions compare segment-wise.",
			args: args{
				a: PackageID{Name: "bash", Arch: "x86_64", Version: "5.1.0.9", Release: "2.fc30"},
				b: PackageID{Name: "bash", Arch: "x86_64", Version: "5.1.0.10", Release: "1.fc30"},
			},
			want: true,
		},
		"ReleaseBreaksVersionTie": {
			reason: "Equal versions fall back to release.",
			args: args{
				a: PackageID{Name: "bash", Arch: "x86_64", Version: "5.1", Release: "1.fc30"},
				b: PackageID{Name: "bash", Arch: "x86_64", Version: "5.1", Release: "2.fc30"},
			},
			want: true,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.args.a.Less(tc.args.b, cmpVer)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("\n%s\nLess(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestSortPackageIDs(t *testing.T) {
	ids := []PackageID{
		{Name: "zsh", Version: "1", Release: "1"},
		{Name: "bash", Version: "1", Release: "1"},
		{Name: "ash", Version: "1", Release: "1"},
	}

	SortPackageIDs(ids, nil)

	want := []string{"ash", "bash", "zsh"}
	for i, id := range ids {
		if id.Name != want[i] {
			t.Errorf("SortPackageIDs(...): position %d: want %s, got %s", i, want[i], id.Name)
		}
	}
}

func TestCompareSegments(t *testing.T) {
	type args struct{ a, b string }
	cases := map[string]struct {
		reason string
		args   args
		want   int
	}{
		"NumericRunsCompareNumerically": {
			reason: "10 must outrank 9 even though '9' > '1' lexically.",
			args:   args{a: "9", b: "10"},
			want:   -1,
		},
		"LeadingZerosIgnored": {
			reason: "007 and 7 are numerically equal.",
			args:   args{a: "007", b: "7"},
			want:   0,
		},
		"Equal": {
			reason: "Identical strings compare equal.",
			args:   args{a: "5.1-2.fc30", b: "5.1-2.fc30"},
			want:   0,
		},
		"ShorterLosesWhenTrailingSegmentPresent": {
			reason: "A present segment outranks a missing one.",
			args:   args{a: "1.2", b: "1.2.3"},
			want:   -1,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := compareSegments(tc.args.a, tc.args.b)
			// Only the sign matters.
			got = sign(got)
			want := sign(tc.want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("\n%s\ncompareSegments(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
