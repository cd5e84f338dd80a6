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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testPackage is a bare PackageRef used only by this package's internal
// tests, so they don't need to import the fake subpackage (which imports
// transaction itself).
type testPackage struct {
	id PackageID
}

func (p *testPackage) ID() PackageID      { return p.id }
func (p *testPackage) Repository() string { return "" }
func (p *testPackage) FromSystem() bool   { return false }
func (p *testPackage) Provides() []string { return nil }

func pkg(name string) *testPackage {
	return &testPackage{id: PackageID{Name: name, Arch: "x86_64", Version: "1", Release: "1"}}
}

type mockYumDB struct {
	getPackage func(PackageRef) (string, bool)
}

func (m *mockYumDB) GetPackage(pkg PackageRef) (string, bool) { return m.getPackage(pkg) }

func TestSetAsDep(t *testing.T) {
	type want struct {
		isDep      bool
		dependsOn  int
		relatedTo  int
	}
	cases := map[string]struct {
		reason string
		other  PackageRef
		want   want
	}{
		"WithCause": {
			reason: "Marking as a dep with a cause records the cause both in DependsOn and RelatedTo.",
			other:  pkg("parent"),
			want:   want{isDep: true, dependsOn: 1, relatedTo: 1},
		},
		"NoCause": {
			reason: "Marking as a dep with no cause just flips IsDep.",
			other:  nil,
			want:   want{isDep: true, dependsOn: 0, relatedTo: 0},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			m := newMember(pkg("child"))
			m.SetAsDep(tc.other)

			got := want{isDep: m.IsDep, dependsOn: len(m.DependsOn), relatedTo: len(m.RelatedTo)}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(want{})); diff != "" {
				t.Errorf("\n%s\nSetAsDep(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestPropagatedReason(t *testing.T) {
	cases := map[string]struct {
		reason string
		member func() *TransactionMember
		yumdb  *mockYumDB
		want   Reason
	}{
		"UserReasonWins": {
			reason: "A user-requested member always keeps its own reason.",
			member: func() *TransactionMember {
				m := newMember(pkg("bash"))
				m.Reason = ReasonUser
				m.Updates = []PackageRef{pkg("bash")}
				return m
			},
			yumdb: &mockYumDB{getPackage: func(PackageRef) (string, bool) { return "dep", true }},
			want:  ReasonUser,
		},
		"NotAnUpdateOrDowngrade": {
			reason: "A plain install with no prior package keeps its own reason.",
			member: func() *TransactionMember {
				m := newMember(pkg("bash"))
				m.Reason = ReasonDep
				return m
			},
			yumdb: nil,
			want:  ReasonDep,
		},
		"PropagatesFromUpdatedPackage": {
			reason: "An update of a dep-installed package inherits that reason from yumdb.",
			member: func() *TransactionMember {
				m := newMember(pkg("bash"))
				m.Reason = ReasonUnknown
				m.Updates = []PackageRef{pkg("bash")}
				return m
			},
			yumdb: &mockYumDB{getPackage: func(PackageRef) (string, bool) { return "dep", true }},
			want:  ReasonDep,
		},
		"FallsBackWhenYumdbMisses": {
			reason: "A yumdb miss keeps the member's own reason.",
			member: func() *TransactionMember {
				m := newMember(pkg("bash"))
				m.Reason = ReasonUnknown
				m.Updates = []PackageRef{pkg("bash")}
				return m
			},
			yumdb: &mockYumDB{getPackage: func(PackageRef) (string, bool) { return "", false }},
			want:  ReasonUnknown,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var db YumDB
			if tc.yumdb != nil {
				db = tc.yumdb
			}
			got := tc.member().PropagatedReason(db)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("\n%s\nPropagatedReason(...): -want, +got:\n%s", tc.reason, diff)
			}
		})
	}
}

func TestDump(t *testing.T) {
	m := newMember(pkg("bash"))
	m.CurrentState = CurrentStateAvailable
	m.TSState = TSStateInstall
	m.OutputState = OutputStateInstall
	m.Reason = ReasonUser

	got := m.Dump()

	for _, want := range []string{"mbr: bash,x86_64,0,1,1", "ts_state: i", "output_state: install", "reason: user"} {
		if !strings.Contains(got, want) {
			t.Errorf("Dump(): missing %q in:\n%s", want, got)
		}
	}
}
