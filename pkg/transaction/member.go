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
	"fmt"
	"sort"
	"strings"
)

// Relation is one entry in a member's related_to list: another package and
// the tag describing how it relates to this member ("updates", "downgrades",
// "dependson", and so on).
type Relation struct {
	Package PackageRef
	Tag     string
}

// TransactionMember is one intended operation on one package: install,
// update, erase, downgrade, reinstall, or obsolete. It holds state, the
// reason it is in the transaction, its group memberships, and cross-links to
// related members.
type TransactionMember struct {
	Package PackageRef

	CurrentState CurrentState
	TSState      TSState
	OutputState  OutputState

	IsDep     bool
	Reason    Reason
	Reinstall bool

	Groups []string

	RelatedTo []Relation

	DependsOn    []PackageRef
	Obsoletes    []PackageRef
	ObsoletedBy  []PackageRef
	Updates      []PackageRef
	UpdatedBy    []PackageRef
	Downgrades   []PackageRef
	DowngradedBy []PackageRef

	// id and name are copied off Package at construction time for O(1)
	// access.
	id   PackageID
	name string

	sortColor sortColor
}

// newMember constructs a TransactionMember for pkg with every relation list
// empty and reason unknown, copying identity attributes off pkg so later
// lookups don't need to dereference the PackageRef.
func newMember(pkg PackageRef) *TransactionMember {
	return &TransactionMember{
		Package:   pkg,
		Reason:    ReasonUnknown,
		id:        pkg.ID(),
		name:      pkg.ID().Name,
		sortColor: colorWhite,
	}
}

// ID returns the identity of the package this member operates on. A
// member's package never changes after construction, so this id is
// immutable for the member's lifetime.
func (m *TransactionMember) ID() PackageID { return m.id }

// Name returns the package name this member operates on.
func (m *TransactionMember) Name() string { return m.name }

// SetAsDep marks the member as pulled in by a dependency. If other is
// non-nil, it is recorded both in RelatedTo (tagged "dependson") and
// appended to DependsOn.
func (m *TransactionMember) SetAsDep(other PackageRef) {
	m.IsDep = true
	if other != nil {
		m.RelatedTo = append(m.RelatedTo, Relation{Package: other, Tag: "dependson"})
		m.DependsOn = append(m.DependsOn, other)
	}
}

// PropagatedReason returns the member's reason, unless that reason is not
// "user" and the member is an update or downgrade: in that case it returns
// the stored reason of the first updated/downgraded package as looked up in
// yumdb, falling back to the member's own reason if that lookup misses. This
// is how an upgrade of a dependency-installed package keeps its
// dependency-installed status across the upgrade.
func (m *TransactionMember) PropagatedReason(yumdb YumDB) Reason {
	if m.Reason == ReasonUser {
		return m.Reason
	}

	var previous PackageRef
	switch {
	case len(m.Updates) > 0:
		previous = m.Updates[0]
	case len(m.Downgrades) > 0:
		previous = m.Downgrades[0]
	default:
		return m.Reason
	}

	if yumdb == nil {
		return m.Reason
	}
	if reason, ok := yumdb.GetPackage(previous); ok && reason != "" {
		return Reason(reason)
	}
	return m.Reason
}

// Less orders two members by their package identity, using cmp to break
// version ties. A nil cmp falls back to DefaultVersionComparator.
func (m *TransactionMember) Less(other *TransactionMember, cmp VersionComparator) bool {
	return m.id.Less(other.id, cmp)
}

// Dump renders a deterministic textual representation of the member:
// identity, ts_state, output_state, is_dep, reason, reinstall, and each
// non-empty relation list. It is intended for tests and debug logs.
func (m *TransactionMember) Dump() string {
	var b strings.Builder

	fmt.Fprintf(&b, "mbr: %s,%s,%d,%s,%s %s\n", m.name, m.id.Arch, m.id.Epoch, m.id.Version, m.id.Release, m.CurrentState)
	fmt.Fprintf(&b, "  repo: %s\n", m.Package.Repository())
	fmt.Fprintf(&b, "  ts_state: %s\n", m.TSState)
	fmt.Fprintf(&b, "  output_state: %s\n", m.OutputState)
	fmt.Fprintf(&b, "  is_dep: %t\n", m.IsDep)
	fmt.Fprintf(&b, "  reason: %s\n", m.Reason)
	fmt.Fprintf(&b, "  reinstall: %t\n", m.Reinstall)

	if len(m.RelatedTo) > 0 {
		b.WriteString("  related_to:")
		for _, rel := range m.RelatedTo {
			id := rel.Package.ID()
			fmt.Fprintf(&b, " %s,%s,%d,%s,%s@%s:%s", id.Name, id.Arch, id.Epoch, id.Version, id.Release, originTag(rel.Package), rel.Tag)
		}
		b.WriteString("\n")
	}

	dumpRefList(&b, "depends_on", m.DependsOn)
	dumpRefList(&b, "obsoletes", m.Obsoletes)
	dumpRefList(&b, "obsoleted_by", m.ObsoletedBy)
	dumpRefList(&b, "downgrades", m.Downgrades)
	dumpRefList(&b, "downgraded_by", m.DowngradedBy)
	dumpRefList(&b, "updates", m.Updates)
	dumpRefList(&b, "updated_by", m.UpdatedBy)

	if len(m.Groups) > 0 {
		groups := append([]string(nil), m.Groups...)
		sort.Strings(groups)
		fmt.Fprintf(&b, "  groups: %s\n", strings.Join(groups, " "))
	}

	return b.String()
}

func dumpRefList(b *strings.Builder, label string, refs []PackageRef) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:", label)
	for _, ref := range refs {
		id := ref.ID()
		fmt.Fprintf(b, " %s,%s,%d,%s,%s@%s", id.Name, id.Arch, id.Epoch, id.Version, id.Release, originTag(ref))
	}
	b.WriteString("\n")
}
