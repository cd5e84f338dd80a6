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
	"sort"
	"strings"

	"github.com/crossplane/crossplane-runtime/pkg/logging"
)

// TransactionSet is the indexed collection of TransactionMembers plus the
// auxiliary state (conditionals, unresolved members, deferred selector
// installs, classification lists) that a resolver and, eventually, a package
// database executor need to commit a set of package operations.
//
// A TransactionSet is single-threaded: it owns no external resources and
// provides no internal synchronization. Concurrent reads are only safe when
// no mutation is in flight.
type TransactionSet struct {
	byID   map[PackageID][]*TransactionMember
	byName map[string][]*TransactionMember

	unresolved map[*TransactionMember]struct{}

	conditionals     map[string][]PackageRef
	selectorInstalls []Selector

	stateCounter uint64
	changed      bool

	installOnlyNames map[string]struct{}

	// UpgradeAll records the caller's intent to upgrade every installed
	// package. The transaction set itself never acts on this flag; it is
	// carried for collaborators that do.
	UpgradeAll bool

	Installed     []*TransactionMember
	Updated       []*TransactionMember
	Removed       []*TransactionMember
	Obsoleted     []*TransactionMember
	DepInstalled  []*TransactionMember
	DepUpdated    []*TransactionMember
	DepRemoved    []*TransactionMember
	Reinstalled   []*TransactionMember
	Downgraded    []*TransactionMember
	Failed        []*TransactionMember
	InstGroups    []string
	RemovedGroups []string

	log                logging.Logger
	cmp                VersionComparator
	installedDB        InstalledDB
	availableDB        PatternDB
	installedPatternDB PatternDB
	yumdb              YumDB
	installFunc        InstallFunc
	reinstallDetection bool
}

// New returns an empty TransactionSet.
func New(opts ...Option) *TransactionSet {
	ts := &TransactionSet{
		byID:             make(map[PackageID][]*TransactionMember),
		byName:           make(map[string][]*TransactionMember),
		unresolved:       make(map[*TransactionMember]struct{}),
		conditionals:     make(map[string][]PackageRef),
		installOnlyNames: make(map[string]struct{}),
		log:              logging.NewNopLogger(),
		cmp:              DefaultVersionComparator{},
	}
	for _, o := range opts {
		o(ts)
	}
	return ts
}

// StateCounter is a monotonically increasing integer bumped on every
// mutation. Observers may read it before and after an operation sequence; an
// unchanged value implies no mutation occurred.
func (ts *TransactionSet) StateCounter() uint64 { return ts.stateCounter }

// Changed reports whether any mutation has ever been applied to the set.
func (ts *TransactionSet) Changed() bool { return ts.changed }

func (ts *TransactionSet) bump() {
	ts.stateCounter++
	ts.changed = true
}

// Len is the number of distinct package identities in the set plus the
// number of deferred selector installs.
func (ts *TransactionSet) Len() int {
	return len(ts.byID) + len(ts.selectorInstalls)
}

// Iterate returns every member in the set. It is equivalent to
// Members(nil).
func (ts *TransactionSet) Iterate() []*TransactionMember {
	return ts.Members(nil)
}

// Members returns the member list for id, or every member in the set when id
// is nil. The returned slice is a copy; mutating it does not affect the set.
func (ts *TransactionSet) Members(id *PackageID) []*TransactionMember {
	if id != nil {
		members := ts.byID[*id]
		out := make([]*TransactionMember, len(members))
		copy(out, members)
		return out
	}

	var out []*TransactionMember
	for _, members := range ts.byID {
		out = append(out, members...)
	}
	return out
}

// MembersWithState returns every member whose OutputState is in states.
func (ts *TransactionSet) MembersWithState(states ...OutputState) []*TransactionMember {
	want := make(map[OutputState]struct{}, len(states))
	for _, s := range states {
		want[s] = struct{}{}
	}

	var out []*TransactionMember
	for _, m := range ts.Iterate() {
		if _, ok := want[m.OutputState]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Exists reports whether any member is registered under id.
func (ts *TransactionSet) Exists(id PackageID) bool {
	return len(ts.byID[id]) != 0
}

// PropagatedReason returns m's reason, or, when m is an update/downgrade
// carrying a non-user reason, the stored reason of the package it replaces
// as looked up in the TransactionSet's registered YumDB. See
// TransactionMember.PropagatedReason for the full rule.
func (ts *TransactionSet) PropagatedReason(m *TransactionMember) Reason {
	return m.PropagatedReason(ts.yumdb)
}

// Filter selects members by name/arch/epoch/version/release. A nil field is
// a wildcard. Name, given, narrows the initial scan to ts.byName; every
// other given field is then applied as an additional predicate.
type Filter struct {
	Name    *string
	Arch    *string
	Epoch   *uint32
	Version *string
	Release *string
}

// MatchNaevr filters members by f, using the by-name index when f.Name is
// given. An all-nil Filter returns every member.
func (ts *TransactionSet) MatchNaevr(f Filter) []*TransactionMember {
	var candidates []*TransactionMember
	if f.Name != nil {
		members := ts.byName[*f.Name]
		candidates = make([]*TransactionMember, len(members))
		copy(candidates, members)
		if f.Arch == nil && f.Epoch == nil && f.Version == nil && f.Release == nil {
			return candidates
		}
	} else {
		candidates = ts.Iterate()
	}

	var out []*TransactionMember
	for _, m := range candidates {
		id := m.ID()
		if f.Arch != nil && *f.Arch != id.Arch {
			continue
		}
		if f.Epoch != nil && *f.Epoch != id.Epoch {
			continue
		}
		if f.Version != nil && *f.Version != id.Version {
			continue
		}
		if f.Release != nil && *f.Release != id.Release {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GetMode returns the ts_state the CLI should report for the first match of
// f: "u" if any match is an update, else "i" if any match is an install,
// else the first match's ts_state. ok is false when f matches nothing.
func (ts *TransactionSet) GetMode(f Filter) (mode string, ok bool) {
	matches := ts.MatchNaevr(f)
	if len(matches) == 0 {
		return "", false
	}

	for _, m := range matches {
		if m.TSState == TSStateUpdate {
			return TSStateUpdate.String(), true
		}
	}
	for _, m := range matches {
		if m.TSState == TSStateInstall {
			return TSStateInstall.String(), true
		}
	}
	return matches[0].TSState.String(), true
}

// UnresolvedMembers returns the members still pending dependency processing,
// sorted by PackageID. Sorting is required so resolution order is
// architecture-independent and reproducible, otherwise .i386 can sort
// differently from .x86_64 depending on map iteration order.
func (ts *TransactionSet) UnresolvedMembers() []*TransactionMember {
	out := make([]*TransactionMember, 0, len(ts.unresolved))
	for m := range ts.unresolved {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j], ts.cmp)
	})
	return out
}

// MarkResolved removes m from the unresolved set.
func (ts *TransactionSet) MarkResolved(m *TransactionMember) {
	delete(ts.unresolved, m)
}

// ResetResolved clears and repopulates the unresolved set from every current
// member when hard is true, or when the set is smaller than the unresolved
// set (re-examining everything is cheaper than tracking fine-grained deltas
// after a large mutation). It reports whether a reset occurred.
func (ts *TransactionSet) ResetResolved(hard bool) bool {
	if !hard && ts.Len() >= len(ts.unresolved) {
		return false
	}
	ts.unresolved = make(map[*TransactionMember]struct{})
	for _, m := range ts.Iterate() {
		ts.unresolved[m] = struct{}{}
	}
	return true
}

// Add inserts member into the set. If no member is already registered under
// member's PackageID, an entry is created; if one exists with the same
// TSState, member is silently discarded as a duplicate. Otherwise member is
// appended to both indices, the counters are bumped, and member enters the
// unresolved set.
//
// If member's name is a key in the conditionals table, every candidate not
// already in the installed database is auto-installed via the registered
// InstallFunc and marked as a dependency of member.
func (ts *TransactionSet) Add(member *TransactionMember) (added bool, err error) {
	id := member.ID()
	existing := ts.byID[id]

	for _, m := range existing {
		if m.TSState == member.TSState {
			ts.log.Debug("package already in transaction set in same mode, skipping", "id", id, "ts_state", member.TSState)
			return false, nil
		}
	}

	ts.byID[id] = append(existing, member)
	ts.byName[member.Name()] = append(ts.byName[member.Name()], member)
	ts.bump()
	ts.unresolved[member] = struct{}{}

	if candidates, ok := ts.conditionals[member.Name()]; ok && ts.installFunc != nil {
		// Snapshot the candidate list: the install callback may itself
		// mutate ts.conditionals (e.g. via Deselect running inside a
		// caller's callback), so iterate over a copy rather than the live
		// slice.
		snapshot := append([]PackageRef(nil), candidates...)
		for _, candidate := range snapshot {
			if ts.installedDB != nil && ts.installedDB.Contains(candidate) {
				continue
			}
			created, ferr := ts.installFunc(candidate)
			if ferr != nil {
				return true, wrapConditionalInstallError(ferr, member.Name())
			}
			for _, c := range created {
				c.SetAsDep(member.Package)
			}
		}
	}

	return true, nil
}

// Remove deletes every member registered under id. It is a no-op if id is
// absent, logged at debug with no error signal. Removed members are placed
// back into the unresolved set, since they represent pending work the
// resolver may need to revisit.
func (ts *TransactionSet) Remove(id PackageID) (removed bool) {
	members, ok := ts.byID[id]
	if !ok {
		ts.log.Debug("package not in transaction set", "id", id)
		return false
	}

	for _, m := range members {
		ts.byName[m.Name()] = removeMember(ts.byName[m.Name()], m)
		if len(ts.byName[m.Name()]) == 0 {
			delete(ts.byName, m.Name())
		}
		ts.unresolved[m] = struct{}{}
	}

	delete(ts.byID, id)
	ts.bump()
	return true
}

func removeMember(members []*TransactionMember, target *TransactionMember) []*TransactionMember {
	out := members[:0:0] //nolint:gocritic // explicit empty-with-capacity-0 to force a fresh backing array.
	for _, m := range members {
		if m != target {
			out = append(out, m)
		}
	}
	return out
}

// AddInstall adds pkg as a plain install. If reinstall detection is enabled
// and the installed database already contains pkg, the resulting member's
// Reinstall field is set.
func (ts *TransactionSet) AddInstall(pkg PackageRef) *TransactionMember {
	m := newMember(pkg)
	m.CurrentState = CurrentStateAvailable
	m.OutputState = OutputStateInstall
	m.TSState = TSStateInstall

	if ts.reinstallDetection && ts.installedDB != nil && ts.installedDB.Contains(pkg) {
		m.Reinstall = true
	}

	_, _ = ts.Add(m)
	return m
}

// AddTrueInstall is, in the current design, equivalent to AddInstall. The
// OutputStateTrueInstall classification is preserved in the taxonomy for
// possible future use.
func (ts *TransactionSet) AddTrueInstall(pkg PackageRef) *TransactionMember {
	return ts.AddInstall(pkg)
}

// AddErase adds pkg as an erasure.
func (ts *TransactionSet) AddErase(pkg PackageRef) *TransactionMember {
	m := newMember(pkg)
	m.CurrentState = CurrentStateInstalled
	m.OutputState = OutputStateErase
	m.TSState = TSStateErase
	_, _ = ts.Add(m)
	return m
}

// allowedMultipleInstalls reports whether pkg's name may have more than one
// installed version at a time. Only the name-based installOnlyNames check is
// implemented; a provides-based variant is intentionally not implemented
// (see DESIGN.md).
func (ts *TransactionSet) allowedMultipleInstalls(pkg PackageRef) bool {
	_, ok := ts.installOnlyNames[pkg.ID().Name]
	return ok
}

// AddUpdate adds newPkg as an update of oldPkg. If newPkg's name is
// installonly, this delegates to AddTrueInstall instead: an installonly
// package is never actually "updated" away, it is simply installed
// alongside what's already there. Otherwise, when oldPkg is given, newPkg's
// member cross-links to oldPkg via an "updates" relation and a peer member
// for oldPkg is created with OutputStateUpdated.
func (ts *TransactionSet) AddUpdate(newPkg, oldPkg PackageRef) *TransactionMember {
	if ts.allowedMultipleInstalls(newPkg) {
		return ts.AddTrueInstall(newPkg)
	}

	m := newMember(newPkg)
	m.CurrentState = CurrentStateAvailable
	m.OutputState = OutputStateUpdate
	m.TSState = TSStateUpdate

	if oldPkg != nil {
		m.RelatedTo = append(m.RelatedTo, Relation{Package: oldPkg, Tag: "updates"})
		m.Updates = append(m.Updates, oldPkg)
		ts.addUpdated(oldPkg, newPkg)
	}

	_, _ = ts.Add(m)
	return m
}

// addUpdated registers the peer member recording that oldPkg is being
// replaced by newPkg. It is not exposed on the public API: there is no point
// a caller would add this member directly rather than through AddUpdate.
func (ts *TransactionSet) addUpdated(oldPkg, newPkg PackageRef) *TransactionMember {
	m := newMember(oldPkg)
	m.CurrentState = CurrentStateInstalled
	m.OutputState = OutputStateUpdated
	m.TSState = TSStateUpdated
	m.RelatedTo = append(m.RelatedTo, Relation{Package: newPkg, Tag: "updatedby"})
	m.UpdatedBy = append(m.UpdatedBy, newPkg)
	_, _ = ts.Add(m)
	return m
}

// AddDowngrade adds newPkg as an install and, when oldPkg is given, also adds
// oldPkg as an erasure and cross-links the two members ("downgrades" /
// "downgradedby"). It returns the install member.
func (ts *TransactionSet) AddDowngrade(newPkg, oldPkg PackageRef) *TransactionMember {
	installed := ts.AddInstall(newPkg)

	if oldPkg != nil {
		erased := ts.AddErase(oldPkg)
		erased.DowngradedBy = append(erased.DowngradedBy, newPkg)
		erased.RelatedTo = append(erased.RelatedTo, Relation{Package: newPkg, Tag: "downgradedby"})
		installed.Downgrades = append(installed.Downgrades, oldPkg)
		installed.RelatedTo = append(installed.RelatedTo, Relation{Package: oldPkg, Tag: "downgrades"})
	}

	return installed
}

// AddSelectorInstall defers sel to the resolver. Selectors count toward Len
// but never materialize as TransactionMembers.
func (ts *TransactionSet) AddSelectorInstall(sel Selector) {
	ts.selectorInstalls = append(ts.selectorInstalls, sel)
	ts.bump()
}

// Deselect removes the packages matching pattern, in the caller-oriented way
// a kickstart-style "remove this one thing from the larger install set"
// request needs. It first tries pattern as a bare name, then as "name.arch",
// and only then falls back to querying the available and installed
// databases. Any PackageRef matched this way is also purged from every
// conditionals candidate list it appears in, so it is not re-added later as
// a dependency of something still in the set.
func (ts *TransactionSet) Deselect(pattern string) ([]*TransactionMember, error) {
	members := ts.MatchNaevr(Filter{Name: &pattern})

	if len(members) == 0 {
		if name, arch, ok := splitTrailingArch(pattern); ok {
			members = ts.MatchNaevr(Filter{Name: &name, Arch: &arch})
		}
	}

	if len(members) == 0 {
		var refs []PackageRef
		if ts.availableDB != nil {
			found, err := ts.availableDB.ReturnPackages([]string{pattern})
			if err != nil {
				return nil, err
			}
			refs = found
		}
		if len(refs) == 0 && ts.installedPatternDB != nil {
			found, err := ts.installedPatternDB.ReturnPackages([]string{pattern})
			if err != nil {
				return nil, err
			}
			refs = found
		}

		for _, ref := range refs {
			id := ref.ID()
			members = append(members, ts.Members(&id)...)
			ts.purgeConditional(ref)
		}
	}

	for _, m := range members {
		ts.Remove(m.ID())
	}
	return members, nil
}

// purgeConditional removes ref from every conditionals candidate list it
// appears in. It mutates each list it finds ref in rather than clearing the
// whole conditionals table.
func (ts *TransactionSet) purgeConditional(ref PackageRef) {
	for req, candidates := range ts.conditionals {
		filtered := candidates[:0:0] //nolint:gocritic // force a fresh backing array.
		for _, c := range candidates {
			if c.ID() != ref.ID() {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) != len(candidates) {
			ts.conditionals[req] = filtered
		}
	}
}

// splitTrailingArch splits "name.arch" on the last '.', returning ok=false if
// pattern has no '.' to split on.
func splitTrailingArch(pattern string) (name, arch string, ok bool) {
	idx := strings.LastIndex(pattern, ".")
	if idx < 0 {
		return "", "", false
	}
	return pattern[:idx], pattern[idx+1:], true
}

// SetConditional registers candidates as packages that must be auto-installed
// when a member named name is added to the set, subject to them not already
// being installed. Add matches on the member's name only; the capabilities a
// member provides are not consulted.
func (ts *TransactionSet) SetConditional(name string, candidates ...PackageRef) {
	ts.conditionals[name] = append(ts.conditionals[name], candidates...)
}

// Makelists rebuilds the classification lists from scratch by dispatching on
// each member's OutputState. Calling it twice in succession on an unchanged
// set produces equal lists.
func (ts *TransactionSet) Makelists(includeReinstall, includeDowngrade bool) {
	ts.InstGroups = nil
	ts.RemovedGroups = nil
	ts.Removed = nil
	ts.Installed = nil
	ts.Updated = nil
	ts.Obsoleted = nil
	ts.DepRemoved = nil
	ts.DepInstalled = nil
	ts.DepUpdated = nil
	ts.Reinstalled = nil
	ts.Downgraded = nil
	ts.Failed = nil

	for _, m := range ts.Iterate() {
		switch m.OutputState {
		case OutputStateUpdate:
			if m.IsDep {
				ts.DepUpdated = append(ts.DepUpdated, m)
			} else {
				ts.Updated = append(ts.Updated, m)
			}

		case OutputStateInstall, OutputStateTrueInstall:
			switch {
			case includeReinstall && m.Reinstall:
				ts.Reinstalled = append(ts.Reinstalled, m)
			case includeDowngrade && len(m.Downgrades) > 0:
				ts.Downgraded = append(ts.Downgraded, m)
			default:
				ts.InstGroups = mergeGroups(ts.InstGroups, m.Groups)
				if m.IsDep {
					ts.DepInstalled = append(ts.DepInstalled, m)
				} else {
					ts.Installed = append(ts.Installed, m)
				}
			}

		case OutputStateErase:
			if includeDowngrade && len(m.DowngradedBy) > 0 {
				continue
			}
			ts.RemovedGroups = mergeGroups(ts.RemovedGroups, m.Groups)
			if m.IsDep {
				ts.DepRemoved = append(ts.DepRemoved, m)
			} else {
				ts.Removed = append(ts.Removed, m)
			}

		case OutputStateObsoleted:
			ts.Obsoleted = append(ts.Obsoleted, m)

		case OutputStateObsoleting:
			ts.Installed = append(ts.Installed, m)

		case OutputStateFailed:
			ts.Failed = append(ts.Failed, m)
		}
	}

	sortMembers(ts.Updated, ts.cmp)
	sortMembers(ts.Installed, ts.cmp)
	sortMembers(ts.Removed, ts.cmp)
	sortMembers(ts.Obsoleted, ts.cmp)
	sortMembers(ts.DepUpdated, ts.cmp)
	sortMembers(ts.DepInstalled, ts.cmp)
	sortMembers(ts.DepRemoved, ts.cmp)
	sortMembers(ts.Reinstalled, ts.cmp)
	sortMembers(ts.Downgraded, ts.cmp)
	sortMembers(ts.Failed, ts.cmp)
	sort.Strings(ts.InstGroups)
	sort.Strings(ts.RemovedGroups)
}

func mergeGroups(into []string, groups []string) []string {
	for _, g := range groups {
		found := false
		for _, existing := range into {
			if existing == g {
				found = true
				break
			}
		}
		if !found {
			into = append(into, g)
		}
	}
	return into
}

func sortMembers(members []*TransactionMember, cmp VersionComparator) {
	sort.Slice(members, func(i, j int) bool {
		return members[i].Less(members[j], cmp)
	})
}
