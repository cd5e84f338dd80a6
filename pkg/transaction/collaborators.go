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

// InstalledDB is the narrow view of the installed-package database the
// transaction set needs: identity-based membership checks used by Add (for
// conditional expansion) and, when reinstall detection is enabled, by
// AddInstall/AddTrueInstall.
type InstalledDB interface {
	// Contains reports whether pkg is already installed.
	Contains(pkg PackageRef) bool
}

// PatternDB is queried by Deselect when a user-supplied pattern doesn't match
// anything already in the transaction set. Both the available and installed
// databases implement it.
type PatternDB interface {
	// ReturnPackages returns every package matching any of patterns.
	ReturnPackages(patterns []string) ([]PackageRef, error)
}

// YumDB is consulted by TransactionMember.PropagatedReason to look up the
// reason a previously-installed package was originally installed for.
type YumDB interface {
	// GetPackage returns the stored reason for pkg, and whether it has one.
	GetPackage(pkg PackageRef) (reason string, ok bool)
}

// InstallFunc is the caller-supplied injector used when a conditional's
// candidate package must be auto-installed. It must add the newly created
// members to the transaction set itself; the set only calls SetAsDep on
// whatever it returns.
type InstallFunc func(pkg PackageRef) ([]*TransactionMember, error)

// Selector is an opaque install-by-pattern request deferred to the resolver.
// The transaction set never inspects a Selector's contents; it only counts
// and stores them.
type Selector interface{}
