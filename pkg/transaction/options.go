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

import "github.com/crossplane/crossplane-runtime/pkg/logging"

// Option configures a TransactionSet at construction time.
type Option func(*TransactionSet)

// WithLogger specifies how the TransactionSet logs its two debug-level
// conditions: a duplicate add and a remove of an unknown package. The
// default is a no-op logger.
func WithLogger(log logging.Logger) Option {
	return func(ts *TransactionSet) {
		ts.log = log
	}
}

// WithVersionComparator specifies the VersionComparator used to order
// PackageIDs. The default is DefaultVersionComparator.
func WithVersionComparator(cmp VersionComparator) Option {
	return func(ts *TransactionSet) {
		ts.cmp = cmp
	}
}

// WithInstallOnlyNames declares the set of package names permitted to have
// multiple installed versions simultaneously (e.g. "kernel"). AddUpdate on
// one of these names becomes an AddTrueInstall instead.
func WithInstallOnlyNames(names ...string) Option {
	return func(ts *TransactionSet) {
		for _, n := range names {
			ts.installOnlyNames[n] = struct{}{}
		}
	}
}

// WithInstallFunc registers the callback Add uses to auto-install
// conditional group candidates. Without one, Add silently skips conditional
// expansion: there is no one to perform it.
func WithInstallFunc(fn InstallFunc) Option {
	return func(ts *TransactionSet) {
		ts.installFunc = fn
	}
}

// WithInstalledDB registers the installed-package database consulted by Add
// for conditional expansion and, when reinstall detection is enabled, by
// AddInstall/AddTrueInstall.
func WithInstalledDB(db InstalledDB) Option {
	return func(ts *TransactionSet) {
		ts.installedDB = db
	}
}

// WithAvailableAndInstalledPatternDBs registers the pattern-matching
// databases Deselect falls back to when a pattern matches nothing already in
// the transaction set.
func WithAvailableAndInstalledPatternDBs(available, installed PatternDB) Option {
	return func(ts *TransactionSet) {
		ts.availableDB = available
		ts.installedPatternDB = installed
	}
}

// WithYumDB registers the collaborator TransactionSet.PropagatedReason
// consults to look up the stored reason of a previously-installed package.
func WithYumDB(db YumDB) Option {
	return func(ts *TransactionSet) {
		ts.yumdb = db
	}
}

// WithUpgradeAll sets the upgrade_all flag: the caller's signal that it
// intends to upgrade every installed package. The transaction set itself
// never reads this flag; it is a convenience carried for collaborators that
// do.
func WithUpgradeAll(upgradeAll bool) Option {
	return func(ts *TransactionSet) {
		ts.UpgradeAll = upgradeAll
	}
}

// WithReinstallDetection controls whether AddInstall/AddTrueInstall consult
// InstalledDB and set Reinstall when the package is already installed. The
// default leaves reinstall detection disabled.
func WithReinstallDetection(enabled bool) Option {
	return func(ts *TransactionSet) {
		ts.reinstallDetection = enabled
	}
}
