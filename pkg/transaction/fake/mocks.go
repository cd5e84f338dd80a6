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

// Package fake contains mock collaborators for the transaction package.
package fake

import "github.com/1nsan3/dnf/pkg/transaction"

var (
	_ transaction.InstalledDB = &MockInstalledDB{}
	_ transaction.PatternDB   = &MockPatternDB{}
	_ transaction.YumDB       = &MockYumDB{}
	_ transaction.PackageRef  = &Package{}
)

// MockInstalledDB is a mock transaction.InstalledDB.
type MockInstalledDB struct {
	MockContains func(pkg transaction.PackageRef) bool
}

// Contains calls the underlying MockContains.
func (m *MockInstalledDB) Contains(pkg transaction.PackageRef) bool {
	return m.MockContains(pkg)
}

// MockPatternDB is a mock transaction.PatternDB.
type MockPatternDB struct {
	MockReturnPackages func(patterns []string) ([]transaction.PackageRef, error)
}

// ReturnPackages calls the underlying MockReturnPackages.
func (m *MockPatternDB) ReturnPackages(patterns []string) ([]transaction.PackageRef, error) {
	return m.MockReturnPackages(patterns)
}

// MockYumDB is a mock transaction.YumDB.
type MockYumDB struct {
	MockGetPackage func(pkg transaction.PackageRef) (string, bool)
}

// GetPackage calls the underlying MockGetPackage.
func (m *MockYumDB) GetPackage(pkg transaction.PackageRef) (string, bool) {
	return m.MockGetPackage(pkg)
}

// Package is a bare transaction.PackageRef backed by plain fields, used to
// build fixtures without a real repository or rpmdb behind it.
type Package struct {
	PkgID       transaction.PackageID
	Repo        string
	System      bool
	ProvidesVal []string
}

// ID returns p.PkgID.
func (p *Package) ID() transaction.PackageID { return p.PkgID }

// Repository returns p.Repo.
func (p *Package) Repository() string { return p.Repo }

// FromSystem returns p.System.
func (p *Package) FromSystem() bool { return p.System }

// Provides returns p.ProvidesVal.
func (p *Package) Provides() []string { return p.ProvidesVal }
