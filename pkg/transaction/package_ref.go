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

// PackageRef is an opaque handle to a package. The transaction set never
// mutates a PackageRef; it stores and dereferences it only. Implementations
// typically wrap a repository- or rpmdb-backed package object.
type PackageRef interface {
	// ID returns the package's canonical identity.
	ID() PackageID
	// Repository returns the name of the repository the package came from.
	Repository() string
	// FromSystem is true if this PackageRef was loaded from the installed
	// package database rather than an available repository.
	FromSystem() bool
	// Provides returns the capability names this package provides.
	Provides() []string
}

// originTag returns "i" for packages loaded from the installed database and
// "a" for packages loaded from an available repository, the tagging
// convention Dump uses for related packages.
func originTag(ref PackageRef) string {
	if ref != nil && ref.FromSystem() {
		return "i"
	}
	return "a"
}
