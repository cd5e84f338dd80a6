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

package transaction_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/1nsan3/dnf/pkg/transaction"
)

func TestSortSimpleChain(t *testing.T) {
	sts := transaction.NewSortable()

	a := sts.AddInstall(newPkg("a"))
	b := sts.AddInstall(newPkg("b"))
	c := sts.AddInstall(newPkg("c"))

	// a depends on b, b depends on c: c must install before b before a.
	a.SetAsDep(b.Package)
	b.SetAsDep(c.Package)

	order, loops := sts.Sort()

	if diff := cmp.Diff(0, len(loops)); diff != "" {
		t.Fatalf("Sort() loops: -want, +got:\n%s", diff)
	}

	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id.Name] = i
	}

	if index["c"] >= index["b"] {
		t.Errorf("Sort(): c (%d) must precede b (%d)", index["c"], index["b"])
	}
	if index["b"] >= index["a"] {
		t.Errorf("Sort(): b (%d) must precede a (%d)", index["b"], index["a"])
	}
}

func TestSortCycleIsNonFatal(t *testing.T) {
	sts := transaction.NewSortable()

	a := sts.AddInstall(newPkg("a"))
	b := sts.AddInstall(newPkg("b"))

	a.SetAsDep(b.Package)
	b.SetAsDep(a.Package)

	order, loops := sts.Sort()

	if diff := cmp.Diff(2, len(order)); diff != "" {
		t.Errorf("Sort() must still produce a total order despite the cycle: -want, +got:\n%s", diff)
	}
	if len(loops) == 0 {
		t.Fatalf("Sort() must report the cycle it found")
	}

	names := make(map[string]bool)
	for _, n := range loops[0] {
		names[n] = true
	}
	if !names["a"] || !names["b"] {
		t.Errorf("Sort() loops[0] = %v, want it to name both a and b", loops[0])
	}
}

func TestSortInvalidatesCacheOnMutation(t *testing.T) {
	sts := transaction.NewSortable()
	sts.AddInstall(newPkg("a"))

	first, _ := sts.Sort()
	if diff := cmp.Diff(1, len(first)); diff != "" {
		t.Fatalf("Sort() first call: -want, +got:\n%s", diff)
	}

	sts.AddInstall(newPkg("b"))

	second, _ := sts.Sort()
	if diff := cmp.Diff(2, len(second)); diff != "" {
		t.Errorf("Sort() after Add must recompute: -want, +got:\n%s", diff)
	}
}

func TestSortIndependentPackagesInNameOrder(t *testing.T) {
	sts := transaction.NewSortable()
	sts.AddInstall(newPkg("zsh"))
	sts.AddInstall(newPkg("ash"))

	order, _ := sts.Sort()

	var names []string
	for _, id := range order {
		names = append(names, id.Name)
	}
	if diff := cmp.Diff([]string{"ash", "zsh"}, names); diff != "" {
		t.Errorf("Sort() of independent packages: -want, +got:\n%s", diff)
	}
}
