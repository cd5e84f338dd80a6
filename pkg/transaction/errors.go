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
	"github.com/crossplane/crossplane-runtime/pkg/errors"
)

// errConditionalInstallFailed wraps a failure returned by an InstallFunc
// during conditional expansion. The spec treats this as a
// ConditionalInvariant: it is propagated to the caller unchanged, not
// swallowed like DuplicateMember or NotFound.
const errConditionalInstallFailed = "cannot auto-install conditional candidate"

func wrapConditionalInstallError(err error, name string) error {
	return errors.Wrapf(err, "%s %q", errConditionalInstallFailed, name)
}
