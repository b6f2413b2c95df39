// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package profile

import "time"

// MergeFieldText produces the new field text for a context merge. Existing
// text is never edited in place; additions are appended with a dated marker
// so the field reads as a running history.
func MergeFieldText(existing, addition string, at time.Time) string {
	date := at.UTC().Format("2006-01-02")
	if existing == "" {
		return "[" + date + "] " + addition
	}
	return existing + "\n\n[Updated " + date + "] " + addition
}
