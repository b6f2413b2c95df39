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

// Package match ranks stored content against candidate profiles.
//
// The Matcher type implements a multi-stage matching pipeline:
//   - Per-field similarity search over the candidate's embedding fields
//   - Deduplication to the best chunk per source item
//   - Cross-field fusion into a single descending ranking
//   - Qualitative re-evaluation by an LLM with a deterministic
//     similarity fallback
//
// Evaluation never fails a run; when the evaluator is unavailable the
// report falls back to similarity-based approvals and says so.
package match
