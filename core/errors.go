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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidSourceItem indicates a SourceItem failed validation.
	ErrInvalidSourceItem = errors.New("invalid source item")

	// ErrInvalidProfile indicates a CandidateProfile failed validation.
	ErrInvalidProfile = errors.New("invalid candidate profile")

	// ErrInvalidItemKind indicates an invalid ItemKind value.
	ErrInvalidItemKind = errors.New("invalid item kind")

	// ErrInvalidFieldName indicates an unknown embedding field name.
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyURL indicates the URL field is empty.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrEmptyExternalID indicates the profile ExternalId field is empty.
	ErrEmptyExternalID = errors.New("external id cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
