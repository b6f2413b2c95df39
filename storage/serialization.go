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


package storage

import (
	"github.com/poiesic/talentmatch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalSourceItem serializes a SourceItem to bytes.
func MarshalSourceItem(item *core.SourceItem) []byte {
	buf := make([]byte, core.SourceItemMUS.Size(*item))
	core.SourceItemMUS.Marshal(*item, buf)
	return buf
}

// UnmarshalSourceItem deserializes a SourceItem from bytes.
func UnmarshalSourceItem(data []byte) (*core.SourceItem, error) {
	item, _, err := core.SourceItemMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, core.ChunkMUS.Size(*chunk))
	core.ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := core.ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalProfile serializes a CandidateProfile to bytes.
func MarshalProfile(profile *core.CandidateProfile) []byte {
	buf := make([]byte, core.CandidateProfileMUS.Size(*profile))
	core.CandidateProfileMUS.Marshal(*profile, buf)
	return buf
}

// UnmarshalProfile deserializes a CandidateProfile from bytes.
func UnmarshalProfile(data []byte) (*core.CandidateProfile, error) {
	profile, _, err := core.CandidateProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarshalEmbeddingField serializes an EmbeddingField to bytes.
func MarshalEmbeddingField(field *core.EmbeddingField) []byte {
	buf := make([]byte, core.EmbeddingFieldMUS.Size(*field))
	core.EmbeddingFieldMUS.Marshal(*field, buf)
	return buf
}

// UnmarshalEmbeddingField deserializes an EmbeddingField from bytes.
func UnmarshalEmbeddingField(data []byte) (*core.EmbeddingField, error) {
	field, _, err := core.EmbeddingFieldMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &field, nil
}
