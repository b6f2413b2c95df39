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

// Hand-maintained MUS serializers for the persisted types. Field order is the
// wire format; append new fields at the end and never reorder existing ones.

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Serializer instances used by the storage layer.
var (
	IDMUS               = idMUS{}
	SourceItemMUS       = sourceItemMUS{}
	ChunkMUS            = chunkMUS{}
	CandidateProfileMUS = candidateProfileMUS{}
	EmbeddingFieldMUS   = embeddingFieldMUS{}
)

// timestamps are stored as microseconds since the Unix epoch

func marshalTime(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (t time.Time, n int, err error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalVector(v []float32, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func unmarshalVector(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]float32, length)
	for i := 0; i < length; i++ {
		var n1 int
		v[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func sizeVector(v []float32) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, f := range v {
		size += raw.Float32.Size(f)
	}
	return size
}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

type sourceItemMUS struct{}

func (s sourceItemMUS) Marshal(item SourceItem, bs []byte) (n int) {
	n = IDMUS.Marshal(item.Id, bs)
	n += varint.Int.Marshal(int(item.Kind), bs[n:])
	n += ord.String.Marshal(item.Title, bs[n:])
	n += ord.String.Marshal(item.URL, bs[n:])
	n += ord.String.Marshal(item.Author, bs[n:])
	n += marshalTime(item.PublishedAt, bs[n:])
	n += ord.String.Marshal(item.Content, bs[n:])
	n += marshalTime(item.InsertedAt, bs[n:])
	n += marshalTime(item.UpdatedAt, bs[n:])
	return n
}

func (s sourceItemMUS) Unmarshal(bs []byte) (item SourceItem, n int, err error) {
	var n1 int
	item.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return item, n, err
	}
	var kind int
	kind, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Kind = ItemKind(kind)
	item.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Author, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.PublishedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return item, n, err
}

func (s sourceItemMUS) Size(item SourceItem) (size int) {
	size = IDMUS.Size(item.Id)
	size += varint.Int.Size(int(item.Kind))
	size += ord.String.Size(item.Title)
	size += ord.String.Size(item.URL)
	size += ord.String.Size(item.Author)
	size += sizeTime(item.PublishedAt)
	size += ord.String.Size(item.Content)
	size += sizeTime(item.InsertedAt)
	size += sizeTime(item.UpdatedAt)
	return size
}

type chunkMUS struct{}

func (c chunkMUS) Marshal(chunk Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(chunk.ItemId, bs)
	n += varint.Int.Marshal(int(chunk.Kind), bs[n:])
	n += varint.Int.Marshal(chunk.Seq, bs[n:])
	n += ord.String.Marshal(chunk.Text, bs[n:])
	n += varint.Int.Marshal(chunk.TokenCount, bs[n:])
	n += marshalVector(chunk.Vector, bs[n:])
	return n
}

func (c chunkMUS) Unmarshal(bs []byte) (chunk Chunk, n int, err error) {
	var n1 int
	chunk.ItemId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return chunk, n, err
	}
	var kind int
	kind, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return chunk, n, err
	}
	chunk.Kind = ItemKind(kind)
	chunk.Seq, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return chunk, n, err
	}
	chunk.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return chunk, n, err
	}
	chunk.TokenCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return chunk, n, err
	}
	chunk.Vector, n1, err = unmarshalVector(bs[n:])
	n += n1
	return chunk, n, err
}

func (c chunkMUS) Size(chunk Chunk) (size int) {
	size = IDMUS.Size(chunk.ItemId)
	size += varint.Int.Size(int(chunk.Kind))
	size += varint.Int.Size(chunk.Seq)
	size += ord.String.Size(chunk.Text)
	size += varint.Int.Size(chunk.TokenCount)
	size += sizeVector(chunk.Vector)
	return size
}

type candidateProfileMUS struct{}

func (p candidateProfileMUS) Marshal(profile CandidateProfile, bs []byte) (n int) {
	n = IDMUS.Marshal(profile.Id, bs)
	n += ord.String.Marshal(profile.ExternalId, bs[n:])
	n += ord.String.Marshal(profile.FullName, bs[n:])
	n += ord.String.Marshal(profile.Headline, bs[n:])
	n += ord.String.Marshal(profile.Location, bs[n:])
	n += marshalTime(profile.InsertedAt, bs[n:])
	n += marshalTime(profile.UpdatedAt, bs[n:])
	return n
}

func (p candidateProfileMUS) Unmarshal(bs []byte) (profile CandidateProfile, n int, err error) {
	var n1 int
	profile.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return profile, n, err
	}
	profile.ExternalId, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return profile, n, err
	}
	profile.FullName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return profile, n, err
	}
	profile.Headline, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return profile, n, err
	}
	profile.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return profile, n, err
	}
	profile.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return profile, n, err
	}
	profile.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return profile, n, err
}

func (p candidateProfileMUS) Size(profile CandidateProfile) (size int) {
	size = IDMUS.Size(profile.Id)
	size += ord.String.Size(profile.ExternalId)
	size += ord.String.Size(profile.FullName)
	size += ord.String.Size(profile.Headline)
	size += ord.String.Size(profile.Location)
	size += sizeTime(profile.InsertedAt)
	size += sizeTime(profile.UpdatedAt)
	return size
}

type embeddingFieldMUS struct{}

func (f embeddingFieldMUS) Marshal(field EmbeddingField, bs []byte) (n int) {
	n = IDMUS.Marshal(field.ProfileId, bs)
	n += ord.String.Marshal(string(field.Name), bs[n:])
	n += ord.String.Marshal(field.Text, bs[n:])
	n += marshalVector(field.Vector, bs[n:])
	n += marshalTime(field.UpdatedAt, bs[n:])
	return n
}

func (f embeddingFieldMUS) Unmarshal(bs []byte) (field EmbeddingField, n int, err error) {
	var n1 int
	field.ProfileId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return field, n, err
	}
	var name string
	name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return field, n, err
	}
	field.Name = FieldName(name)
	field.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return field, n, err
	}
	field.Vector, n1, err = unmarshalVector(bs[n:])
	n += n1
	if err != nil {
		return field, n, err
	}
	field.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return field, n, err
}

func (f embeddingFieldMUS) Size(field EmbeddingField) (size int) {
	size = IDMUS.Size(field.ProfileId)
	size += ord.String.Size(string(field.Name))
	size += ord.String.Size(field.Text)
	size += sizeVector(field.Vector)
	size += sizeTime(field.UpdatedAt)
	return size
}
