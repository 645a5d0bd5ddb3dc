// Copyright (c) 2016 Denis Bernard <db047h@gmail.com>
// Copyright (c) 2025 The oat Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package oat implements generic open-addressed associative containers:
// Map, Set, MultiMap and MultiSet, all built on the same control-byte
// probing, dense value storage and backward-shift deletion.
//
// Four arrays cooperate, indexed by bucket position b in [0, bucketCount):
//
//   - ctrl: one byte per bucket. 0 means empty; any other byte has its top
//     bit set and the low 7 bits holding a partial hash.
//   - redir: one (fullHash, valueIndex) pair per bucket, redirecting an
//     occupied bucket to its slot in data.
//   - data: a densely packed array of entries (or, for the multi variants,
//     of per-bucket ordered lists of entries) with no holes; erasure
//     swaps the removed entry with the last one and pops.
//   - keyShadow (multi variants only): a copy of the bucket's key, parallel
//     to data, so collision resolution never has to chase a list node to
//     compare keys.
//
// H (the hash function) and Eq (the equality predicate) are external
// collaborators supplied at construction time via WithHasher/WithEqual;
// oat never picks a hash algorithm on its own beyond the default supplied
// by the sibling hash package. Likewise, thread-safety, persistence and
// allocator tuning are the caller's concern: every table here is a plain
// Go value meant to be guarded externally, exactly like a bare built-in
// map guarded by a mutex.
package oat
