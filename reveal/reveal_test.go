// Copyright 2025 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of BLENDREADER.
//
//  BLENDREADER is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  BLENDREADER is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with BLENDREADER.  If not, see <https://www.gnu.org/licenses/>.

package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkBoundaries(t *testing.T) {
	assert.Equal(t, []int{2, 3}, ChunkBoundaries([]int{3, 4, 2}, 5))
	assert.Equal(t, []int{1, 2, 3}, ChunkBoundaries([]int{5, 6, 1}, 5))
	assert.Equal(t, []int{3}, ChunkBoundaries([]int{1, 1, 1}, 500))
	assert.Equal(t, []int{}, ChunkBoundaries([]int{}, 5))
	assert.Equal(t, []int{1}, ChunkBoundaries([]int{0}, 0))
}

func TestStartAndAdvance(t *testing.T) {
	s := New([]int{3, 4, 2}, 5)
	assert.Equal(t, 0, s.Revealed())
	assert.Equal(t, []int{2, 3}, s.Boundaries())

	assert.True(t, s.Start())
	assert.Equal(t, 2, s.Revealed())
	assert.False(t, s.Start())
	assert.Equal(t, 7, s.RevealedWords())

	assert.True(t, s.Advance(1))
	assert.Equal(t, 3, s.Revealed())
	assert.True(t, s.Finished())

	assert.False(t, s.Advance(1))
	assert.Equal(t, 3, s.Revealed())
}

func TestAdvanceMany(t *testing.T) {
	s := New([]int{5, 5, 5, 5}, 5)
	assert.False(t, s.Advance(0))
	assert.False(t, s.Advance(-2))
	assert.True(t, s.Advance(2))
	assert.Equal(t, 2, s.Revealed())
	assert.True(t, s.Advance(10))
	assert.Equal(t, 4, s.Revealed())
}

func TestRevealedIsMonotonic(t *testing.T) {
	s := New([]int{2, 9, 1, 1, 1, 7, 3, 3}, 4)
	prev := s.Revealed()
	s.Start()
	for i := 0; i < 10; i++ {
		assert.GreaterOrEqual(t, s.Revealed(), prev)
		assert.LessOrEqual(t, s.Revealed(), s.Total())
		prev = s.Revealed()
		s.Advance(1)
	}
	assert.True(t, s.Finished())
}

func TestResetAndRestore(t *testing.T) {
	s := New([]int{3, 4, 2}, 5)
	s.Start()
	s.Reset()
	assert.Equal(t, 0, s.Revealed())
	assert.True(t, s.Start())

	s.Restore(10)
	assert.Equal(t, 3, s.Revealed())
	s.Restore(-1)
	assert.Equal(t, 0, s.Revealed())
	s.Restore(1)
	assert.Equal(t, 1, s.Revealed())
	assert.True(t, s.Advance(1))
	assert.Equal(t, 2, s.Revealed())
}

func TestWordOffsets(t *testing.T) {
	s := New([]int{3, 4, 2}, 5)
	assert.Equal(t, 0, s.WordOffset(0))
	assert.Equal(t, 3, s.WordOffset(1))
	assert.Equal(t, 7, s.WordOffset(2))
	assert.Equal(t, 9, s.WordOffset(3))
	assert.Equal(t, 9, s.WordOffset(100))
	assert.Equal(t, 9, s.TotalWords())
}

func TestEmptyText(t *testing.T) {
	s := New(nil, 5)
	assert.False(t, s.Start())
	assert.False(t, s.Advance(1))
	assert.True(t, s.Finished())
	assert.Equal(t, 0, s.TotalWords())
	assert.Equal(t, []int{}, s.Boundaries())
}
