package paging

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Pagination
	}{
		{
			name: "empty result", page: 1, limit: 12, total: 0,
			want: Pagination{Page: 1, Limit: 12, TotalCount: 0, TotalPages: 0},
		},
		{
			name: "exact multiple", page: 1, limit: 10, total: 30,
			want: Pagination{Page: 1, Limit: 10, TotalCount: 30, TotalPages: 3, HasMore: true},
		},
		{
			name: "partial last page", page: 4, limit: 10, total: 31,
			want: Pagination{Page: 4, Limit: 10, TotalCount: 31, TotalPages: 4, HasPrevious: true},
		},
		{
			name: "middle page", page: 2, limit: 5, total: 11,
			want: Pagination{Page: 2, Limit: 5, TotalCount: 11, TotalPages: 3, HasMore: true, HasPrevious: true},
		},
		{
			name: "page past the end", page: 9, limit: 50, total: 3,
			want: Pagination{Page: 9, Limit: 50, TotalCount: 3, TotalPages: 1, HasPrevious: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.page, tt.limit, tt.total))
		})
	}
}

func TestNewInvariants(t *testing.T) {
	for limit := 1; limit <= 50; limit += 7 {
		for total := int64(0); total <= 120; total += 13 {
			for page := 1; page <= 6; page++ {
				p := New(page, limit, total)

				want := 0
				if total > 0 {
					want = int(total) / limit
					if int(total)%limit != 0 {
						want++
					}
				}
				assert.Equal(t, want, p.TotalPages)
				assert.Equal(t, page < p.TotalPages, p.HasMore)
				assert.Equal(t, page > 1, p.HasPrevious)
			}
		}
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 12))
	assert.Equal(t, 24, Offset(3, 12))
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(1, 12))
	assert.True(t, InRange(1, 50))
	assert.True(t, InRange(math.MaxInt/50+1, 50))
	assert.False(t, InRange(math.MaxInt/50+2, 50))
	assert.False(t, InRange(768614336404564652, 12))
	assert.False(t, InRange(0, 12))
	assert.False(t, InRange(1, 0))
}
