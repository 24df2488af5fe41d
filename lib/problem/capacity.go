package problem

import (
	"fmt"
	"strings"
)

// Capacity is an immutable multi-dimensional capacity vector.
// Dimensions that were never set read as zero.
type Capacity struct {
	dimensions []int
}

// CapacityBuilder assembles a Capacity dimension by dimension.
type CapacityBuilder struct {
	dimensions []int
}

// NewCapacityBuilder returns an empty builder.
func NewCapacityBuilder() *CapacityBuilder {
	return &CapacityBuilder{}
}

// AddDimension sets the value of the dimension at index. The vector grows as needed.
// A negative index panics.
func (b *CapacityBuilder) AddDimension(index, value int) *CapacityBuilder {
	if index < 0 {
		panic(fmt.Sprintf("capacity dimension index must not be negative: %d", index))
	}
	if index >= len(b.dimensions) {
		grown := make([]int, index+1)
		copy(grown, b.dimensions)
		b.dimensions = grown
	}
	b.dimensions[index] = value
	return b
}

// Build returns the capacity. The builder can be reused afterwards.
func (b *CapacityBuilder) Build() Capacity {
	dims := make([]int, len(b.dimensions))
	copy(dims, b.dimensions)
	return Capacity{dimensions: dims}
}

// Get returns the value of the dimension at index (0 if the dimension is not set).
func (c Capacity) Get(index int) int {
	if index < 0 || index >= len(c.dimensions) {
		return 0
	}
	return c.dimensions[index]
}

// Dimensions returns the number of dimensions.
func (c Capacity) Dimensions() int {
	return len(c.dimensions)
}

// IsLessOrEqual reports whether every dimension of c is less than or equal to the
// corresponding dimension of other.
func (c Capacity) IsLessOrEqual(other Capacity) bool {
	n := max(len(c.dimensions), len(other.dimensions))
	for i := 0; i < n; i++ {
		if c.Get(i) > other.Get(i) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (c Capacity) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range c.dimensions {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf("%d=%d", i, v))
	}
	sb.WriteString("]")
	return sb.String()
}

// --------------------------------------------------------------------------
// Capacity arithmetic
// --------------------------------------------------------------------------

// AddUp returns the dimension-wise sum of a and b.
func AddUp(a, b Capacity) Capacity {
	return combine(a, b, func(x, y int) int { return x + y })
}

// Subtract returns the dimension-wise difference a - b.
func Subtract(a, b Capacity) Capacity {
	return combine(a, b, func(x, y int) int { return x - y })
}

// Max returns the dimension-wise maximum of a and b.
func Max(a, b Capacity) Capacity {
	return combine(a, b, func(x, y int) int { return max(x, y) })
}

func combine(a, b Capacity, fn func(x, y int) int) Capacity {
	n := max(len(a.dimensions), len(b.dimensions))
	dims := make([]int, n)
	for i := 0; i < n; i++ {
		dims[i] = fn(a.Get(i), b.Get(i))
	}
	return Capacity{dimensions: dims}
}
