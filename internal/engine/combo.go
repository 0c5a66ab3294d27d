package engine

import (
	"fmt"
	"strings"
)

// ComboOp identifies a combo primitive.
type ComboOp int

const (
	OpFaceCount  ComboOp = 1 // at least Count dice show Face
	OpColorCount ComboOp = 2 // at least Count dice of Color show Face or more
	OpStraight   ComboOp = 3 // run of Count consecutive distinct values
	OpSameParity ComboOp = 4 // all dice even, or all dice odd
	OpGroups     ComboOp = 5 // Groups distinct values shown Count times or more
	OpSumAtMost  ComboOp = 6
	OpSumAtLeast ComboOp = 7
	OpRainbow    ComboOp = 8 // some value shown by exactly one die of each color
	OpAll        ComboOp = 9 // conjunction of Children
)

const dieSides = 6

// Combo is a predicate over a dice outcome, expressed as data so it can be
// inspected, described and tested one primitive at a time.
type Combo struct {
	Op       ComboOp `json:"op"`
	Face     int     `json:"face,omitempty"`
	Color    Color   `json:"color,omitempty"`
	Count    int     `json:"count,omitempty"`
	Groups   int     `json:"groups,omitempty"`
	Sum      int     `json:"sum,omitempty"`
	Children []Combo `json:"children,omitempty"`
}

func FaceCount(face, n int) Combo { return Combo{Op: OpFaceCount, Face: face, Count: n} }

func ColorCount(color Color, n, minFace int) Combo {
	return Combo{Op: OpColorCount, Color: color, Count: n, Face: minFace}
}

func Straight(length int) Combo { return Combo{Op: OpStraight, Count: length} }
func SameParity() Combo         { return Combo{Op: OpSameParity} }
func Groups(k, n int) Combo     { return Combo{Op: OpGroups, Groups: k, Count: n} }
func SumAtMost(s int) Combo     { return Combo{Op: OpSumAtMost, Sum: s} }
func SumAtLeast(s int) Combo    { return Combo{Op: OpSumAtLeast, Sum: s} }
func Rainbow() Combo            { return Combo{Op: OpRainbow} }
func All(children ...Combo) Combo {
	return Combo{Op: OpAll, Children: children}
}

// Faces builds the conjunction of face counts, e.g. {5: 2, 2: 1} for
// "two 5s and a 2". Faces are visited in ascending order.
func Faces(counts map[int]int) Combo {
	var children []Combo
	for face := 1; face <= dieSides; face++ {
		if n, ok := counts[face]; ok && n > 0 {
			children = append(children, FaceCount(face, n))
		}
	}
	if len(children) == 1 {
		return children[0]
	}
	return All(children...)
}

// Met evaluates the combo against parallel face values and die colors.
// Unrolled or malformed outcomes never match.
func (c Combo) Met(values []int, colors []Color) bool {
	if len(values) == 0 || len(values) != len(colors) {
		return false
	}
	for _, v := range values {
		if v < 1 || v > dieSides {
			return false
		}
	}
	return c.eval(values, colors)
}

func (c Combo) eval(values []int, colors []Color) bool {
	switch c.Op {
	case OpFaceCount:
		return histogram(values)[c.Face] >= c.Count
	case OpColorCount:
		n := 0
		for i, v := range values {
			if colors[i] == c.Color && v >= c.Face {
				n++
			}
		}
		return n >= c.Count
	case OpStraight:
		return longestRun(values) >= c.Count
	case OpSameParity:
		parity := values[0] % 2
		for _, v := range values[1:] {
			if v%2 != parity {
				return false
			}
		}
		return true
	case OpGroups:
		groups := 0
		for _, n := range histogram(values) {
			if n >= c.Count {
				groups++
			}
		}
		return groups >= c.Groups
	case OpSumAtMost:
		return sum(values) <= c.Sum
	case OpSumAtLeast:
		return sum(values) >= c.Sum
	case OpRainbow:
		return hasRainbow(values, colors)
	case OpAll:
		if len(c.Children) == 0 {
			return false
		}
		for _, child := range c.Children {
			if !child.eval(values, colors) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func histogram(values []int) [dieSides + 1]int {
	var h [dieSides + 1]int
	for _, v := range values {
		h[v]++
	}
	return h
}

func longestRun(values []int) int {
	h := histogram(values)
	best, run := 0, 0
	for face := 1; face <= dieSides; face++ {
		if h[face] > 0 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func hasRainbow(values []int, colors []Color) bool {
	for face := 1; face <= dieSides; face++ {
		seen := map[Color]int{}
		for i, v := range values {
			if v == face {
				seen[colors[i]]++
			}
		}
		ok := true
		for _, color := range CardColors() {
			if seen[color] != 1 {
				ok = false
				break
			}
		}
		if ok && len(seen) == len(CardColors()) {
			return true
		}
	}
	return false
}

func (c Combo) String() string {
	switch c.Op {
	case OpFaceCount:
		return fmt.Sprintf("%d×%d", c.Count, c.Face)
	case OpColorCount:
		if c.Face > 1 {
			return fmt.Sprintf("%d %s ≥%d", c.Count, c.Color, c.Face)
		}
		return fmt.Sprintf("%d %s", c.Count, c.Color)
	case OpStraight:
		return fmt.Sprintf("straight of %d", c.Count)
	case OpSameParity:
		return "all even or all odd"
	case OpGroups:
		return fmt.Sprintf("%d groups of %d", c.Groups, c.Count)
	case OpSumAtMost:
		return fmt.Sprintf("sum ≤ %d", c.Sum)
	case OpSumAtLeast:
		return fmt.Sprintf("sum ≥ %d", c.Sum)
	case OpRainbow:
		return "one value in every color"
	case OpAll:
		parts := make([]string, len(c.Children))
		for i, child := range c.Children {
			parts[i] = child.String()
		}
		return strings.Join(parts, " + ")
	default:
		return "?"
	}
}
