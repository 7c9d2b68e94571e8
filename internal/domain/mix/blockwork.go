package mix

import (
	"math"

	"github.com/andrescamacho/takeoff-go/internal/domain/shared"
)

// Block is a masonry unit size in metres
type Block struct {
	Length    float64 `json:"length"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
}

// StandardBlock is a 400 x 200 x 200 mm block
var StandardBlock = Block{Length: 0.4, Height: 0.2, Thickness: 0.2}

// Grid is the course layout of a wall face
type Grid struct {
	PerCourse float64 `json:"perCourse"`
	Courses   float64 `json:"courses"`
	Blocks    float64 `json:"blocks"`
}

// BlockGrid lays blocks (plus one joint each) along length and up height
func BlockGrid(length, height float64, b Block, joint float64) Grid {
	length = shared.NonNegative(length)
	height = shared.NonNegative(height)
	joint = shared.NonNegative(joint)
	if length == 0 || height == 0 || b.Length+joint <= 0 || b.Height+joint <= 0 {
		return Grid{}
	}
	perCourse := math.Ceil(length / (b.Length + joint))
	courses := math.Ceil(height / (b.Height + joint))
	return Grid{PerCourse: perCourse, Courses: courses, Blocks: perCourse * courses}
}

// FaceArea is the wall area one laid block covers including its joints
func FaceArea(b Block, joint float64) float64 {
	return (b.Length + joint) * (b.Height + joint)
}

// BlocksInArea counts whole blocks displaced by an opening of the given area
func BlocksInArea(area float64, b Block, joint float64) float64 {
	face := FaceArea(b, joint)
	if face <= 0 {
		return 0
	}
	return math.Floor(shared.NonNegative(area) / face)
}

// MortarPerBlock is the joint mortar volume attributable to one block:
// one bed joint, one perpend and the corner where they meet
func MortarPerBlock(b Block, joint float64) float64 {
	joint = shared.NonNegative(joint)
	return b.Thickness * joint * (b.Length + b.Height + joint)
}
