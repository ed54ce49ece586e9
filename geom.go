package collide

import (
	"fmt"
	"image"
)

// Point is a position in screen pixels.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// ImagePoint converts p to an image.Point.
func (p Point) ImagePoint() image.Point {
	return image.Pt(p.X, p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// Empty reports whether s has no pixels.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Rect is the placement of an image on screen.
type Rect struct {
	Min  Point
	Size Size
}

// RectAt returns the rect of size s with its top-left corner at p.
func RectAt(p Point, s Size) Rect {
	return Rect{Min: p, Size: s}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return PointInRect(p, r.Min, r.Size)
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Min.X, r.Min.Y, r.Min.X+r.Size.W, r.Min.Y+r.Size.H)
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%v", r.Min, r.Size)
}

// PointInRect reports whether point lies in the rectangle of the given size
// whose top-left corner is topLeft:
//
//	topLeft.X <= point.X < topLeft.X+size.W
//	topLeft.Y <= point.Y < topLeft.Y+size.H
func PointInRect(point, topLeft Point, size Size) bool {
	return point.X >= topLeft.X && point.X < topLeft.X+size.W &&
		point.Y >= topLeft.Y && point.Y < topLeft.Y+size.H
}

// sizeOf returns the pixel size of anything with Width and Height.
func sizeOf(s interface {
	Width() int
	Height() int
}) Size {
	return Size{W: s.Width(), H: s.Height()}
}
