package shapes

import "example.com/acme"

// Shape has an area.
type Shape interface {
	Area() float64
}

// Square is a Shape.
type Square struct {
	Side  float64
	Level acme.Level
}

func (s Square) Area() float64 { return s.Side * s.Side }
