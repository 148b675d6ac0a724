// Package engine contains the rules of the block-blast puzzle: the piece
// catalog, board model, placement, line clearing, scoring and the session
// state machine that ties them together. Nothing in this package renders or
// reads input; hosts drive it through Session.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/vovakirdan/meteorblast/internal/core"
)

// FamilyID identifies a piece family in the catalog.
type FamilyID string

const (
	FamilyI  FamilyID = "I"
	FamilyO  FamilyID = "O"
	FamilyT  FamilyID = "T"
	FamilyL  FamilyID = "L"
	FamilyJ  FamilyID = "J"
	FamilyS  FamilyID = "S"
	FamilyZ  FamilyID = "Z"
	FamilyT2 FamilyID = "T2"
)

// Angle is a clockwise rotation in degrees: 0, 90, 180 or 270.
type Angle int

const (
	Angle0   Angle = 0
	Angle90  Angle = 90
	Angle180 Angle = 180
	Angle270 Angle = 270
)

// Add returns the angle turned by delta degrees, normalized to [0, 360).
func (a Angle) Add(delta int) Angle {
	v := (int(a) + delta) % 360
	if v < 0 {
		v += 360
	}
	return Angle(v)
}

// Direction selects the rotation sense for RotateHeld.
type Direction int

const (
	Clockwise Direction = iota
	CounterClockwise
)

// PieceGlyph is the rune every piece cell is drawn with.
const PieceGlyph = '█'

// Family is a catalog entry: the base shape and presentation of a piece kind.
type Family struct {
	ID      FamilyID
	Name    string
	Emoji   string
	Color   core.Color
	Shape   Shape
	Anchors map[Angle]core.Point // per-angle anchor exceptions
}

// Catalog lists the piece families in draw order.
var Catalog = []Family{
	{
		ID: FamilyI, Name: "Rocket Trail", Emoji: "🚀", Color: core.ColorPink,
		Shape:   Shape{{1, 1, 1, 1}},
		Anchors: map[Angle]core.Point{Angle180: {X: 1, Y: 0}},
	},
	{
		ID: FamilyO, Name: "Planet Cluster", Emoji: "🌍", Color: core.ColorTeal,
		Shape:   Shape{{1, 1}, {1, 1}},
		Anchors: map[Angle]core.Point{Angle0: {X: 1, Y: 1}},
	},
	{
		ID: FamilyT, Name: "Star Constellation", Emoji: "⭐", Color: core.ColorOrange,
		Shape: Shape{{0, 1, 0}, {1, 1, 1}},
	},
	{
		ID: FamilyL, Name: "UFO Formation", Emoji: "🛸", Color: core.ColorBrightBlue,
		Shape:   Shape{{1, 0}, {1, 0}, {1, 1}},
		Anchors: map[Angle]core.Point{Angle0: {X: 0, Y: 2}, Angle270: {X: 1, Y: 0}},
	},
	{
		ID: FamilyJ, Name: "Satellite Array", Emoji: "🛰️", Color: core.ColorBlue,
		Shape: Shape{{0, 1}, {0, 1}, {1, 1}},
	},
	{
		ID: FamilyS, Name: "Comet Trail", Emoji: "☄️", Color: core.ColorRed,
		Shape:   Shape{{0, 1, 1}, {1, 1, 0}},
		Anchors: map[Angle]core.Point{Angle0: {X: 2, Y: 1}},
	},
	{
		ID: FamilyZ, Name: "Astronaut Team", Emoji: "👨‍🚀", Color: core.ColorSlate,
		Shape: Shape{{1, 1, 0}, {0, 1, 1}},
	},
	{
		ID: FamilyT2, Name: "Space Station", Emoji: "🌙", Color: core.ColorNavy,
		Shape:   Shape{{0, 1, 0}, {1, 1, 1}},
		Anchors: map[Angle]core.Point{Angle180: {X: 1, Y: 0}},
	},
}

// FamilyByID looks up a catalog family.
func FamilyByID(id FamilyID) (Family, bool) {
	for _, f := range Catalog {
		if f.ID == id {
			return f, true
		}
	}
	return Family{}, false
}

// Base returns the family's unrotated piece. Its ID is the family ID.
func (f Family) Base() Piece {
	return Piece{
		ID:       string(f.ID),
		Family:   f.ID,
		Name:     f.Name,
		Emoji:    f.Emoji,
		Glyph:    PieceGlyph,
		Color:    f.Color,
		Shape:    f.Shape.Clone(),
		Rotation: Angle0,
	}
}

// Piece is an immutable placeable polyomino. Rotating or drawing a piece
// always produces a new value.
type Piece struct {
	ID       string
	Family   FamilyID
	Name     string
	Emoji    string
	Glyph    rune
	Color    core.Color
	Shape    Shape
	Rotation Angle
}

// Filler is the value a piece stamps into each board cell it covers.
func (p Piece) Filler() Filler {
	return Filler{Glyph: p.Glyph, Color: p.Color}
}

// Width returns the shape width in cells.
func (p Piece) Width() int { return p.Shape.Width() }

// Height returns the shape height in cells.
func (p Piece) Height() int { return p.Shape.Height() }

// Rotate turns the piece 90 degrees clockwise.
func Rotate(p Piece) Piece {
	out := p
	out.Shape = p.Shape.Rotate()
	out.Rotation = p.Rotation.Add(90)
	return out
}

// RotateCounterClockwise turns the piece 90 degrees counterclockwise.
func RotateCounterClockwise(p Piece) Piece {
	out := p
	out.Shape = p.Shape.RotateCounterClockwise()
	out.Rotation = p.Rotation.Add(-90)
	return out
}

// AllRotations returns base followed by its three successive clockwise
// rotations, identified as "<ID>_<i>" and named "<Name> (<deg>°)".
func AllRotations(base Piece) []Piece {
	out := make([]Piece, 0, 4)
	current := base
	for i := range 4 {
		if i > 0 {
			current = Rotate(current)
		}
		p := current
		p.ID = fmt.Sprintf("%s_%d", base.ID, i)
		p.Name = fmt.Sprintf("%s (%d°)", base.Name, i*90)
		out = append(out, p)
	}
	return out
}

// RandomPiece draws a uniformly random family and rotation. The instance ID
// is a UUID read from rng, so seeded sessions reproduce the same IDs.
func RandomPiece(rng *rand.Rand) Piece {
	family := Catalog[rng.Intn(len(Catalog))]
	rotations := AllRotations(family.Base())
	p := rotations[rng.Intn(len(rotations))]
	p.ID = uuid.Must(uuid.NewRandomFromReader(rng)).String()
	return p
}

// RandomHand draws n independent random pieces.
func RandomHand(rng *rand.Rand, n int) []Piece {
	hand := make([]Piece, 0, max(n, 0))
	for range n {
		hand = append(hand, RandomPiece(rng))
	}
	return hand
}

// RecoverRotation infers the rotation of p by comparing its shape with the
// successive rotations of its family's base shape. The first match wins; 0 is
// returned for unknown families or shapes that match nothing.
func RecoverRotation(p Piece) Angle {
	family, ok := FamilyByID(p.Family)
	if !ok {
		return Angle0
	}
	shape := family.Shape
	for i := range 4 {
		if shape.Equal(p.Shape) {
			return Angle(i * 90)
		}
		shape = shape.Rotate()
	}
	return Angle0
}

// DefaultAnchor is the anchor used when a family has no exception for the
// angle: the bottom row, at column 1 for two-wide shapes and the middle
// column otherwise.
func DefaultAnchor(s Shape) core.Point {
	w, h := s.Width(), s.Height()
	if w == 2 {
		return core.Pt(1, h-1)
	}
	return core.Pt(w/2, h-1)
}

// AnchorPoint returns the cell of p that sits under the cursor.
func AnchorPoint(p Piece) core.Point {
	if family, ok := FamilyByID(p.Family); ok {
		if a, ok := family.Anchors[p.Rotation]; ok {
			return a
		}
	}
	return DefaultAnchor(p.Shape)
}
