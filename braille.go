package opendot

// Braille represents an 8 dot braille pattern in x,y coordinates space. Eg:
//   +----------+
//   |(0,0)(1,0)|
//   |(0,1)(1,1)|
//   |(0,2)(1,2)|
//   |(0,3)(1,3)|
//   +----------+
type Braille [2][4]int

// Rune maps each point in braille to a dot identifier and
// calculates the corresponding unicode symbol.
//   +------+
//   |(1)(4)|
//   |(2)(5)|
//   |(3)(6)|
//   |(7)(8)|
//   +------+
// See https://en.wikipedia.org/wiki/Braille_Patterns#Identifying.2C_naming_and_ordering)
func (b Braille) Rune() rune {
	lowEndian := [8]int{b[0][0], b[0][1], b[0][2], b[1][0], b[1][1], b[1][2], b[0][3], b[1][3]}
	var v int
	for i, x := range lowEndian {
		v += x << uint(i)
	}
	return rune(v) + '\u2800'
}

// Dots counts the raised dots.
func (b Braille) Dots() int {
	var n int
	for x := 0; x < 2; x++ {
		for y := 0; y < 4; y++ {
			n += b[x][y]
		}
	}
	return n
}

// brailleFillOrder raises the left column top-down, then the right column
// top-down, so every step adds exactly one dot.
var brailleFillOrder = [8][2]int{
	{0, 0}, {0, 1}, {0, 2}, {0, 3},
	{1, 0}, {1, 1}, {1, 2}, {1, 3},
}

// BrailleRamp returns the 9 braille patterns from blank to full as a
// charset, ordered by dot count:
//  ⠀⠁⠃⠇⡇⡏⡟⡿⣿
func BrailleRamp() Charset {
	var b Braille
	ramp := Charset{b.Rune()}
	for _, p := range brailleFillOrder {
		b[p[0]][p[1]] = 1
		ramp = append(ramp, b.Rune())
	}
	return ramp
}
