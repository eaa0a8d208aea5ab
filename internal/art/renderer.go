package art

import (
	"strings"

	"github.com/sethgrid/petkeeper/internal/pet"
)

// eyesMark is replaced with the eyes for the pet's visual state.
const eyesMark = "EYES"

var bodies = map[pet.Species]string{
	pet.Dog: ` /^ ^\
/ EYES \
V\ Y /V
 / - \`,
	pet.Cat: ` /\_/\
( EYES )
 > ^ <`,
	pet.Bunny: ` (\(\
 ( EYES)
 o_(")(")`,
}

// eyes are three characters wide so every body keeps its shape.
var eyes = map[pet.Visual]string{
	pet.VisualNormal: "o.o",
	pet.VisualHungry: "O.O",
	pet.VisualAngry:  ">.<",
	pet.VisualSleep:  "-.-",
	pet.VisualDead:   "x.x",
}

var captions = map[pet.Visual]string{
	pet.VisualHungry: "*grumble*",
	pet.VisualAngry:  "grrr!",
	pet.VisualSleep:  "zZz",
	pet.VisualDead:   "R.I.P.",
}

// Sprite returns the ASCII art for a species in a visual state. Unknown
// visuals fall back to the normal face.
func Sprite(s pet.Species, v pet.Visual) string {
	body, ok := bodies[s]
	if !ok {
		body = bodies[pet.Cat]
	}
	face, ok := eyes[v]
	if !ok {
		face = eyes[pet.VisualNormal]
	}

	out := strings.Replace(body, eyesMark, face, 1)
	if c, ok := captions[v]; ok {
		out += "  " + c
	}
	return out
}

// GetStaticArt renders p as it currently looks.
func GetStaticArt(p *pet.Pet) string {
	return Sprite(p.Species, p.Visual())
}
