package score

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Tempo is the fixed tempo, in quarter notes per minute, used for durations
// in seconds.
const Tempo = 80

const (
	a4Frequency  = 440.0
	a4MidiNumber = 69
)

var (
	stepToSemitone  = [...]int{0, 0, 2, 4, 5, 7, 9, 11}
	accidentalAlter = map[string]int{"#": 1, "##": 2, "n": 0, "b": -1, "bb": -2}

	accidentalSymbol = map[string]string{
		"#":  "♯",
		"##": "\U0001d12a",
		"n":  "♮",
		"b":  "♭",
		"bb": "\U0001d12b",
	}
	accidentalKey = map[string]string{"#": "s", "##": "ss", "n": "n", "b": "f", "bb": "ff"}

	typeToString = map[int]string{
		1: " - - - ", 2: " - ", 4: "", 8: "_", 16: "=", 32: "=_",
		64: "==", 128: "==_", 256: "===", 512: "===_", 1024: "====",
	}
	dotToString = map[int]string{0: "", 1: ".", 2: ".."}
	barToString = map[string]string{
		"single":       "|",
		"double":       "||",
		"end":          "|]",
		"repeat-begin": "|:",
		"repeat-end":   ":|",
		"repeat-both":  ":|:",
	}
)

// MidiNumber returns the MIDI note number of the pitch. Step 1 in octave 0
// is A4 (69); other steps keep their major-scale distance from step 1.
func (x *Pitch) MidiNumber() int {
	semitone := 0
	if x.step >= 1 && x.step < len(stepToSemitone) {
		semitone = stepToSemitone[x.step]
	}
	return a4MidiNumber + x.octave*12 + semitone + accidentalAlter[x.accidental]
}

// Frequency returns the equal-tempered frequency of the pitch in hertz.
func (x *Pitch) Frequency() float64 {
	return a4Frequency * math.Pow(2, float64(x.MidiNumber()-a4MidiNumber)/12)
}

// AccidentalSymbol returns the glyph text of the accidental, or "".
func (x *Pitch) AccidentalSymbol() string {
	return accidentalSymbol[x.accidental]
}

// String returns accidental, step and octave marks: #5'' or b3,.
func (x *Pitch) String() string {
	var octave string
	switch {
	case x.octave > 0:
		octave = strings.Repeat("'", x.octave)
	case x.octave < 0:
		octave = strings.Repeat(",", -x.octave)
	}
	return x.accidental + strconv.Itoa(x.step) + octave
}

// DefID identifies the visual form of the pitch: step, accidental and octave.
func (x *Pitch) DefID() string {
	return "p" + strconv.Itoa(x.step) + accidentalKey[x.accidental] + strconv.Itoa(x.octave)
}

// Seconds returns the length of the duration at Tempo.
func (x *Duration) Seconds() float64 {
	base := 60.0 / Tempo * 4 / float64(x.type_)
	switch x.dot {
	case 0:
		return base
	case 1:
		return base * 1.5
	}
	return base * 1.75
}

// Underbar returns the number of underbar lines of the duration: 1 for
// eighths, 2 for sixteenths and so on; 0 for quarters and longer.
func (x *Duration) Underbar() int {
	if x.type_ < 8 {
		return 0
	}
	return bits.Len(uint(x.type_)) - 3
}

// String returns the type and dot markers of the duration.
func (x *Duration) String() string {
	return typeToString[x.type_] + dotToString[x.dot]
}

// DefID identifies the visual form of the duration.
func (x *Duration) DefID() string {
	return "d" + strconv.Itoa(x.type_) + strconv.Itoa(x.dot)
}

func (x *Time) String() string {
	return strconv.Itoa(x.beats) + "/" + strconv.Itoa(x.beatType)
}

// DefID identifies the visual form of the time signature.
func (x *Time) DefID() string {
	return fmt.Sprintf("t%d_%d", x.beats, x.beatType)
}

func (x *Note) String() string {
	return x.Pitch().String() + x.Duration().String()
}

// DefID identifies the visual form of the note.
func (x *Note) DefID() string {
	return "n" + x.Pitch().DefID() + x.Duration().DefID()
}

func (x *Rest) String() string {
	return "0" + x.Duration().String()
}

// DefID identifies the visual form of the rest.
func (x *Rest) DefID() string {
	return "r" + x.Duration().DefID()
}

func (x *Chord) String() string {
	var b strings.Builder
	b.WriteByte('<')
	for _, p := range x.Pitches() {
		b.WriteString(p.String())
	}
	b.WriteByte('>')
	b.WriteString(x.Duration().String())
	return b.String()
}

// DefID identifies the visual form of the chord.
func (x *Chord) DefID() string {
	var b strings.Builder
	b.WriteByte('c')
	for _, p := range x.Pitches() {
		b.WriteString(p.DefID())
	}
	b.WriteString(x.Duration().DefID())
	return b.String()
}

func (x *Bar) String() string {
	return barToString[x.value]
}

// DefID identifies the visual form of the barline.
func (x *Bar) DefID() string {
	return "b-" + x.value
}

func (x *ScoreHead) String() string {
	return "              <<<" + x.title + ">>>          " + x.composer + "\n"
}

// String joins the elements of the measure with single spaces.
func (a Measure) String() string {
	out := make([]string, len(a))
	for i, md := range a {
		out[i] = md.String()
	}
	return strings.Join(out, " ")
}

// String joins the measures with single spaces.
func (a Measures) String() string {
	out := make([]string, len(a))
	for i, m := range a {
		out[i] = m.String()
	}
	return strings.Join(out, " ")
}

func (x *Part) String() string {
	return x.Measures().String()
}

// String separates parts with a blank line.
func (a Parts) String() string {
	out := make([]string, len(a))
	for i, p := range a {
		out[i] = p.String()
	}
	return strings.Join(out, "\n\n")
}

// String returns the notation text of the whole score: the head line
// followed by every part.
func (x *Score) String() string {
	return x.Head().String() + x.Parts().String()
}
