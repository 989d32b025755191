package dice_test

import "fmt"

// scriptedSource returns the given die faces in order. Intn(n) yields
// face-1, so a face must fit the die being rolled.
type scriptedSource struct {
	faces []int
	next  int
}

func scripted(faces ...int) *scriptedSource {
	return &scriptedSource{faces: faces}
}

func (s *scriptedSource) Intn(n int) int {
	if s.next >= len(s.faces) {
		panic(fmt.Sprintf("scriptedSource: exhausted after %d rolls", len(s.faces)))
	}
	face := s.faces[s.next]
	s.next++
	if face < 1 || face > n {
		panic(fmt.Sprintf("scriptedSource: face %d does not fit a d%d", face, n))
	}
	return face - 1
}

// constantSource always rolls the same face.
type constantSource int

func (c constantSource) Intn(n int) int { return min(int(c), n) - 1 }
