package door

// Sim is a Motor with no hardware behind it. It tracks the net step
// position, for running the controller on a desktop.
type Sim struct {
	position int
	moves    int
	powered  bool
}

// Step implements Motor.Step.
func (s *Sim) Step(n int) error {
	s.position += n
	s.moves++
	s.powered = true
	return nil
}

// PowerOff implements Motor.PowerOff.
func (s *Sim) PowerOff() error {
	s.powered = false
	return nil
}

// Release implements Motor.Release.
func (s *Sim) Release() error {
	return nil
}

// Position returns the net number of steps moved.
func (s *Sim) Position() int {
	return s.position
}

// Moves returns how many Step calls were made.
func (s *Sim) Moves() int {
	return s.moves
}

// Powered reports whether the windings are energized.
func (s *Sim) Powered() bool {
	return s.powered
}
