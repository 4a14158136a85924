package force

// Simulator owns a set of items and the forces acting on them. It is not
// safe for concurrent use.
type Simulator struct {
	Items      []*Item
	Forces     []Force
	SpeedLimit float64
	Integrator Integrator
}

// NewSimulator returns a simulator using integrator, or Euler when nil.
func NewSimulator(integrator Integrator, speedLimit float64) *Simulator {
	if integrator == nil {
		integrator = Euler{}
	}
	return &Simulator{Integrator: integrator, SpeedLimit: speedLimit}
}

// AddItem registers an item.
func (s *Simulator) AddItem(it *Item) { s.Items = append(s.Items, it) }

// AddForce activates a force for all subsequent steps.
func (s *Simulator) AddForce(f Force) { s.Forces = append(s.Forces, f) }

// Accumulate clears every accumulator and applies all active forces.
func (s *Simulator) Accumulate() {
	for _, it := range s.Items {
		it.Force.X, it.Force.Y = 0, 0
	}
	for _, f := range s.Forces {
		f.Apply(s.Items)
	}
}

// Step accumulates forces and integrates one timestep of length dt.
func (s *Simulator) Step(dt float64) {
	s.Accumulate()
	s.Integrator.Integrate(s, dt)
}
