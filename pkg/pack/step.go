package pack

// TickResult summarizes one tick.
type TickResult struct {
	// Added is the number of circles placed this tick.
	Added int
	// Attempts is the number of placement draws spent.
	Attempts int
	// Growing is the size of the growing set resolved this tick.
	Growing int
	// Stopped is the number of circles that stopped this tick.
	Stopped int
	// Complete is true when no circle was growing at resolution time.
	Complete bool
}

// Stepper advances a field one tick at a time.
type Stepper struct {
	cfg    Config
	placer *Placer
}

// NewStepper validates cfg once and returns a stepper drawing from src.
func NewStepper(cfg Config, src Source) (*Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Stepper{cfg: cfg, placer: NewPlacer(src, cfg.Clearance)}, nil
}

// New builds the field and stepper for cfg.
func New(cfg Config, src Source) (*Field, *Stepper, error) {
	s, err := NewStepper(cfg, src)
	if err != nil {
		return nil, nil, err
	}
	f, err := NewField(cfg.Size, cfg.Border, cfg.SeedRadius)
	if err != nil {
		return nil, nil, err
	}
	return f, s, nil
}

// Config returns the validated configuration.
func (s *Stepper) Config() Config { return s.cfg }

// Tick places new circles, resolves containment and collisions for every
// growing circle, then grows the field.
func (s *Stepper) Tick(f *Field) TickResult {
	var res TickResult
	res.Added, res.Attempts = s.place(f)

	growing := f.growing()
	res.Growing = len(growing)
	x0, y0, x1, y1 := f.Bounds()

	for _, i := range growing {
		c := &f.circles[i]
		wasGrowing := c.IsGrowing()
		if c.Contain(x0, y0, x1, y1) {
			if wasGrowing {
				res.Stopped++
			}
			continue
		}
		j := f.firstIntersecting(i, s.cfg.Epsilon)
		if j < 0 {
			continue
		}
		changed := false
		for _, k := range [2]int{i, j} {
			if f.circles[k].IsGrowing() {
				f.circles[k].Stop()
				res.Stopped++
				changed = true
			}
		}
		// A circle stopped earlier in this tick can rediscover its partner.
		if changed {
			f.contacts = append(f.contacts, Contact{A: i, B: j})
		}
	}

	for i := range f.circles {
		c := &f.circles[i]
		wasGrowing := c.IsGrowing()
		c.Grow(s.cfg.GrowthStep, s.cfg.MaxRadius)
		if wasGrowing && !c.IsGrowing() {
			res.Stopped++
		}
	}

	res.Complete = res.Growing == 0
	return res
}

func (s *Stepper) place(f *Field) (added, attempts int) {
	for attempts < s.cfg.MaxAttempts && added < s.cfg.TargetPerFrame {
		attempts++
		p, ok := s.placer.FindSpace(f)
		if !ok {
			continue
		}
		f.add(NewCircle(p.X, p.Y, s.cfg.InitialRadius))
		added++
	}
	return added, attempts
}
