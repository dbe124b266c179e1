package antenna

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
)

// ArrayModel is an ordered set of blocks flattened into one element list.
// Positions are fixed at construction; only excitations and the target
// change afterwards. An ArrayModel is safe for concurrent use.
type ArrayModel struct {
	geometry  Geometry
	lamda     float64
	k         float64
	workers   int
	blocks    []Block
	positions []vlib.Location3D
	log       *log.Entry

	mu     sync.RWMutex // guards target, solved and every element excitation
	target Direction
	solved bool

	cacheMu    sync.Mutex
	cacheValid bool
	cache      *Pattern
}

// NewArray builds one block per centre using setting.Geometry and flattens
// the element positions in block order, then intra-block order.
func NewArray(setting *Setting, centres []vlib.Location3D, target Direction) (*ArrayModel, error) {
	if setting == nil {
		setting = NewSetting()
	}
	if err := setting.validate(); err != nil {
		return nil, err
	}
	if len(centres) == 0 {
		return nil, invalidf("array needs at least one block")
	}
	if !target.finite() {
		return nil, invalidf("target %v is not finite", target)
	}

	m := &ArrayModel{
		geometry: setting.Geometry,
		lamda:    setting.Lamda(),
		workers:  setting.Workers,
		target:   target,
		blocks:   make([]Block, len(centres)),
	}
	m.k = Wavenumber(m.lamda)
	if m.workers <= 0 {
		m.workers = runtime.GOMAXPROCS(0)
	}

	for b, centre := range centres {
		var (
			blk Block
			err error
		)
		spacing := setting.spacingFor(b)
		switch m.geometry {
		case Planar:
			blk, err = NewPlanarBlock(centre, spacing)
		default:
			blk, err = NewLinearBlock(centre, spacing)
		}
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", b, err)
		}
		m.blocks[b] = blk
	}

	m.positions = make([]vlib.Location3D, 0, len(centres)*m.geometry.Arity())
	for _, blk := range m.blocks {
		for _, e := range blk.Elements() {
			m.positions = append(m.positions, e.Position)
		}
	}

	m.log = setting.logger().WithFields(log.Fields{
		"geometry": m.geometry.String(),
		"blocks":   len(m.blocks),
	})
	m.log.WithFields(log.Fields{
		"elements":   len(m.positions),
		"wavelength": m.lamda,
	}).Debug("array created")
	return m, nil
}

// NewLinearArray builds a 1-D array from scalar block centres on the x axis
// steered to theta (radians from the array axis).
func NewLinearArray(setting *Setting, centres []float64, theta float64) (*ArrayModel, error) {
	s := copySetting(setting)
	s.Geometry = Linear
	locs := make([]vlib.Location3D, len(centres))
	for i, c := range centres {
		locs[i].X = c
	}
	return NewArray(s, locs, Direction{Theta: theta})
}

// NewPlanarArray builds a 2-D array from (x, y) block centres.
func NewPlanarArray(setting *Setting, centres []vlib.Location3D, target Direction) (*ArrayModel, error) {
	s := copySetting(setting)
	s.Geometry = Planar
	return NewArray(s, centres, target)
}

func copySetting(setting *Setting) *Setting {
	if setting == nil {
		return NewSetting()
	}
	s := *setting
	return &s
}

func (m *ArrayModel) Geometry() Geometry  { return m.geometry }
func (m *ArrayModel) Wavelength() float64 { return m.lamda }
func (m *ArrayModel) Wavenumber() float64 { return m.k }
func (m *ArrayModel) ElementCount() int   { return len(m.positions) }
func (m *ArrayModel) BlockCount() int     { return len(m.blocks) }

// Positions returns a copy of the flattened element positions.
func (m *ArrayModel) Positions() []vlib.Location3D {
	result := make([]vlib.Location3D, len(m.positions))
	copy(result, m.positions)
	return result
}

func (m *ArrayModel) Target() Direction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.target
}

// Solved reports whether Solve has run since the last target change.
func (m *ArrayModel) Solved() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.solved
}

// SetTarget changes the steering direction and drops any cached pattern.
// Excitations keep their previous values until the next Solve.
func (m *ArrayModel) SetTarget(target Direction) error {
	if !target.finite() {
		return invalidf("target %v is not finite", target)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = target
	m.solved = false
	m.invalidate()
	return nil
}

// Excitations returns the current excitations in flattened order.
func (m *ArrayModel) Excitations() vlib.VectorC {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.excitations()
}

func (m *ArrayModel) excitations() vlib.VectorC {
	result := vlib.NewVectorC(len(m.positions))
	idx := 0
	for _, blk := range m.blocks {
		for _, e := range blk.Elements() {
			result[idx] = e.Excitation()
			idx++
		}
	}
	return result
}

// Solve computes the phase-only steering excitation of every element,
// exp(-j·k·(p·u(target))), and hands the values back block by block.
func (m *ArrayModel) Solve() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ux, uy := m.target.unit(m.geometry)
	idx := 0
	for b, blk := range m.blocks {
		w := vlib.NewVectorC(blk.Arity())
		for i := range w {
			w[i] = cmplx.Exp(complex(0, -pathPhase(m.k, m.positions[idx], ux, uy)))
			idx++
		}
		if err := blk.SetExcitations(w); err != nil {
			return fmt.Errorf("block %d: %w", b, err)
		}
	}
	m.solved = true
	m.invalidate()

	theta, phi := m.target.Degrees()
	m.log.WithFields(log.Fields{"theta": theta, "phi": phi}).Debug("excitations solved")
	return nil
}

// ArrayFactor returns Σ (I_i/I_0)·exp(j·k·(p_i·u(dir))) for the current
// excitations. It never mutates the model.
func (m *ArrayModel) ArrayFactor(dir Direction) complex128 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.arrayFactor(m.excitations(), dir)
}

func (m *ArrayModel) arrayFactor(exc vlib.VectorC, dir Direction) complex128 {
	ux, uy := dir.unit(m.geometry)
	i0 := exc[0]
	var sum complex128
	for i, p := range m.positions {
		sum += (exc[i] / i0) * cmplx.Exp(complex(0, pathPhase(m.k, p, ux, uy)))
	}
	return sum
}

// invalidate must be called with mu held for writing.
func (m *ArrayModel) invalidate() {
	m.cacheMu.Lock()
	m.cacheValid = false
	m.cache = nil
	m.cacheMu.Unlock()
}
