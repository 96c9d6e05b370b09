package profiles

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownProfile = errors.New("unknown profile")

// Parameter keys accepted by Manager.SetParameter.
const (
	ParamZoom      = "zoom"
	ParamShadow    = "shadow"
	ParamContrast  = "contrast"
	ParamSharpness = "sharpness"
	ParamBounding  = "bounding"
	ParamBilateral = "bilateral"
)

// Manager holds the registered profiles and the one currently driving the
// pipeline. Profiles are values; callers always receive copies.
type Manager struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	current  string
}

func NewManager() *Manager {
	manager := &Manager{
		profiles: make(map[string]Profile),
	}

	for _, p := range Builtin() {
		manager.profiles[p.Name] = p
	}
	manager.current = Default().Name

	return manager
}

// Register adds or replaces a profile.
func (m *Manager) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Name] = p
	return nil
}

func (m *Manager) Get(name string) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if p, exists := m.profiles[name]; exists {
		return p, nil
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
}

func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.profiles))
	for name := range m.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) SetCurrent(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[name]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	m.current = name
	return nil
}

func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) Current() Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[m.current]
}

// SetParameter tunes one constant of a registered profile. The change is
// rejected if the resulting profile would not validate.
func (m *Manager) SetParameter(profile, name string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[profile]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}

	if err := applyParameter(&p, name, value); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	m.profiles[profile] = p
	return nil
}

func applyParameter(p *Profile, name string, value interface{}) error {
	switch name {
	case ParamZoom, ParamShadow, ParamContrast, ParamSharpness:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("parameter %s expects a number, got %T", name, value)
		}
		switch name {
		case ParamZoom:
			p.Zoom = f
		case ParamShadow:
			p.Shadow = f
		case ParamContrast:
			p.Contrast = f
		case ParamSharpness:
			p.Sharpness = f
		}
	case ParamBounding:
		switch v := value.(type) {
		case BoundingMode:
			p.Bounding = v
		case string:
			p.Bounding = BoundingMode(v)
		default:
			return fmt.Errorf("parameter %s expects a bounding mode, got %T", name, value)
		}
	case ParamBilateral:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("parameter %s expects a bool, got %T", name, value)
		}
		p.Bilateral = b
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
