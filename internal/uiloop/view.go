package uiloop

// Visibility of a view.
type Visibility int

const (
	Visible Visibility = iota
	Invisible
	Gone
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "Visible"
	case Invisible:
		return "Invisible"
	case Gone:
		return "Gone"
	default:
		return "Unknown"
	}
}

// View is anything whose visibility the ad wrapper toggles.
type View interface {
	SetVisibility(v Visibility)
	Visibility() Visibility
}

// Container is a named View that keeps its visibility history.
// It must only be touched from the UI-owning goroutine.
type Container struct {
	name    string
	current Visibility
	history []Visibility
	onSet   func(Visibility)
}

// NewContainer creates a visible container.
func NewContainer(name string) *Container {
	return &Container{name: name, current: Visible}
}

func (c *Container) Name() string { return c.name }

func (c *Container) SetVisibility(v Visibility) {
	c.current = v
	c.history = append(c.history, v)
	if c.onSet != nil {
		c.onSet(v)
	}
}

func (c *Container) Visibility() Visibility { return c.current }

// History returns every visibility set on the container, in order.
func (c *Container) History() []Visibility { return c.history }

// OnChange registers fn to run after each SetVisibility.
func (c *Container) OnChange(fn func(Visibility)) { c.onSet = fn }
