package respawn

// Controller is an auxiliary object bound 1:1 to a component that receives
// the component's lifecycle calls. It lets applications keep behavior out
// of the component struct itself.
type Controller interface {
	OnInstantiate()
	OnSpawn()
	OnRecycle()
	OnCleanup()
}

// Controlled is a ComponentBase that forwards every lifecycle callback to
// an attached Controller. Embed it instead of ComponentBase and set
// Controller before the instance is loaded:
//
//	type Turret struct {
//	    respawn.Controlled
//	}
//
// A nil Controller is fine; the callbacks then do nothing. Components that
// override a callback take over the forwarding for that phase.
type Controlled struct {
	ComponentBase

	Controller Controller
}

func (c *Controlled) OnInstantiate() {
	if c.Controller != nil {
		c.Controller.OnInstantiate()
	}
}

func (c *Controlled) OnSpawn() {
	if c.Controller != nil {
		c.Controller.OnSpawn()
	}
}

func (c *Controlled) OnRecycle() {
	if c.Controller != nil {
		c.Controller.OnRecycle()
	}
}

func (c *Controlled) OnCleanup() {
	if c.Controller != nil {
		c.Controller.OnCleanup()
	}
}
