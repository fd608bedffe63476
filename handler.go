package metasim

// Handler represents the live simulation/scene context a randomizer and the
// settle barrier operate against.
//
// Handlers are owned by the host adaptation layer.
// Randomizers only hold a non-owning reference to one.
type Handler interface {
	// Scene returns the handler's scene.
	//
	// It shall return nil when the handler doesn't expose one
	// (e.g. a stripped-down test handler),
	// in which case settle passes degrade to no-ops.
	Scene() Scene

	// Sim returns the handler's simulation context,
	// used only to decide whether a render pass is needed.
	//
	// It shall return nil when the handler doesn't expose one.
	Sim() Sim
}

// Scene is the updatable scene owned by a Handler.
type Scene interface {
	// Update advances the scene by dt seconds.
	//
	// A zero dt forces a synchronization pass without advancing simulation
	// time.
	Update(dt float64) error

	// Sensors returns the sensors currently registered on the scene,
	// keyed by name.
	Sensors() map[string]Sensor
}

// Sensor is a single sensor registered on a Scene.
type Sensor interface {
	// Update refreshes the sensor's output for the current scene state.
	//
	// Same dt semantics as Scene.Update.
	Update(dt float64) error
}

// Sim exposes the capability queries and render action of the simulation
// context.
type Sim interface {
	// HasGUI reports whether an interactive display is attached.
	HasGUI() bool

	// HasRTXSensors reports whether specialized (ray-traced) sensor
	// hardware is attached.
	HasRTXSensors() bool

	// Render renders the current frame.
	Render() error
}
