package cache

// Keyer builds cache keys for each entry kind.
type Keyer interface {
	// LayoutKey identifies a finished layout of the scene content with the
	// given hash under opts.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// PartitionKey identifies the free-space partition of one region.
	PartitionKey(sceneHash, regionID string) string

	// ArtifactKey identifies a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the engine options that change a layout.
type LayoutKeyOpts struct {
	NumIterations         int     `json:"n"`
	SpeedLimit            float64 `json:"speed"`
	GravitationalConstant float64 `json:"g"`
	VariableWallStrength  bool    `json:"variable"`
	WallScaleFactor       float64 `json:"scale"`
	AvoidOverlap          bool    `json:"overlap"`
	NodeMass              float64 `json:"mass"`
	SpringCoefficient     float64 `json:"spring_k"`
	SpringLength          float64 `json:"spring_len"`
	OuterBoundsThickness  float64 `json:"outer"`
	CheckpointDivisor     int     `json:"checkpoint"`
	DragCoefficient       float64 `json:"drag"`
	RepulsionConstant     float64 `json:"repulsion"`
	Theta                 float64 `json:"theta"`
	ScaleMod              int     `json:"scale_mod"`
	Integrator            string  `json:"integrator"`
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// PartitionKey returns "partition:<sha256>".
func (DefaultKeyer) PartitionKey(sceneHash, regionID string) string {
	return hashKey("partition", sceneHash, regionID)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
