package tracker

// Platform is an exchange or wallet a holding lives on. Registry
// management happens elsewhere; the core only needs lookups.
type Platform struct {
	ID   string
	Name string
}

type PlatformRepository interface {
	Exists(id string) (bool, error)

	// Platform returns (nil, nil) when the id is unknown.
	Platform(id string) (*Platform, error)
}
