package assets

import "fmt"

// MissingAssetError reports a reference file that is not installed. Screens
// show it as "asset unavailable" and carry on.
type MissingAssetError struct {
	Name string
	Dir  string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("asset unavailable: %s (looked in %s)", e.Name, e.Dir)
}
