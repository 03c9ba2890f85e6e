package files

import "image"

type FontAsset struct {
	Family string
	Data   []byte
}

// Assets holds whatever loaded successfully. A nil Template or empty Fonts
// means that asset is unavailable and rendering degrades around it.
type Assets struct {
	Template image.Image
	Fonts    []FontAsset
}
