package splitter

import (
	"errors"
	"fmt"

	"github.com/opensplit/feolattack/internal/model"
)

// ErrUnknownSplitLayer is returned when Config.SplitLayer names a layer the
// layout's LayerOrder doesn't know.
var ErrUnknownSplitLayer = errors.New("splitter: unknown split layer")

// ProperLayers computes the set of layers visible to the attacker for a
// given back-end/front-end keep selection, mirroring the reference tool's
// proper_layers: keeping neither side yields an empty set, keeping only
// the back end (BEOL) keeps every layer at or above the split layer,
// keeping only the front end (FEOL) keeps every layer below it, and
// keeping both keeps everything.
func ProperLayers(layers model.LayerOrder, backEnd, frontEnd bool, splitLayer string) (map[string]bool, error) {
	good := make(map[string]bool)
	if !backEnd && !frontEnd {
		return good, nil
	}

	all := layers.Layers()
	if backEnd && frontEnd {
		for _, l := range all {
			good[l] = true
		}
		return good, nil
	}

	splitRank, ok := layers.Rank(splitLayer)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSplitLayer, splitLayer)
	}
	for _, l := range all {
		r, _ := layers.Rank(l)
		if backEnd {
			if r >= splitRank {
				good[l] = true
			}
		} else if r < splitRank {
			good[l] = true
		}
	}
	return good, nil
}
