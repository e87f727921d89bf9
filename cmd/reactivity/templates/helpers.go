package templates

import (
	"fmt"
	"strconv"

	"github.com/delaneyj/reactivity/reactive"
)

func keyNode(id reactive.TargetID, key string) string {
	return strconv.Quote(fmt.Sprintf("t%d.%s", id, key))
}

func effectNode(id reactive.EffectID) string {
	return strconv.Quote(fmt.Sprintf("e%d", id))
}

func targetLabel(t reactive.TargetSnapshot) string {
	if t.Label != "" {
		return t.Label
	}
	return fmt.Sprintf("target#%d", t.ID)
}

func keyLabel(t reactive.TargetSnapshot, key string) string {
	return strconv.Quote(targetLabel(t) + "." + key)
}

func effectLabel(e reactive.EffectInfo) string {
	name := e.Name
	if name == "" {
		name = fmt.Sprintf("effect#%d", e.ID)
	}
	return strconv.Quote(fmt.Sprintf("%s (%d runs)", name, e.Runs))
}
