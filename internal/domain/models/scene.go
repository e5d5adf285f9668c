package models

// Scene identifies one of the fixed display views cycled by the rotator.
type Scene string

const (
	SceneGlobalOverview Scene = "scene-a"
	SceneMarketHeatmap  Scene = "scene-b"
	SceneMacroRates     Scene = "scene-c"
	SceneUSMarkets      Scene = "scene-d"
	SceneNewsAlerts     Scene = "scene-e"
)

// Scenes is the rotation order.
var Scenes = []Scene{
	SceneGlobalOverview,
	SceneMarketHeatmap,
	SceneMacroRates,
	SceneUSMarkets,
	SceneNewsAlerts,
}

var sceneLabels = map[Scene]string{
	SceneGlobalOverview: "Global Overview",
	SceneMarketHeatmap:  "Market Heatmap",
	SceneMacroRates:     "Macro & Rates",
	SceneUSMarkets:      "US Markets",
	SceneNewsAlerts:     "News & Alerts",
}

// Label returns the human-readable scene label.
func (s Scene) Label() string {
	if l, ok := sceneLabels[s]; ok {
		return l
	}
	return "Unknown Scene"
}

// SceneAt maps any integer onto the rotation, wrapping in both directions.
func SceneAt(i int) (int, Scene) {
	n := len(Scenes)
	i %= n
	if i < 0 {
		i += n
	}
	return i, Scenes[i]
}

// SceneView is what a display receives when a scene becomes active.
type SceneView struct {
	Index int    `json:"index"`
	Scene Scene  `json:"scene"`
	Label string `json:"label"`
	Total int    `json:"total"`
}

// NewSceneView builds the view for rotation index i.
func NewSceneView(i int) SceneView {
	idx, s := SceneAt(i)
	return SceneView{Index: idx, Scene: s, Label: s.Label(), Total: len(Scenes)}
}
