package models

// SceneSelectRequest selects a scene explicitly by its zero-based index.
type SceneSelectRequest struct {
	Index int `param:"index" validate:"gte=0,lte=4"`
}

// StatusResponse is the payload of GET /status.
type StatusResponse struct {
	Instance string        `json:"instance"`
	Status   StatusReadout `json:"status"`
	Scene    SceneView     `json:"scene"`
}
