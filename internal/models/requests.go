package models

// CreatePresetRequest is the body of POST /v1/presets.
type CreatePresetRequest struct {
	Name     string         `json:"name"`
	Settings PresetSettings `json:"settings"`
}

// ImportModuleRequest is the body of POST /v1/modules. The optional source
// records where the module's model files claim to live; the files are never
// fetched, only the metadata is kept.
type ImportModuleRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ColorTag    string         `json:"color_tag"`
	Settings    ModuleSettings `json:"settings"`
	Source      *ModuleSource  `json:"source,omitempty"`
}
